// Package repository provides typed per-entity repositories over the
// generic key-value store. Key prefixes are the only available index;
// every list operation is a prefix scan.
package repository

import (
	"fmt"

	"maintcheck/internal/domain"
)

const (
	devicePrefix = "device:"
	checkPrefix  = "check:"
	planPrefix   = "plan:"

	settingsKey = "settings:notifications"
)

func deviceKey(id string) string { return devicePrefix + id }

func checkKey(id string) string { return checkPrefix + id }

// checkWeekPrefix scopes a scan to one (year, week). The trailing colon
// keeps unpadded week numbers unambiguous: "check:2025:1:" does not
// match week 10.
func checkWeekPrefix(year, week int) string {
	return fmt.Sprintf("%s%d:%d:", checkPrefix, year, week)
}

func planKey(year, week int) string {
	return planPrefix + domain.PlanID(year, week)
}
