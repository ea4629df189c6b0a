package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CheckStatus is the two-state lifecycle of a device check. There is no
// cancel or re-open; a check is mutated exactly once (pending -> completed).
type CheckStatus string

const (
	CheckPending   CheckStatus = "pending"
	CheckCompleted CheckStatus = "completed"
)

// DeviceCheck is one scheduled inspection of one device for one ISO
// (year, week). Its ID is derived from the triple, so at most one check
// can exist per device per week.
type DeviceCheck struct {
	ID          string      `json:"id"`
	DeviceID    string      `json:"deviceId"`
	Year        int         `json:"year"`
	Week        int         `json:"week"`
	Status      CheckStatus `json:"status"`
	AssignedAt  time.Time   `json:"assignedAt"`
	AssignedBy  string      `json:"assignedBy"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	CompletedBy string      `json:"completedBy,omitempty"`
	Comment     string      `json:"comment,omitempty"`
}

// CheckID builds the deterministic check id "<year>:<week>:<deviceId>".
// Re-assigning the same device in the same week therefore overwrites
// instead of duplicating.
func CheckID(year, week int, deviceID string) string {
	return fmt.Sprintf("%d:%d:%s", year, week, deviceID)
}

// ParseCheckID splits a check id back into its (year, week, deviceId) triple.
func ParseCheckID(id string) (year, week int, deviceID string, err error) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return 0, 0, "", NewValidation("check", "id", "expected <year>:<week>:<deviceId>")
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, "", NewValidation("check", "id", "year is not a number")
	}
	week, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, "", NewValidation("check", "id", "week is not a number")
	}
	return year, week, parts[2], nil
}

// ValidateWeek rejects malformed (year, week) pairs. ISO years have 52 or
// 53 weeks; the exact count per year is enforced by WeekOf producers, so
// the range check here is deliberately coarse.
func ValidateWeek(year, week int) error {
	if year < 1970 || year > 9999 {
		return NewValidation("check", "year", "out of range")
	}
	if week < 1 || week > 53 {
		return NewValidation("check", "week", "must be within 1-53")
	}
	return nil
}

// WeekBefore reports whether (y1, w1) is strictly earlier than (y2, w2)
// under lexicographic (year, week) ordering.
func WeekBefore(y1, w1, y2, w2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return w1 < w2
}
