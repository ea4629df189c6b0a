package domain

import (
	"fmt"
	"time"
)

// WeeklyPlan is a batch assignment of devices to be checked in one ISO
// (year, week). Creating a plan side-effects exactly one pending check
// per listed device for that week.
type WeeklyPlan struct {
	ID         string    `json:"id"`
	Year       int       `json:"year"`
	Week       int       `json:"week"`
	DeviceIDs  []string  `json:"deviceIds"`
	AssignedBy string    `json:"assignedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PlanID builds the plan id "<year>:<week>".
func PlanID(year, week int) string {
	return fmt.Sprintf("%d:%d", year, week)
}
