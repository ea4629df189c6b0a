package domain

import "time"

// DeviceStatus lifecycle states of a catalog device.
const (
	DeviceActive   = "active"
	DeviceInactive = "inactive"
)

// Device is the catalog record a check refers to. PlannedFrequency is the
// number of weeks between two scheduled checks of the device.
type Device struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	IdentificationNumber string     `json:"identificationNumber"`
	Location             string     `json:"location"`
	PlannedFrequency     int        `json:"plannedFrequency"`
	PlanComment          string     `json:"planComment,omitempty"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastCheckedAt        *time.Time `json:"lastCheckedAt,omitempty"`
	LastCheckedBy        string     `json:"lastCheckedBy,omitempty"`
}

// Validate checks device invariants before persisting.
func (d *Device) Validate() error {
	if d.ID == "" {
		return NewValidation("device", "id", "must not be empty")
	}
	if d.Name == "" {
		return NewValidation("device", "name", "must not be empty")
	}
	if d.PlannedFrequency <= 0 {
		return NewValidation("device", "plannedFrequency", "must be a positive number of weeks")
	}
	return nil
}
