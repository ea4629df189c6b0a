package domain

// NotificationSettings is the singleton roster of employees subscribed to
// overdue-check notifications. The external notifier consumes it; the
// scheduling engine never mutates it beyond the explicit setter, and no
// check is done here that the identifiers exist in the user directory.
type NotificationSettings struct {
	SelectedEmployees []string `json:"selectedEmployees"`
}
