package domain

// Severity buckets for reporting delayed checks. Derived at read time,
// never stored.
type Severity string

const (
	SeverityRecent   Severity = "recently_overdue"
	SeverityModerate Severity = "moderately_overdue"
	SeverityCritical Severity = "critically_overdue"
)

// DaysOverdue converts the elapsed whole weeks between the scheduled week
// and now into a day count at 7 days/week.
//
// The year term uses a flat 52 weeks/year. That is slightly wrong across
// year boundaries and in 53-week ISO years, but the severity thresholds
// built on it are externally visible, so the arithmetic is kept as-is
// rather than corrected.
func DaysOverdue(nowYear, nowWeek, checkYear, checkWeek int) int {
	return ((nowYear-checkYear)*52 + (nowWeek - checkWeek)) * 7
}

// ClassifySeverity maps a day count to its reporting bucket.
func ClassifySeverity(daysOverdue int) Severity {
	switch {
	case daysOverdue <= 7:
		return SeverityRecent
	case daysOverdue <= 14:
		return SeverityModerate
	default:
		return SeverityCritical
	}
}
