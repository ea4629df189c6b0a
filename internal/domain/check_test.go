package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckID_RoundTrip(t *testing.T) {
	id := CheckID(2025, 10, "dev-1")
	assert.Equal(t, "2025:10:dev-1", id)

	year, week, deviceID, err := ParseCheckID(id)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 10, week)
	assert.Equal(t, "dev-1", deviceID)
}

func TestParseCheckID_Malformed(t *testing.T) {
	for _, id := range []string{"", "2025", "2025:10", "2025:10:", "x:10:d", "2025:x:d"} {
		_, _, _, err := ParseCheckID(id)
		assert.Error(t, err, "id %q", id)
		assert.True(t, IsValidation(err))
	}
}

func TestValidateWeek(t *testing.T) {
	assert.NoError(t, ValidateWeek(2025, 1))
	assert.NoError(t, ValidateWeek(2025, 53))
	assert.Error(t, ValidateWeek(2025, 0))
	assert.Error(t, ValidateWeek(2025, 54))
	assert.Error(t, ValidateWeek(0, 10))
}

func TestWeekBefore(t *testing.T) {
	assert.True(t, WeekBefore(2024, 52, 2025, 1))
	assert.True(t, WeekBefore(2025, 9, 2025, 10))
	assert.False(t, WeekBefore(2025, 10, 2025, 10))
	assert.False(t, WeekBefore(2025, 11, 2025, 10))
	assert.False(t, WeekBefore(2026, 1, 2025, 50))
}

func TestDaysOverdue(t *testing.T) {
	assert.Equal(t, 7, DaysOverdue(2025, 11, 2025, 10))
	assert.Equal(t, 21, DaysOverdue(2025, 13, 2025, 10))
	// the documented 52-weeks/year approximation across a boundary
	assert.Equal(t, 7, DaysOverdue(2025, 1, 2024, 52))
}

func TestClassifySeverity(t *testing.T) {
	assert.Equal(t, SeverityRecent, ClassifySeverity(7))
	assert.Equal(t, SeverityModerate, ClassifySeverity(14))
	assert.Equal(t, SeverityCritical, ClassifySeverity(21))
}

func TestDeviceValidate(t *testing.T) {
	d := &Device{ID: "d1", Name: "Pump", PlannedFrequency: 4}
	assert.NoError(t, d.Validate())

	d.PlannedFrequency = 0
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
