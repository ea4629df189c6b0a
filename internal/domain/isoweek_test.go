package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOf_YearBoundaries(t *testing.T) {
	// last days of December belong to week 1 of the following ISO year
	y, w := WeekOf(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, w)

	y, w = WeekOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, w)

	// early January can belong to week 52 of the previous ISO year
	y, w = WeekOf(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2022, y)
	assert.Equal(t, 52, w)
}

func TestWeekOf_MidYear(t *testing.T) {
	y, w := WeekOf(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, y)
	assert.Equal(t, 10, w)

	// Sunday still belongs to the Monday-started week
	y, w = WeekOf(time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, 2025, y)
	assert.Equal(t, 10, w)
}

func TestWeekOf_TimezoneIndependent(t *testing.T) {
	// the same UTC instant carried in different zones must agree
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	instant := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	y1, w1 := WeekOf(instant)
	y2, w2 := WeekOf(instant.In(denver))
	assert.Equal(t, y1, y2)
	assert.Equal(t, w1, w2)
}
