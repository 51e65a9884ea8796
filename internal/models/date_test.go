package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamped := time.Date(2025, 6, 15, 23, 45, 12, 999, loc)

	d := DateOnly(stamped)

	assert.Equal(t, "2025-06-15", FormatDate(d))
	assert.Equal(t, time.UTC, d.Location())
	assert.Zero(t, d.Hour())
}

func TestPeriodContainsBoundsInclusive(t *testing.T) {
	start, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	end, err := ParseDate("2025-06-30")
	require.NoError(t, err)
	period := Period{StartDate: start, EndDate: end}

	assert.True(t, period.Contains(start))
	assert.True(t, period.Contains(end))
	assert.True(t, period.Contains(start.AddDate(0, 0, 14)))
	assert.False(t, period.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, period.Contains(end.AddDate(0, 0, 1)))
}
