package timezone_test

import (
	"testing"
	"time"

	"daybooker/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	day, err := timezone.ParseDay("2025-03-14")
	require.NoError(t, err)

	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 14, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, timezone.GetLocation(), day.Location())

	_, err = timezone.ParseDay("14/03/2025")
	assert.Error(t, err)
}

func TestAtClock(t *testing.T) {
	day, err := timezone.ParseDay("2025-03-14")
	require.NoError(t, err)

	at, err := timezone.AtClock(day.Add(17*time.Hour), "09:30")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 09:30", timezone.Format(at, "2006-01-02 15:04"))

	_, err = timezone.AtClock(day, "25:00")
	assert.Error(t, err)
}

func TestAtClockKeepsStoredDay(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	previous := timezone.GetLocation()
	timezone.SetLocation(newYork)
	t.Cleanup(func() { timezone.SetLocation(previous) })

	// lib/pq scans DATE columns as midnight with a zero offset.
	stored := time.Date(2026, 10, 20, 0, 0, 0, 0, time.FixedZone("", 0))

	start, err := timezone.AtClock(stored, "10:00")
	require.NoError(t, err)

	assert.Equal(t, "2026-10-20 10:00", start.Format("2006-01-02 15:04"))
	assert.Equal(t, newYork, start.Location())
}

func TestDaysBetween(t *testing.T) {
	start, _ := timezone.ParseDay("2025-01-30")
	end, _ := timezone.ParseDay("2025-02-02")

	assert.Equal(t, 3, timezone.DaysBetween(start, end))
	assert.Equal(t, -3, timezone.DaysBetween(end, start))
	assert.Equal(t, 0, timezone.DaysBetween(start, start.Add(23*time.Hour)))
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, today, timezone.StartOfDay(timezone.Now()))
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
}
