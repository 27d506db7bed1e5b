package timezone

import (
	"fmt"
	"math"
	"time"

	"daybooker/config"
	"daybooker/shared/constant"

	"github.com/rs/zerolog/log"
)

var location = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("app timezone not set, bookings use UTC days")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown IANA timezone, bookings use UTC days")

		return
	}

	SetLocation(loc)
	log.Info().Str("timezone", loc.String()).Msg("booking timezone loaded")
}

// SetLocation replaces the hotel calendar zone. Nil resets to UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	location = loc
}

// Now returns the current instant on the hotel calendar.
func Now() time.Time {
	return time.Now().In(location)
}

func GetLocation() *time.Location {
	return location
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location)
}

func Format(t time.Time, layout string) string {
	return t.In(location).Format(layout)
}

// ParseDay parses a YYYY-MM-DD calendar day as its local midnight.
func ParseDay(value string) (time.Time, error) {
	day, err := Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", value, err)
	}

	return day, nil
}

// StartOfDay drops the clock part of t in the local calendar.
func StartOfDay(t time.Time) time.Time {
	t = t.In(location)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}

func Today() time.Time {
	return StartOfDay(Now())
}

// AtClock places an HH:MM wall clock on the calendar day of day, read in
// day's own zone. DATE columns come back from Postgres as UTC midnight.
func AtClock(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(constant.ClockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	year, month, date := day.Date()

	return time.Date(year, month, date, parsed.Hour(), parsed.Minute(), 0, 0, location), nil
}

// DaysBetween counts whole calendar days from start to end. Negative when end is earlier.
func DaysBetween(start, end time.Time) int {
	from, to := StartOfDay(start), StartOfDay(end)

	return int(math.Round(to.Sub(from).Hours() / 24))
}
