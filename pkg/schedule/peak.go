// Package schedule computes the timing inputs the guardrail engine expects
// from its caller: the engine itself never reads a clock or a calendar, so
// whoever drives it uses this package to turn wall-clock time into an
// integer minute value and a peak-hour flag.
package schedule

import "time"

// PeakHours defines the daily window during which non-emergency changes
// are disallowed.
type PeakHours struct {
	// Timezone for the window (e.g. "America/New_York", "UTC").
	Timezone string `yaml:"timezone"`

	// DaysOfWeek defines on which days the window applies
	// (1 = Monday, 7 = Sunday). Empty means all days.
	DaysOfWeek []int `yaml:"days_of_week"`

	// StartHour is the start of the window (0-23).
	StartHour int `yaml:"start_hour"`

	// EndHour is the end of the window (0-23, exclusive).
	EndHour int `yaml:"end_hour"`
}

// DefaultPeakHours returns the default window: every day, 6 PM to 11 PM UTC,
// when residential Wi-Fi load peaks.
func DefaultPeakHours() *PeakHours {
	return &PeakHours{
		Timezone:  "UTC",
		StartHour: 18,
		EndHour:   23,
	}
}

// IsPeakHour checks if the given time falls within the peak window.
func (c *PeakHours) IsPeakHour(t time.Time) bool {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		// Fall back to UTC if timezone load fails
		loc = time.UTC
	}

	localTime := t.In(loc)

	if len(c.DaysOfWeek) > 0 {
		dayOfWeek := int(localTime.Weekday())
		if dayOfWeek == 0 {
			dayOfWeek = 7 // Convert Sunday from 0 to 7
		}

		isPeakDay := false
		for _, day := range c.DaysOfWeek {
			if dayOfWeek == day {
				isPeakDay = true
				break
			}
		}
		if !isPeakDay {
			return false
		}
	}

	hour := localTime.Hour()
	return hour >= c.StartHour && hour < c.EndHour
}

// MinuteClock converts wall-clock time to the engine's minute timeline.
type MinuteClock struct {
	// Epoch is minute zero. The zero value uses the Unix epoch.
	Epoch time.Time
}

// Minutes returns t as whole minutes since the epoch.
func (c MinuteClock) Minutes(t time.Time) int {
	epoch := c.Epoch
	if epoch.IsZero() {
		epoch = time.Unix(0, 0)
	}
	return int(t.Sub(epoch) / time.Minute)
}
