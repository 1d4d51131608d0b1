package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Frequency is the unit of time between occurrences of a recurring event.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

var (
	ErrInvalidFrequency = errors.New("frequency must be one of daily, weekly, monthly, quarterly, annual")
	ErrInvalidInterval  = errors.New("interval must be a positive number")
)

// ParseFrequency parses a frequency token. Matching is case-insensitive.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))

	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return f, nil
	}

	return "", fmt.Errorf("%w, got %q", ErrInvalidFrequency, s)
}

// IncrementDate advances a date by n complete intervals of the frequency.
//
// Weekly increments keep the day of the week. Monthly, quarterly and
// annual increments keep the day of the month where the target month
// has it and clamp to the last day of the month where it does not, so
// that repeated increments from a month-end anchor do not drift.
func IncrementDate(d Date, frequency Frequency, interval int, n int) (Date, error) {
	if interval < 1 || n < 1 {
		return Date{}, ErrInvalidInterval
	}

	effective := interval * n

	switch frequency {
	case FrequencyDaily:
		return d.AddDays(effective), nil
	case FrequencyWeekly:
		return d.AddDays(7 * effective), nil
	case FrequencyMonthly:
		return incrementMonthly(d, effective), nil
	case FrequencyQuarterly:
		return incrementMonthly(d, 3*effective), nil
	case FrequencyAnnual:
		// Keeping the month avoids drift; only the day can need
		// clamping (Feb 29 into a non-leap year).
		year, month, day := time.Time(d).Date()
		year += effective
		return NewDate(year, month, min(day, daysInMonth(year, month))), nil
	default:
		return Date{}, fmt.Errorf("%w, got %q", ErrInvalidFrequency, frequency)
	}
}

// incrementMonthly adds months to a date, clamping the day to the last
// valid day of the target month. Jan 31 + 1 month is Feb 28 (or 29),
// never Mar 3.
func incrementMonthly(d Date, months int) Date {
	year, month, day := time.Time(d).Date()

	// 0-based month arithmetic for the year carry.
	m := int(month) - 1 + months
	year += m / 12
	month = time.Month(m%12 + 1)

	return NewDate(year, month, min(day, daysInMonth(year, month)))
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateRange returns the evenly spaced dates start, start+interval,
// start+2*interval, ... that are before end. The end date itself is
// never part of the result.
func DateRange(start, end Date, intervalDays int) ([]Date, error) {
	if intervalDays < 1 {
		return nil, ErrInvalidInterval
	}

	var dates []Date
	for d := start; d.Before(end); d = d.AddDays(intervalDays) {
		dates = append(dates, d)
	}

	return dates, nil
}
