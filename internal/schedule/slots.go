// Package schedule computes appointment time-slot availability. It is
// intentionally small and dependency-free, in the same spirit as a pure
// library package:
//
//   - No logging and no I/O (callers fetch bookings and decide how to log)
//   - Deterministic output: candidate slots are emitted earliest first
//   - Immutable inputs; every function is safe for concurrent use
//
// Candidate generation walks a configured business day in fixed 30-minute
// steps and emits a slot of the requested service duration whenever the
// slot still ends inside business hours. Conflict filtering then subtracts
// slots whose start hour already carries a non-cancelled booking.
//
// The conflict check buckets by HOUR only: a booking at 10:00 knocks out
// both the 10:00 and 10:30 candidates, while 09:30 and 11:00 survive. This
// is deliberately conservative (it over-blocks adjacent half-hours and
// under-protects durations that span buckets) and is kept unchanged from
// the behavior the scheduling widget has always shipped with.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StepMinutes is the fixed interval between candidate slot starts.
const StepMinutes = 30

// DayHours describes one weekday's business hours. Open and Close are
// minutes since midnight; a disabled day yields no slots at all.
type DayHours struct {
	Open    int
	Close   int
	Enabled bool
}

// WeekHours holds the business-hours entry for each weekday, indexed by
// time.Weekday (Sunday = 0).
type WeekHours [7]DayHours

// DefaultWeekHours returns the company's standard hours: Mon-Fri
// 08:00-18:00, Sat 09:00-14:00, closed Sunday.
func DefaultWeekHours() WeekHours {
	var w WeekHours
	for d := time.Monday; d <= time.Friday; d++ {
		w[d] = DayHours{Open: 8 * 60, Close: 18 * 60, Enabled: true}
	}
	w[time.Saturday] = DayHours{Open: 9 * 60, Close: 14 * 60, Enabled: true}
	w[time.Sunday] = DayHours{Enabled: false}
	return w
}

// Slot is a transient availability candidate. Start and End are "HH:MM"
// wall-clock values on the requested date. Slots are never persisted.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slots generates the ordered candidate list for one calendar date and a
// service of durationMin minutes. Starting at the day's open time it steps
// forward StepMinutes at a time, emitting a slot only while the slot's end
// does not exceed the close time. A disabled day or a non-positive
// duration produces an empty (non-nil) slice.
func Slots(date time.Time, durationMin int, hours WeekHours) []Slot {
	out := []Slot{}
	day := hours[date.Weekday()]
	if !day.Enabled || durationMin <= 0 {
		return out
	}
	for start := day.Open; start+durationMin <= day.Close; start += StepMinutes {
		out = append(out, Slot{
			Start: minutesToClock(start),
			End:   minutesToClock(start + durationMin),
		})
	}
	return out
}

// FilterBooked removes candidates whose start hour collides with any entry
// in booked (a list of "HH:MM" times for non-cancelled appointments on the
// same date). The half-hour component of booked times is ignored; see the
// package comment for the consequences. Unparseable booked values are
// skipped rather than blocking the whole day.
func FilterBooked(slots []Slot, booked []string) []Slot {
	if len(booked) == 0 {
		return slots
	}
	taken := make(map[int]struct{}, len(booked))
	for _, b := range booked {
		if h, ok := clockHour(b); ok {
			taken[h] = struct{}{}
		}
	}
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		h, ok := clockHour(s.Start)
		if !ok {
			continue
		}
		if _, hit := taken[h]; hit {
			continue
		}
		out = append(out, s)
	}
	return out
}

// minutesToClock renders minutes-since-midnight as zero-padded "HH:MM".
func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// clockHour extracts the hour component from an "HH:MM" value.
func clockHour(clock string) (int, bool) {
	hh, _, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
