package lifecycle

import "time"

// Clock supplies the engine's notion of "now". Swapped out in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// DateOnly strips the time-of-day and zone from t, keeping the calendar day
// as seen in t's own location. Comparing these normalized values is the only
// sanctioned way to ask "is this day past" — comparing raw timestamps shifts
// the answer by a day depending on the caller's zone offset.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OnOrBeforeToday reports whether scheduled's calendar day is today or
// earlier relative to now. Today counts: a task scheduled for today is
// already closed to new applications.
func OnOrBeforeToday(scheduled, now time.Time) bool {
	return !DateOnly(scheduled).After(DateOnly(now))
}
