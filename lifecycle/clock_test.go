package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnlyStripsTimeAndZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	late := time.Date(2025, 6, 15, 23, 45, 0, 0, ist)
	got := DateOnly(late)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDateOnlyUsesCalendarDayOfOwnLocation(t *testing.T) {
	// 00:30 IST on the 16th is still 19:00 UTC on the 15th; the calendar
	// day in the value's own location is what counts.
	ist := time.FixedZone("IST", 5*3600+1800)
	earlyLocal := time.Date(2025, 6, 16, 0, 30, 0, 0, ist)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), DateOnly(earlyLocal))
}

func TestOnOrBeforeToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		scheduled time.Time
		want      bool
	}{
		{"yesterday", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), true},
		{"today at midnight", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"today late evening", time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC), true},
		{"tomorrow", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), false},
		{"next week", time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OnOrBeforeToday(tc.scheduled, now))
		})
	}
}

func TestOnOrBeforeTodayIgnoresZoneOffsets(t *testing.T) {
	// Same calendar day expressed in different zones must compare equal.
	tokyo := time.FixedZone("JST", 9*3600)
	pacific := time.FixedZone("PDT", -7*3600)

	scheduled := time.Date(2025, 6, 15, 1, 0, 0, 0, tokyo)
	now := time.Date(2025, 6, 15, 22, 0, 0, 0, pacific)

	assert.True(t, OnOrBeforeToday(scheduled, now))
}
