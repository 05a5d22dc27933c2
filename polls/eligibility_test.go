// Copyright (c) 2026 KU Polls Authors. All rights reserved.

package polls

import (
	"testing"
	"time"
)

func TestEligibilityBoundaries(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		pubDate  time.Time
		endDate  *time.Time
		expected State
	}{
		{
			name:     "published one second ago, no end date",
			pubDate:  now.Add(-time.Second),
			expected: Open,
		},
		{
			name:     "publishes in one second",
			pubDate:  now.Add(time.Second),
			expected: Unpublished,
		},
		{
			name:     "published exactly now",
			pubDate:  now,
			expected: Open,
		},
		{
			name:     "ended one second ago",
			pubDate:  now.Add(-time.Hour),
			endDate:  timePtr(now.Add(-time.Second)),
			expected: Closed,
		},
		{
			name:     "ends exactly now",
			pubDate:  now.Add(-time.Hour),
			endDate:  timePtr(now),
			expected: Closed,
		},
		{
			name:     "ends in one second",
			pubDate:  now.Add(-time.Hour),
			endDate:  timePtr(now.Add(time.Second)),
			expected: Open,
		},
		{
			name:     "elapsed end date wins over future pub date",
			pubDate:  now.Add(time.Hour),
			endDate:  timePtr(now.Add(-time.Second)),
			expected: Closed,
		},
		{
			name:     "published thirty days ago",
			pubDate:  now.Add(-30 * 24 * time.Hour),
			expected: Open,
		},
		{
			name:     "publishes in ten days",
			pubDate:  now.Add(10 * 24 * time.Hour),
			expected: Unpublished,
		},
		{
			name:     "ended five days ago",
			pubDate:  now.Add(-10 * 24 * time.Hour),
			endDate:  timePtr(now.Add(-5 * 24 * time.Hour)),
			expected: Closed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Eligibility(tt.pubDate, tt.endDate, now)
			if got != tt.expected {
				t.Errorf("Eligibility() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExactlyOneStateHolds(t *testing.T) {
	now := time.Now()
	offsets := []time.Duration{
		-30 * 24 * time.Hour, -time.Hour, -time.Second, 0,
		time.Second, time.Hour, 30 * 24 * time.Hour,
	}

	check := func(pub time.Time, end *time.Time) {
		t.Helper()
		state := Eligibility(pub, end, now)
		if state != Unpublished && state != Open && state != Closed {
			t.Errorf("Eligibility(%v, %v) = %v, not a defined state", pub, end, state)
		}
		if state.CanVote() && !state.IsPublished() {
			t.Errorf("Eligibility(%v, %v): CanVote() must imply IsPublished()", pub, end)
		}
	}

	for _, po := range offsets {
		check(now.Add(po), nil)
		for _, eo := range offsets {
			check(now.Add(po), timePtr(now.Add(eo)))
		}
	}
}

func TestClosedNeverReopens(t *testing.T) {
	now := time.Now()
	pub := now.Add(-time.Hour)
	end := timePtr(now.Add(-time.Minute))

	// Once Closed at some instant, every later instant is also Closed
	for _, ahead := range []time.Duration{0, time.Second, time.Hour, 24 * time.Hour} {
		if got := Eligibility(pub, end, now.Add(ahead)); got != Closed {
			t.Errorf("Eligibility at now+%v = %v, want Closed", ahead, got)
		}
	}
}

func TestStateString(t *testing.T) {
	if Unpublished.String() != "unpublished" || Open.String() != "open" || Closed.String() != "closed" {
		t.Errorf("unexpected state names: %v %v %v", Unpublished, Open, Closed)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
