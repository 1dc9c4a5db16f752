package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyReset(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-day rolls to next midnight",
			in:   time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC),
			want: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight rolls a full day",
			in:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			in:   time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDailyReset(tt.in))
		})
	}
}

func TestNextWeeklyReset(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday rolls to next monday",
			in:   time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls to the following day",
			in:   time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday mid-day rolls a full week",
			in:   time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight rolls a full week",
			in:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWeeklyReset(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}
