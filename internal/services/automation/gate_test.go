package automation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultHours() BusinessHours {
	return BusinessHours{
		StartHour: 8,
		EndHour:   18,
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

func TestBusinessHours_Contains(t *testing.T) {
	hours := defaultHours()

	// 2025-03-10 — понедельник, 2025-03-15 — суббота.
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "monday before open", at: time.Date(2025, 3, 10, 7, 59, 0, 0, time.UTC), want: false},
		{name: "monday at open", at: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), want: true},
		{name: "monday midday", at: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC), want: true},
		{name: "monday last minute", at: time.Date(2025, 3, 10, 17, 59, 0, 0, time.UTC), want: true},
		{name: "monday at close", at: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), want: false},
		{name: "saturday midday", at: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), want: false},
		{name: "sunday midday", at: time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.Contains(tt.at))
		})
	}
}

func TestBusinessHours_NextOpen(t *testing.T) {
	hours := defaultHours()

	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "monday evening points to tuesday morning",
			at:   time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "friday evening skips weekend",
			at:   time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday points to monday",
			at:   time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.NextOpen(tt.at))
		})
	}
}

func TestBusinessHours_Validate(t *testing.T) {
	valid := defaultHours()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		hours BusinessHours
	}{
		{name: "negative start", hours: BusinessHours{StartHour: -1, EndHour: 18, WorkDays: valid.WorkDays}},
		{name: "end after midnight", hours: BusinessHours{StartHour: 8, EndHour: 25, WorkDays: valid.WorkDays}},
		{name: "start not before end", hours: BusinessHours{StartHour: 18, EndHour: 8, WorkDays: valid.WorkDays}},
		{name: "empty work days", hours: BusinessHours{StartHour: 8, EndHour: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.hours.Validate())
		})
	}
}
