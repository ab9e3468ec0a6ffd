package services

import (
	"errors"
	"testing"
	"time"

	"shelter-backend/models"
)

func schedule(start, end string, available bool) *models.ServiceSchedule {
	return &models.ServiceSchedule{StartTime: start, EndTime: end, IsAvailable: available}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestWithinWindow(t *testing.T) {
	cases := []struct {
		name     string
		schedule *models.ServiceSchedule
		instant  time.Time
		duration int
		want     bool
	}{
		{"inside window", schedule("08:00", "17:00", true), at(10, 0), 60, true},
		{"starts at open", schedule("08:00", "17:00", true), at(8, 0), 60, true},
		{"ends exactly at close", schedule("08:00", "17:00", true), at(16, 0), 60, true},
		{"spills past close", schedule("08:00", "17:00", true), at(16, 30), 60, false},
		{"before open", schedule("08:00", "17:00", true), at(7, 59), 30, false},
		{"after close", schedule("08:00", "17:00", true), at(17, 0), 15, false},
		{"schedule switched off", schedule("08:00", "17:00", false), at(10, 0), 30, false},
		{"crosses midnight", schedule("08:00", "23:59", true), at(23, 30), 60, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := WithinWindow(tc.schedule, tc.instant, tc.duration)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("WithinWindow(%s+%dmin in %s-%s) = %v, want %v",
					tc.instant.Format("15:04"), tc.duration,
					tc.schedule.StartTime, tc.schedule.EndTime, got, tc.want)
			}
		})
	}
}

func TestWithinWindowRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		schedule *models.ServiceSchedule
		duration int
	}{
		{"nil schedule", nil, 30},
		{"zero duration", schedule("08:00", "17:00", true), 0},
		{"negative duration", schedule("08:00", "17:00", true), -15},
		{"malformed start", schedule("8am", "17:00", true), 30},
		{"malformed end", schedule("08:00", "late", true), 30},
		{"start not before end", schedule("17:00", "08:00", true), 30},
		{"start equals end", schedule("09:00", "09:00", true), 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := WithinWindow(tc.schedule, at(10, 0), tc.duration)
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("expected InvalidSchedule, got %v", err)
			}
		})
	}
}

func TestWithinWindowIgnoresDayOfWeek(t *testing.T) {
	s := schedule("08:00", "17:00", true)
	s.DayOfWeek = 2 // Tuesday

	sunday := time.Date(2026, time.March, 8, 10, 0, 0, 0, time.UTC)
	ok, err := WithinWindow(s, sunday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("window should apply uniformly to every day of the week")
	}
}
