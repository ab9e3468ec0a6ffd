package services

import (
	"time"

	"shelter-backend/models"
)

const minutesPerDay = 24 * 60

func parseMinuteOfDay(value string) (int, bool) {
	t, err := time.Parse(models.TimeOfDayFormat, value)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// WithinWindow reports whether the half-open interval
// [instant.timeOfDay, instant.timeOfDay+duration) is fully contained in
// the schedule's [startTime, endTime) and the schedule is switched on.
// An interval ending exactly at endTime is accepted; one that would cross
// endTime, or midnight, is rejected rather than wrapped.
//
// The window applies uniformly to every day of the week; DayOfWeek is
// not consulted.
func WithinWindow(schedule *models.ServiceSchedule, instant time.Time, durationMinutes int) (bool, error) {
	if schedule == nil {
		return false, domainErrf(KindInvalidSchedule, "schedule", "no schedule bound")
	}
	if !schedule.IsAvailable {
		return false, nil
	}
	if durationMinutes <= 0 {
		return false, domainErrf(KindInvalidSchedule, "duration_minutes",
			"duration must be positive, got %d", durationMinutes)
	}

	start, ok := parseMinuteOfDay(schedule.StartTime)
	if !ok {
		return false, domainErrf(KindInvalidSchedule, "start_time",
			"malformed time-of-day %q", schedule.StartTime)
	}
	end, ok := parseMinuteOfDay(schedule.EndTime)
	if !ok {
		return false, domainErrf(KindInvalidSchedule, "end_time",
			"malformed time-of-day %q", schedule.EndTime)
	}
	if start >= end {
		return false, domainErrf(KindInvalidSchedule, "start_time",
			"start %q is not before end %q", schedule.StartTime, schedule.EndTime)
	}

	from := instant.Hour()*60 + instant.Minute()
	to := from + durationMinutes
	if to > minutesPerDay {
		// would spill into the next day
		return false, nil
	}

	return from >= start && to <= end, nil
}
