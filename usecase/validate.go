package usecase

import (
	"strings"
	"time"

	"main/model"
)

// Clock-skew allowance for "not in the past" checks.
const validationGracePeriod = time.Minute

// validateTaskFields checks due date ordering and recurrence shape before a
// task is written. title is ignored when nil (PATCH-style requests).
func validateTaskFields(title *string, dueDate, reminderTime *time.Time, isRecurring bool, pattern *model.RecurrencePattern) error {
	if title != nil && strings.TrimSpace(*title) == "" {
		return validationErr("Title cannot be empty")
	}

	now := time.Now().UTC()

	if dueDate != nil && now.Sub(*dueDate) > validationGracePeriod {
		return validationErr("Due date cannot be in the past")
	}

	if reminderTime != nil {
		if now.Sub(*reminderTime) > validationGracePeriod {
			return validationErr("Reminder time cannot be in the past")
		}
		if dueDate != nil && !reminderTime.Before(*dueDate) {
			return validationErr("Reminder time must be before due date")
		}
	}

	return validateRecurrence(isRecurring, pattern)
}

func validateRecurrence(isRecurring bool, pattern *model.RecurrencePattern) error {
	if isRecurring && pattern == nil {
		return validationErr("Recurrence pattern is required for recurring tasks")
	}
	if pattern == nil {
		return nil
	}

	if !pattern.Frequency.Valid() {
		return validationErr("Recurrence frequency must be daily, weekly, monthly or yearly")
	}
	if pattern.Interval < 1 {
		return validationErr("Recurrence interval must be at least 1")
	}

	switch pattern.Frequency {
	case model.RecurrenceWeekly:
		if len(pattern.DaysOfWeek) == 0 {
			return validationErr("Weekly recurrence requires at least one day of week")
		}
		if len(pattern.DaysOfWeek) > 7 {
			return validationErr("Cannot specify more than 7 days of week")
		}
		seen := make(map[int]bool, len(pattern.DaysOfWeek))
		for _, day := range pattern.DaysOfWeek {
			if day < 0 || day > 6 {
				return validationErr("Days of week must be integers between 0 (Monday) and 6 (Sunday)")
			}
			if seen[day] {
				return validationErr("Days of week must be distinct")
			}
			seen[day] = true
		}
	case model.RecurrenceMonthly:
		if pattern.DayOfMonth < 1 || pattern.DayOfMonth > 31 {
			return validationErr("Monthly recurrence requires day_of_month between 1 and 31")
		}
	case model.RecurrenceYearly:
		if pattern.Month < 1 || pattern.Month > 12 {
			return validationErr("Yearly recurrence requires month between 1 and 12")
		}
		if pattern.DayOfMonth < 1 || pattern.DayOfMonth > 31 {
			return validationErr("Yearly recurrence requires day_of_month between 1 and 31")
		}
	}

	if pattern.EndDate != nil && pattern.Occurrences != nil {
		return validationErr("Cannot specify both end_date and occurrences. Choose one.")
	}
	if pattern.EndDate != nil && pattern.EndDate.Before(time.Now().UTC()) {
		return validationErr("Recurrence end_date must be in the future")
	}
	if pattern.Occurrences != nil && *pattern.Occurrences < 1 {
		return validationErr("occurrences must be at least 1")
	}

	return nil
}
