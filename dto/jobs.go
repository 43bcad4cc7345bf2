package dto

import (
	"time"

	"main/model"
)

// ReminderItem is one sweep hit: a task whose reminder or due timestamp has
// entered the target window, joined with its owner's contact.
type ReminderItem struct {
	TaskID               uint           `json:"task_id"`
	UserID               string         `json:"user_id"`
	UserEmail            string         `json:"user_email"`
	Title                string         `json:"title"`
	Description          string         `json:"description,omitempty"`
	Priority             model.Priority `json:"priority"`
	ReminderTime         *time.Time     `json:"reminder_time,omitempty"`
	DueDate              *time.Time     `json:"due_date,omitempty"`
	MinutesUntilReminder int            `json:"minutes_until_reminder,omitempty"`
	HoursOverdue         int            `json:"hours_overdue,omitempty"`
}

type ReminderSweepResponse struct {
	Status          string         `json:"status"`
	RemindersFound  int            `json:"reminders_found"`
	EventsPublished int            `json:"events_published"`
	Items           []ReminderItem `json:"items"`
}

type OverdueSweepResponse struct {
	Status          string         `json:"status"`
	OverdueFound    int            `json:"overdue_found"`
	EventsPublished int            `json:"events_published"`
	Items           []ReminderItem `json:"items"`
}
