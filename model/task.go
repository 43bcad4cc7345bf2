package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the four known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type RecurrenceFrequency string

const (
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
	RecurrenceYearly  RecurrenceFrequency = "yearly"
)

func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// RecurrencePattern describes a repeat schedule. It is stored with the task
// and validated on write; nothing in this service expands it into concrete
// occurrences.
type RecurrencePattern struct {
	Frequency   RecurrenceFrequency `json:"frequency"`
	Interval    int                 `json:"interval"`
	DaysOfWeek  []int               `json:"days_of_week,omitempty"`  // weekly: 0=Monday .. 6=Sunday
	DayOfMonth  int                 `json:"day_of_month,omitempty"`  // monthly/yearly: 1-31
	Month       int                 `json:"month,omitempty"`         // yearly: 1-12
	EndDate     *time.Time          `json:"end_date,omitempty"`      // exclusive with Occurrences
	Occurrences *int                `json:"occurrences,omitempty"`
}

type Task struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	UserID            string             `gorm:"index;not null" json:"user_id"`
	Title             string             `gorm:"size:200;not null" json:"title"`
	Description       string             `gorm:"size:1000" json:"description,omitempty"`
	Completed         bool               `gorm:"default:false" json:"completed"`
	Priority          Priority           `gorm:"size:10;default:medium" json:"priority"`
	DueDate           *time.Time         `json:"due_date,omitempty"`
	ReminderTime      *time.Time         `json:"reminder_time,omitempty"`
	IsRecurring       bool               `gorm:"default:false" json:"is_recurring"`
	RecurrencePattern *RecurrencePattern `gorm:"serializer:json" json:"recurrence_pattern,omitempty"`
	Tags              []Tag              `gorm:"many2many:task_tags" json:"tags"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
