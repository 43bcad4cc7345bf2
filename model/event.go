package model

import "time"

// Event types emitted by the task service.
const (
	EventTaskCreated       = "task.created"
	EventTaskUpdated       = "task.updated"
	EventTaskCompleted     = "task.completed"
	EventTaskDeleted       = "task.deleted"
	EventTaskOverdue       = "task.overdue"
	EventReminderScheduled = "reminder.scheduled"
	EventReminderDue       = "reminder.due"
)

// Bus topics.
const (
	TopicTaskEvents  = "task-events"
	TopicTaskUpdates = "task-updates"
	TopicReminders   = "reminders"
)

// EventLog is the audit-table fallback for events that could not be pushed
// to the bus. Rows are written once and never updated; Processed is reserved
// for an external consumer.
type EventLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	EventType string    `gorm:"size:50;index;not null" json:"event_type"`
	Topic     string    `gorm:"size:50;not null" json:"topic"`
	TaskID    *uint     `gorm:"index" json:"task_id,omitempty"`
	UserID    *string   `gorm:"size:36;index" json:"user_id,omitempty"`
	Payload   string    `json:"payload"`
	Processed bool      `gorm:"default:false" json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}
