package dto

import (
	"time"

	"main/model"
)

type TaskCreateRequest struct {
	Title             string                   `json:"title" binding:"required,max=200"`
	Description       string                   `json:"description" binding:"max=1000"`
	Priority          model.Priority           `json:"priority"`
	DueDate           *time.Time               `json:"due_date"`
	ReminderTime      *time.Time               `json:"reminder_time"`
	IsRecurring       bool                     `json:"is_recurring"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrence_pattern"`
	Tags              []string                 `json:"tags"`
}

// TaskUpdateRequest carries partial updates: a present, non-null field
// replaces the stored value, an absent field leaves it unchanged.
type TaskUpdateRequest struct {
	Title             *string                  `json:"title"`
	Description       *string                  `json:"description"`
	Completed         *bool                    `json:"completed"`
	Priority          *model.Priority          `json:"priority"`
	DueDate           *time.Time               `json:"due_date"`
	ReminderTime      *time.Time               `json:"reminder_time"`
	IsRecurring       *bool                    `json:"is_recurring"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrence_pattern"`
	Tags              *[]string                `json:"tags"`
}

type TaskPatchRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type TaskResponse struct {
	ID                uint                     `json:"id"`
	UserID            string                   `json:"user_id"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description,omitempty"`
	Completed         bool                     `json:"completed"`
	Priority          model.Priority           `json:"priority"`
	DueDate           *time.Time               `json:"due_date,omitempty"`
	ReminderTime      *time.Time               `json:"reminder_time,omitempty"`
	IsRecurring       bool                     `json:"is_recurring"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrence_pattern,omitempty"`
	Tags              []TagResponse            `json:"tags"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func ToTaskResponse(task *model.Task) TaskResponse {
	tags := make([]TagResponse, 0, len(task.Tags))
	for i := range task.Tags {
		tags = append(tags, ToTagResponse(&task.Tags[i]))
	}
	return TaskResponse{
		ID:                task.ID,
		UserID:            task.UserID,
		Title:             task.Title,
		Description:       task.Description,
		Completed:         task.Completed,
		Priority:          task.Priority,
		DueDate:           task.DueDate,
		ReminderTime:      task.ReminderTime,
		IsRecurring:       task.IsRecurring,
		RecurrencePattern: task.RecurrencePattern,
		Tags:              tags,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
