package model

import "time"

// TaskStats is the aggregate returned by GET /stats/tasks.
type TaskStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	ByPriority     map[string]int `json:"by_priority"`
	Overdue        int            `json:"overdue"`
	DueToday       int            `json:"due_today"`
	DueThisWeek    int            `json:"due_this_week"`
	Recurring      int            `json:"recurring"`
	CompletionRate float64        `json:"completion_rate"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
