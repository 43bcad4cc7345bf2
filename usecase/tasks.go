package usecase

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// TaskService owns task records: CRUD, the filtered query engine and the
// aggregate statistics. Every mutation emits a best-effort event through
// the publisher; publish failures never fail the triggering operation.
type TaskService struct {
	Tasks     *repository.TaskRepo
	Tags      *repository.TagRepo
	Publisher *services.EventPublisher
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, req dto.TaskCreateRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, validationErr("Priority must be low, medium, high or urgent")
	}

	pattern := req.RecurrencePattern
	if !req.IsRecurring {
		pattern = nil
	}
	normalizePattern(pattern)

	if err := validateTaskFields(&title, req.DueDate, req.ReminderTime, req.IsRecurring, pattern); err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:            userID,
		Title:             title,
		Description:       req.Description,
		Priority:          priority,
		DueDate:           req.DueDate,
		ReminderTime:      req.ReminderTime,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: pattern,
	}

	if len(req.Tags) > 0 {
		tags, err := s.Tags.FindOrCreateByName(ctx, userID, req.Tags)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("create")

	s.Publisher.PublishTaskCreated(ctx, task)
	if task.ReminderTime != nil {
		s.Publisher.PublishReminderScheduled(ctx, task.ID, userID, *task.ReminderTime)
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, userID string, taskID uint) (*model.Task, error) {
	return s.Tasks.GetByID(ctx, userID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, opts repository.SearchOptions) ([]*model.Task, int64, error) {
	return s.Tasks.Find(ctx, opts)
}

func (s *TaskService) UpdateTask(ctx context.Context, userID string, taskID uint, req dto.TaskUpdateRequest) (*model.Task, error) {
	task, err := s.Tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if utf8.RuneCountInString(title) > 200 {
			return nil, validationErr("Title exceeds maximum length of 200")
		}
		task.Title = title
		changes["title"] = title
	}
	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > 1000 {
			return nil, validationErr("Description exceeds maximum length of 1000")
		}
		task.Description = *req.Description
		changes["description"] = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
		changes["completed"] = *req.Completed
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, validationErr("Priority must be low, medium, high or urgent")
		}
		task.Priority = *req.Priority
		changes["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
		changes["due_date"] = *req.DueDate
	}
	if req.ReminderTime != nil {
		task.ReminderTime = req.ReminderTime
		changes["reminder_time"] = *req.ReminderTime
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
		changes["is_recurring"] = *req.IsRecurring
	}
	if req.RecurrencePattern != nil {
		task.RecurrencePattern = req.RecurrencePattern
		changes["recurrence_pattern"] = req.RecurrencePattern
	}

	// Pattern is populated iff the task is recurring.
	if !task.IsRecurring {
		task.RecurrencePattern = nil
	}
	normalizePattern(task.RecurrencePattern)

	if err := validateTaskFields(&task.Title, task.DueDate, task.ReminderTime, task.IsRecurring, task.RecurrencePattern); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		tags, err := s.Tags.FindOrCreateByName(ctx, userID, *req.Tags)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
		changes["tags"] = *req.Tags
	}

	if err := s.Tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("update")

	s.Publisher.PublishTaskUpdated(ctx, task.ID, userID, changes)
	if req.ReminderTime != nil {
		s.Publisher.PublishReminderScheduled(ctx, task.ID, userID, *req.ReminderTime)
	}
	return task, nil
}

// SetCompletion flips the completion flag without touching other fields.
func (s *TaskService) SetCompletion(ctx context.Context, userID string, taskID uint, completed bool) (*model.Task, error) {
	task, err := s.Tasks.SetCompleted(ctx, userID, taskID, completed)
	if err != nil {
		return nil, err
	}
	utils.TrackTaskOperation("complete")

	s.Publisher.PublishTaskCompleted(ctx, taskID, userID, completed)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID string, taskID uint) error {
	if err := s.Tasks.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	utils.TrackTaskOperation("delete")

	s.Publisher.PublishTaskDeleted(ctx, taskID, userID)
	return nil
}

// Stats aggregates the user's tasks into the dashboard counters.
func (s *TaskService) Stats(ctx context.Context, userID string) (*model.TaskStats, error) {
	tasks, err := s.Tasks.AllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekEnd := todayStart.AddDate(0, 0, 7)

	stats := &model.TaskStats{
		ByPriority: map[string]int{
			"low": 0, "medium": 0, "high": 0, "urgent": 0,
		},
		GeneratedAt: now,
	}

	for _, t := range tasks {
		stats.Total++
		if t.Completed {
			stats.Completed++
		}
		stats.ByPriority[string(t.Priority)]++
		if t.IsRecurring {
			stats.Recurring++
		}
		if t.Completed || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now) {
			stats.Overdue++
		}
		if !t.DueDate.Before(todayStart) && t.DueDate.Before(todayEnd) {
			stats.DueToday++
		}
		if !t.DueDate.Before(todayStart) && t.DueDate.Before(weekEnd) {
			stats.DueThisWeek++
		}
	}

	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// normalizePattern applies the implicit interval default before validation.
func normalizePattern(pattern *model.RecurrencePattern) {
	if pattern != nil && pattern.Interval == 0 {
		pattern.Interval = 1
	}
}
