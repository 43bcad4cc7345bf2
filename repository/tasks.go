package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"main/model"
	"main/utils"
)

// TaskRepo handles CRUD and filtered queries for tasks.
type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// SearchOptions is the filter/sort/page specification for Find. All filters
// are combined as a conjunction; zero values mean "no constraint".
type SearchOptions struct {
	UserID      string
	Status      string // all, pending, completed
	Search      string // substring match against title or description
	Priorities  []model.Priority
	Tags        []string // task must carry every named tag
	DueBefore   *time.Time
	DueAfter    *time.Time
	IsRecurring *bool
	SortBy      string // created_at, updated_at, due_date, priority, title
	SortOrder   string // asc or desc
	Page        int
	PageSize    int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"title":      "title",
	"priority":   "CASE priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END",
}

func (r *TaskRepo) Create(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	tags := task.Tags
	task.Tags = nil
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		utils.TrackError("database", "task_create_failed")
		return fmt.Errorf("create task: %w", err)
	}
	task.Tags = tags
	if len(tags) > 0 {
		if err := r.db.WithContext(ctx).Model(task).Association("Tags").Replace(tags); err != nil {
			utils.TrackError("database", "task_tag_link_failed")
			return fmt.Errorf("link tags: %w", err)
		}
	}
	return nil
}

// GetByID returns the task only when it belongs to userID; a task owned by
// someone else is reported as ErrNotFound.
func (r *TaskRepo) GetByID(ctx context.Context, userID string, taskID uint) (*model.Task, error) {
	timer := utils.TrackDBOperation("select", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Find applies the filter conjunction and returns one page of tasks plus
// the total count of matches before pagination.
func (r *TaskRepo) Find(ctx context.Context, opts SearchOptions) ([]*model.Task, int64, error) {
	timer := utils.TrackDBOperation("select", "tasks")
	defer timer.ObserveDuration()

	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("tasks.user_id = ?", opts.UserID)

	switch opts.Status {
	case "pending":
		q = q.Where("tasks.completed = ?", false)
	case "completed":
		q = q.Where("tasks.completed = ?", true)
	}

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("LOWER(tasks.title) LIKE LOWER(?) OR LOWER(tasks.description) LIKE LOWER(?)", pattern, pattern)
	}

	if len(opts.Priorities) > 0 {
		q = q.Where("tasks.priority IN ?", opts.Priorities)
	}

	if len(opts.Tags) > 0 {
		sub := r.db.Table("task_tags").
			Select("task_tags.task_id").
			Joins("JOIN tags ON tags.id = task_tags.tag_id").
			Where("tags.name IN ?", opts.Tags).
			Group("task_tags.task_id").
			Having("COUNT(DISTINCT tags.name) = ?", len(opts.Tags))
		q = q.Where("tasks.id IN (?)", sub)
	}

	if opts.DueAfter != nil {
		q = q.Where("tasks.due_date >= ?", *opts.DueAfter)
	}
	if opts.DueBefore != nil {
		q = q.Where("tasks.due_date <= ?", *opts.DueBefore)
	}

	if opts.IsRecurring != nil {
		q = q.Where("tasks.is_recurring = ?", *opts.IsRecurring)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.TrackError("database", "task_count_failed")
		return nil, 0, err
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.SortOrder == "asc" {
		direction = "ASC"
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var tasks []*model.Task
	err := q.Preload("Tags").
		Order(column + " " + direction).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		utils.TrackError("database", "task_find_failed")
		return nil, 0, err
	}
	return tasks, total, nil
}

// AllForUser loads every task of one user, for aggregate statistics.
func (r *TaskRepo) AllForUser(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("select", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	return tasks, nil
}

// Update persists changed fields of an already-loaded, owner-verified task
// and replaces its tag set.
func (r *TaskRepo) Update(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	task.UpdatedAt = time.Now().UTC()
	tags := task.Tags
	task.Tags = nil
	err := r.db.WithContext(ctx).
		Omit("Tags").
		Select("Title", "Description", "Completed", "Priority", "DueDate",
			"ReminderTime", "IsRecurring", "RecurrencePattern", "UpdatedAt").
		Where("user_id = ?", task.UserID).
		Save(task).Error
	task.Tags = tags
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return fmt.Errorf("update task: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(task).Association("Tags").Replace(tags); err != nil {
		utils.TrackError("database", "task_tag_link_failed")
		return fmt.Errorf("link tags: %w", err)
	}
	return nil
}

// SetCompleted flips the completion flag, owner-scoped.
func (r *TaskRepo) SetCompleted(ctx context.Context, userID string, taskID uint, completed bool) (*model.Task, error) {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	task, err := r.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"completed":  completed,
		"updated_at": time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(updates).Error; err != nil {
		utils.TrackError("database", "task_update_failed")
		return nil, err
	}
	task.Completed = completed
	task.UpdatedAt = updates["updated_at"].(time.Time)
	return task, nil
}

// Delete removes the task and its tag associations, owner-scoped.
func (r *TaskRepo) Delete(ctx context.Context, userID string, taskID uint) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{})
	if result.Error != nil {
		utils.TrackError("database", "task_delete_failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.TaskTag{}).Error; err != nil {
		utils.TrackError("database", "task_tag_cleanup_failed")
		return err
	}
	return nil
}

// ReminderRow is one joined task+owner row produced by the sweep queries.
type ReminderRow struct {
	TaskID       uint           `json:"task_id"`
	UserID       string         `json:"user_id"`
	UserEmail    string         `json:"user_email"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Priority     model.Priority `json:"priority"`
	ReminderTime *time.Time     `json:"reminder_time,omitempty"`
	DueDate      *time.Time     `json:"due_date,omitempty"`
}

// DueReminders returns incomplete tasks whose reminder falls in
// (now, now+lookahead].
func (r *TaskRepo) DueReminders(ctx context.Context, now time.Time, lookahead time.Duration) ([]ReminderRow, error) {
	timer := utils.TrackDBOperation("select", "tasks")
	defer timer.ObserveDuration()

	var rows []ReminderRow
	err := r.db.WithContext(ctx).Table("tasks").
		Select("tasks.id AS task_id, tasks.user_id, users.email AS user_email, tasks.title, tasks.description, tasks.priority, tasks.reminder_time, tasks.due_date").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.completed = ?", false).
		Where("tasks.reminder_time > ? AND tasks.reminder_time <= ?", now, now.Add(lookahead)).
		Scan(&rows).Error
	if err != nil {
		utils.TrackError("database", "reminder_query_failed")
		return nil, err
	}
	return rows, nil
}

// Overdue returns incomplete tasks whose due date is strictly before now.
func (r *TaskRepo) Overdue(ctx context.Context, now time.Time) ([]ReminderRow, error) {
	timer := utils.TrackDBOperation("select", "tasks")
	defer timer.ObserveDuration()

	var rows []ReminderRow
	err := r.db.WithContext(ctx).Table("tasks").
		Select("tasks.id AS task_id, tasks.user_id, users.email AS user_email, tasks.title, tasks.description, tasks.priority, tasks.reminder_time, tasks.due_date").
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.completed = ?", false).
		Where("tasks.due_date IS NOT NULL AND tasks.due_date < ?", now).
		Scan(&rows).Error
	if err != nil {
		utils.TrackError("database", "overdue_query_failed")
		return nil, err
	}
	return rows, nil
}
