package usecase

import (
	"context"
	"time"

	"main/dto"
	"main/repository"
)

// ReminderService is the pull-based sweep over reminder and due
// timestamps. Both methods are pure queries; the caller (the jobs
// endpoint, triggered by an external scheduler) publishes events per
// result and continues on per-item failure.
type ReminderService struct {
	Tasks *repository.TaskRepo
}

const DefaultLookahead = 60 * time.Minute

// DueReminders returns incomplete tasks whose reminder timestamp falls in
// (now, now+lookahead].
func (s *ReminderService) DueReminders(ctx context.Context, lookahead time.Duration) ([]dto.ReminderItem, error) {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	now := time.Now().UTC()

	rows, err := s.Tasks.DueReminders(ctx, now, lookahead)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReminderItem, 0, len(rows))
	for _, row := range rows {
		item := toReminderItem(row)
		if row.ReminderTime != nil {
			item.MinutesUntilReminder = int(row.ReminderTime.Sub(now).Minutes())
		}
		items = append(items, item)
	}
	return items, nil
}

// OverdueTasks returns incomplete tasks whose due timestamp is strictly
// before now, with hours-overdue computed.
func (s *ReminderService) OverdueTasks(ctx context.Context) ([]dto.ReminderItem, error) {
	now := time.Now().UTC()

	rows, err := s.Tasks.Overdue(ctx, now)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReminderItem, 0, len(rows))
	for _, row := range rows {
		item := toReminderItem(row)
		if row.DueDate != nil {
			item.HoursOverdue = int(now.Sub(*row.DueDate).Hours())
		}
		items = append(items, item)
	}
	return items, nil
}

func toReminderItem(row repository.ReminderRow) dto.ReminderItem {
	return dto.ReminderItem{
		TaskID:       row.TaskID,
		UserID:       row.UserID,
		UserEmail:    row.UserEmail,
		Title:        row.Title,
		Description:  row.Description,
		Priority:     row.Priority,
		ReminderTime: row.ReminderTime,
		DueDate:      row.DueDate,
	}
}
