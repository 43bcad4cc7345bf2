package handler

import (
	"strconv"
	"time"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CheckRemindersHandler sweeps for reminders entering the lookahead
// window and publishes one reminder.due event per hit. Meant to be
// called by an external scheduler, so it requires no user token.
func CheckRemindersHandler(c *gin.Context, reminders *usecase.ReminderService, publisher *services.EventPublisher) {
	lookahead := usecase.DefaultLookahead
	if raw := c.Query("lookahead_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			utils.BadRequest(c, "lookahead_minutes must be a positive integer")
			return
		}
		lookahead = time.Duration(minutes) * time.Minute
	}

	items, err := reminders.DueReminders(c, lookahead)
	if err != nil {
		utils.TrackError("handler", "jobs")
		utils.InternalError(c, "Internal server error")
		return
	}

	published := 0
	for i := range items {
		item := items[i]
		publisher.Publish(c, model.EventReminderDue, model.TopicReminders, map[string]interface{}{
			"task_id":                item.TaskID,
			"user_id":                item.UserID,
			"user_email":             item.UserEmail,
			"title":                  item.Title,
			"priority":               item.Priority,
			"reminder_time":          item.ReminderTime,
			"minutes_until_reminder": item.MinutesUntilReminder,
		}, &item.TaskID, &item.UserID)
		published++
	}

	utils.Success(c, dto.ReminderSweepResponse{
		Status:          "completed",
		RemindersFound:  len(items),
		EventsPublished: published,
		Items:           items,
	})
}

// CheckOverdueHandler sweeps for incomplete tasks past their due date and
// publishes one task.overdue event per hit.
func CheckOverdueHandler(c *gin.Context, reminders *usecase.ReminderService, publisher *services.EventPublisher) {
	items, err := reminders.OverdueTasks(c)
	if err != nil {
		utils.TrackError("handler", "jobs")
		utils.InternalError(c, "Internal server error")
		return
	}

	published := 0
	for i := range items {
		item := items[i]
		publisher.Publish(c, model.EventTaskOverdue, model.TopicTaskEvents, map[string]interface{}{
			"task_id":       item.TaskID,
			"user_id":       item.UserID,
			"user_email":    item.UserEmail,
			"title":         item.Title,
			"priority":      item.Priority,
			"due_date":      item.DueDate,
			"hours_overdue": item.HoursOverdue,
		}, &item.TaskID, &item.UserID)
		published++
	}

	utils.Success(c, dto.OverdueSweepResponse{
		Status:          "completed",
		OverdueFound:    len(items),
		EventsPublished: published,
		Items:           items,
	})
}
