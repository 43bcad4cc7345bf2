package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"main/model"
	"main/utils"
)

// EventRepo writes audit rows for events the bus could not carry.
type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Insert(ctx context.Context, entry *model.EventLog) error {
	timer := utils.TrackDBOperation("insert", "event_logs")
	defer timer.ObserveDuration()

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		utils.TrackError("database", "event_log_failed")
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}
