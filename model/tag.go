package model

import "time"

// DefaultTagColor is applied when a tag is created without an explicit color.
const DefaultTagColor = "#3B82F6"

// Tag is a user-created label. Names are unique across all users, not per
// owner; find-or-create on task writes reuses whichever tag holds the name.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"size:7;default:#3B82F6" json:"color"`
	CreatedBy string    `gorm:"index;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskTag is the tasks<->tags junction row.
type TaskTag struct {
	TaskID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
