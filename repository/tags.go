package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"main/model"
	"main/utils"
)

// TagRepo handles tag records and their task associations. Tag names are
// unique across all users.
type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts a tag; ErrDuplicate when the name is already taken by any
// user (exact, case-sensitive match).
func (r *TagRepo) Create(ctx context.Context, tag *model.Tag) error {
	timer := utils.TrackDBOperation("insert", "tags")
	defer timer.ObserveDuration()

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ?", tag.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	if tag.Color == "" {
		tag.Color = model.DefaultTagColor
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		utils.TrackError("database", "tag_create_failed")
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// GetByID returns the tag only when the user created it.
func (r *TagRepo) GetByID(ctx context.Context, userID string, tagID uint) (*model.Tag, error) {
	timer := utils.TrackDBOperation("select", "tags")
	defer timer.ObserveDuration()

	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("created_by = ? AND id = ?", userID, tagID).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// ListByCreator returns the tags a user created, newest first.
func (r *TagRepo) ListByCreator(ctx context.Context, userID string) ([]*model.Tag, error) {
	timer := utils.TrackDBOperation("select", "tags")
	defer timer.ObserveDuration()

	var tags []*model.Tag
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		utils.TrackError("database", "tag_fetch_failed")
		return nil, err
	}
	return tags, nil
}

// Update renames or recolors a tag; a rename re-checks uniqueness against
// every other tag.
func (r *TagRepo) Update(ctx context.Context, userID string, tagID uint, name, color *string) (*model.Tag, error) {
	timer := utils.TrackDBOperation("update", "tags")
	defer timer.ObserveDuration()

	tag, err := r.GetByID(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Tag{}).
			Where("name = ? AND id <> ?", *name, tagID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicate
		}
		tag.Name = *name
	}
	if color != nil {
		tag.Color = *color
	}

	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		utils.TrackError("database", "tag_update_failed")
		return nil, err
	}
	return tag, nil
}

// Delete removes all task associations first, then the tag itself.
func (r *TagRepo) Delete(ctx context.Context, userID string, tagID uint) error {
	timer := utils.TrackDBOperation("delete", "tags")
	defer timer.ObserveDuration()

	if _, err := r.GetByID(ctx, userID, tagID); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("tag_id = ?", tagID).Delete(&model.TaskTag{}).Error; err != nil {
		utils.TrackError("database", "tag_unlink_failed")
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Tag{}, tagID).Error; err != nil {
		utils.TrackError("database", "tag_delete_failed")
		return err
	}
	return nil
}

// FindOrCreateByName resolves tag names supplied on a task write. An
// existing tag with that exact name is reused regardless of creator; a
// missing one is created for userID with the default color.
func (r *TagRepo) FindOrCreateByName(ctx context.Context, userID string, names []string) ([]model.Tag, error) {
	timer := utils.TrackDBOperation("select", "tags")
	defer timer.ObserveDuration()

	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag model.Tag
		err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name, Color: model.DefaultTagColor, CreatedBy: userID}
			if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
				utils.TrackError("database", "tag_create_failed")
				return nil, fmt.Errorf("create tag %q: %w", name, err)
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
