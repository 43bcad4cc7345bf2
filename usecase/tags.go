package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"main/model"
	"main/repository"
)

// TagService owns tag records. Names are unique system-wide; reads are
// scoped to the tags the acting user created.
type TagService struct {
	Tags *repository.TagRepo
}

func (s *TagService) CreateTag(ctx context.Context, userID, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErr("Tag name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, validationErr("Tag name exceeds maximum length of 50")
	}

	tag := &model.Tag{
		Name:      name,
		Color:     color,
		CreatedBy: userID,
	}
	if err := s.Tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) GetTag(ctx context.Context, userID string, tagID uint) (*model.Tag, error) {
	return s.Tags.GetByID(ctx, userID, tagID)
}

func (s *TagService) ListTags(ctx context.Context, userID string) ([]*model.Tag, error) {
	return s.Tags.ListByCreator(ctx, userID)
}

func (s *TagService) UpdateTag(ctx context.Context, userID string, tagID uint, name, color *string) (*model.Tag, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, validationErr("Tag name cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > 50 {
			return nil, validationErr("Tag name exceeds maximum length of 50")
		}
		name = &trimmed
	}
	return s.Tags.Update(ctx, userID, tagID, name, color)
}

func (s *TagService) DeleteTag(ctx context.Context, userID string, tagID uint) error {
	return s.Tags.Delete(ctx, userID, tagID)
}
