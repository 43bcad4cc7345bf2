package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"main/model"
	"main/utils"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user; ErrDuplicate when the email is already registered.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		utils.TrackError("database", "user_create_failed")
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("select", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	timer := utils.TrackDBOperation("select", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
