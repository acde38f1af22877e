// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"postpilot/internal/cache"
	"postpilot/internal/models"

	"gorm.io/gorm"
)

// ScheduleRepository defines persistence operations for schedules. Each user
// owns at most one schedule row; posts live inside it as an embedded list and
// are always written back as part of the whole row.
type ScheduleRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Save(ctx context.Context, schedule *models.Schedule) error
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository returns a new ScheduleRepository implementation.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetByUserID(ctx context.Context, userID uint) (*models.Schedule, error) {
	var schedule models.Schedule
	key := cache.ScheduleKey(userID)

	err := cache.Aside(ctx, key, &schedule, cache.ScheduleTTL, func() error {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&schedule).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Schedule", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Schedule already exists for user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateSchedule(ctx, schedule.UserID)
	return nil
}

// Save writes the full schedule row back, embedded posts included.
func (r *scheduleRepository) Save(ctx context.Context, schedule *models.Schedule) error {
	if err := r.db.WithContext(ctx).Save(schedule).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSchedule(ctx, schedule.UserID)
	return nil
}
