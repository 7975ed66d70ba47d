package repository

import (
	"context"

	"gorm.io/gorm"

	"evently/internal/model"
)

// SignupRepository defines persistence for (user, event) attendance pairings.
type SignupRepository interface {
	Create(ctx context.Context, signup *model.Signup) error
	// Delete removes the pairing and reports whether one existed.
	Delete(ctx context.Context, userID, eventID uint) (bool, error)
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	ListAttendees(ctx context.Context, eventID uint) ([]model.User, error)
	ListEventsForUser(ctx context.Context, userID uint) ([]model.Event, error)
}

type signupRepository struct {
	db *gorm.DB
}

// NewSignupRepository builds a GORM-backed repository.
func NewSignupRepository(db *gorm.DB) SignupRepository {
	return &signupRepository{db: db}
}

func (r *signupRepository) Create(ctx context.Context, signup *model.Signup) error {
	return r.db.WithContext(ctx).Create(signup).Error
}

func (r *signupRepository) Delete(ctx context.Context, userID, eventID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.Signup{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *signupRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Signup{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *signupRepository) ListAttendees(ctx context.Context, eventID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN signups ON signups.user_id = users.id").
		Where("signups.event_id = ?", eventID).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *signupRepository) ListEventsForUser(ctx context.Context, userID uint) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Joins("JOIN signups ON signups.event_id = events.id").
		Where("signups.user_id = ?", userID).
		Order("events.event_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
