package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

// SignupService manages (user, event) attendance pairings.
type SignupService interface {
	SignUp(ctx context.Context, caller *model.User, eventID uint) error
	CancelSignup(ctx context.Context, caller *model.User, eventID uint) error
	ListAttendees(ctx context.Context, eventID uint) ([]model.User, error)
	RemoveAttendee(ctx context.Context, caller *model.User, eventID, attendeeID uint) error
	ListSignedUpEvents(ctx context.Context, userID uint) ([]model.Event, error)
}

type signupService struct {
	signups repository.SignupRepository
	events  repository.EventRepository
}

// NewSignupService builds a SignupService.
func NewSignupService(signups repository.SignupRepository, events repository.EventRepository) SignupService {
	return &signupService{signups: signups, events: events}
}

// SignUp records attendance intent. The unique (user, event) index makes a
// duplicate attempt a Conflict rather than a second row.
func (s *signupService) SignUp(ctx context.Context, caller *model.User, eventID uint) error {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return err
	}

	signup := &model.Signup{UserID: caller.ID, EventID: eventID}
	if err := s.signups.Create(ctx, signup); err != nil {
		if apperrors.IsDuplicateEntry(err) {
			return apperrors.ErrDuplicateSignup
		}
		return fmt.Errorf("create signup: %w", err)
	}
	return nil
}

func (s *signupService) CancelSignup(ctx context.Context, caller *model.User, eventID uint) error {
	removed, err := s.signups.Delete(ctx, caller.ID, eventID)
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if !removed {
		return apperrors.ErrSignupNotFound
	}
	return nil
}

// ListAttendees returns sanitized attendee records. An empty list is a valid
// result, not an error.
func (s *signupService) ListAttendees(ctx context.Context, eventID uint) ([]model.User, error) {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return nil, err
	}

	attendees, err := s.signups.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	sanitized := make([]model.User, 0, len(attendees))
	for _, attendee := range attendees {
		sanitized = append(sanitized, attendee.Sanitized())
	}
	return sanitized, nil
}

// RemoveAttendee lets the organizer drop an attendee from their event.
func (s *signupService) RemoveAttendee(ctx context.Context, caller *model.User, eventID, attendeeID uint) error {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !IsOrganizer(event, caller) {
		return apperrors.ErrNotOrganizer
	}

	removed, err := s.signups.Delete(ctx, attendeeID, eventID)
	if err != nil {
		return fmt.Errorf("delete signup: %w", err)
	}
	if !removed {
		return apperrors.ErrSignupNotFound
	}
	return nil
}

func (s *signupService) ListSignedUpEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	return s.signups.ListEventsForUser(ctx, userID)
}

func (s *signupService) findEvent(ctx context.Context, eventID uint) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}
