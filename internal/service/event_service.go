package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

// EventInput carries caller-editable event fields. Organizer name and email
// always come from the caller identity, never from the request body.
type EventInput struct {
	Title            string
	Description      string
	Date             time.Time
	DateEnd          *time.Time
	Location         string
	OrganizerPhone   string
	OrganizerWebsite string
	ImageURL         string
}

// IsOrganizer is the single ownership predicate: an event belongs to the
// caller whose email exactly matches the stored organizer email.
func IsOrganizer(event *model.Event, caller *model.User) bool {
	return caller != nil && event.OrganizerEmail == caller.Email
}

// EventService exposes event domain operations.
type EventService interface {
	ListEvents(ctx context.Context, filter repository.EventFilter) ([]model.Event, error)
	GetEvent(ctx context.Context, id uint, caller *model.User) (*model.EventWithViewerFlags, error)
	CreateEvent(ctx context.Context, caller *model.User, input EventInput) (*model.Event, error)
	UpdateEvent(ctx context.Context, caller *model.User, id uint, input EventInput) (*model.Event, error)
	DeleteEvent(ctx context.Context, caller *model.User, id uint) error
	ListCreatedEvents(ctx context.Context, caller *model.User) ([]model.Event, error)
}

type eventService struct {
	events  repository.EventRepository
	signups repository.SignupRepository
}

// NewEventService builds an EventService.
func NewEventService(events repository.EventRepository, signups repository.SignupRepository) EventService {
	return &eventService{events: events, signups: signups}
}

func (s *eventService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	return s.events.List(ctx, filter)
}

// GetEvent returns the event with viewer-relative flags. Both flags stay
// false for anonymous callers.
func (s *eventService) GetEvent(ctx context.Context, id uint, caller *model.User) (*model.EventWithViewerFlags, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	result := &model.EventWithViewerFlags{Event: *event}
	if caller != nil {
		result.IsOwner = IsOrganizer(event, caller)
		signedUp, err := s.signups.Exists(ctx, caller.ID, event.ID)
		if err != nil {
			return nil, fmt.Errorf("check signup: %w", err)
		}
		result.IsSignedUp = signedUp
	}
	return result, nil
}

func (s *eventService) CreateEvent(ctx context.Context, caller *model.User, input EventInput) (*model.Event, error) {
	event := &model.Event{
		Title:            input.Title,
		Description:      input.Description,
		Date:             input.Date,
		DateEnd:          input.DateEnd,
		Location:         input.Location,
		Organizer:        caller.FirstName + " " + caller.LastName,
		OrganizerEmail:   caller.Email,
		OrganizerPhone:   input.OrganizerPhone,
		OrganizerWebsite: input.OrganizerWebsite,
		ImageURL:         input.ImageURL,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, caller *model.User, id uint, input EventInput) (*model.Event, error) {
	event, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Date = input.Date
	event.DateEnd = input.DateEnd
	event.Location = input.Location
	event.OrganizerPhone = input.OrganizerPhone
	event.OrganizerWebsite = input.OrganizerWebsite
	event.ImageURL = input.ImageURL

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, caller *model.User, id uint) error {
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

func (s *eventService) ListCreatedEvents(ctx context.Context, caller *model.User) ([]model.Event, error) {
	return s.events.ListByOrganizerEmail(ctx, caller.Email)
}

// findOwned fetches the event and enforces the ownership predicate. Absence
// reports before ownership, so callers probing for events they do not own
// still learn whether the id exists, matching the public listing.
func (s *eventService) findOwned(ctx context.Context, caller *model.User, id uint) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	if !IsOrganizer(event, caller) {
		return nil, apperrors.ErrNotOrganizer
	}
	return event, nil
}
