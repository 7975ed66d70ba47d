package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"evently/internal/model"
)

// EventFilter narrows and orders event listings. Zero value lists everything
// by ascending date.
type EventFilter struct {
	Search string // substring match over title, description and location
	SortBy string // event_date, event_title or id
	Order  string // asc or desc
}

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	ListByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds a GORM-backed repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// sortColumns whitelists order-by targets so filter input never reaches SQL
// unescaped.
var sortColumns = map[string]string{
	"event_date":  "event_date",
	"event_title": "event_title",
	"id":          "id",
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	query := r.db.WithContext(ctx).Model(&model.Event{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"event_title LIKE ? OR event_description LIKE ? OR event_location LIKE ?",
			pattern, pattern, pattern,
		)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "event_date"
	}
	direction := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		direction = "DESC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, direction))

	var events []model.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListByOrganizerEmail(ctx context.Context, email string) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Where("event_organizer_email = ?", email).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
