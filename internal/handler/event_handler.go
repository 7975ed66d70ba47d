package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"evently/internal/auth"
	"evently/internal/errors"
	"evently/internal/repository"
	"evently/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest represents an event create/update payload. Organizer name and
// email are never accepted from the body; they come from the caller identity.
type EventRequest struct {
	Title            string     `json:"event_title" validate:"required,max=255"`
	Description      string     `json:"event_description" validate:"required"`
	Date             time.Time  `json:"event_date" validate:"required"`
	DateEnd          *time.Time `json:"event_date_end,omitempty"`
	Location         string     `json:"event_location" validate:"required,max=255"`
	OrganizerPhone   string     `json:"event_organizer_phone,omitempty" validate:"omitempty,max=50"`
	OrganizerWebsite string     `json:"event_organizer_website,omitempty" validate:"omitempty,url,max=255"`
	ImageURL         string     `json:"event_image_url,omitempty" validate:"omitempty,url,max=512"`
}

func (r *EventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:            r.Title,
		Description:      r.Description,
		Date:             r.Date,
		DateEnd:          r.DateEnd,
		Location:         r.Location,
		OrganizerPhone:   r.OrganizerPhone,
		OrganizerWebsite: r.OrganizerWebsite,
		ImageURL:         r.ImageURL,
	}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param search query string false "Substring match over title, description and location"
// @Param sort_by query string false "event_date, event_title or id"
// @Param order query string false "asc or desc"
// @Success 200 {array} model.Event
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := repository.EventFilter{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	}

	events, err := h.eventService.ListEvents(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event detail with viewer flags
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} model.EventWithViewerFlags
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.GetEvent(c.Request().Context(), id, auth.Caller(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	event, err := h.eventService.CreateEvent(c.Request().Context(), auth.Caller(c), req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event (organizer only)
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body EventRequest true "Event data"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	event, err := h.eventService.UpdateEvent(c.Request().Context(), auth.Caller(c), id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event (organizer only)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), auth.Caller(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "event deleted",
	})
}

// MyCreatedEvents godoc
// @Summary List events organized by the caller
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /my-created-events [get]
func (h *EventHandler) MyCreatedEvents(c echo.Context) error {
	events, err := h.eventService.ListCreatedEvents(c.Request().Context(), auth.Caller(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, events)
}

// eventID parses the :id path parameter.
func eventID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid event id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
