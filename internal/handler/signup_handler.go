package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"evently/internal/auth"
	"evently/internal/errors"
	"evently/internal/service"
)

// SignupHandler handles event attendance endpoints.
type SignupHandler struct {
	signupService service.SignupService
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(signupService service.SignupService) *SignupHandler {
	return &SignupHandler{signupService: signupService}
}

// SignUp godoc
// @Summary Sign up for an event
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /events/{id}/signup [post]
func (h *SignupHandler) SignUp(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.signupService.SignUp(c.Request().Context(), auth.Caller(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "signed up for event",
	})
}

// CancelSignup godoc
// @Summary Leave an event
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id}/signup [delete]
func (h *SignupHandler) CancelSignup(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.signupService.CancelSignup(c.Request().Context(), auth.Caller(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "signup cancelled",
	})
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Tags signups
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id}/attendees [get]
func (h *SignupHandler) ListAttendees(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	attendees, err := h.signupService.ListAttendees(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, attendees)
}

// RemoveAttendee godoc
// @Summary Remove an attendee from an event (organizer only)
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param aid path int true "Attendee user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id}/attendees/{aid} [delete]
func (h *SignupHandler) RemoveAttendee(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	attendeeID, err := strconv.Atoi(c.Param("aid"))
	if err != nil || attendeeID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid attendee id",
			Code:  "INVALID_ID",
		})
	}

	if err := h.signupService.RemoveAttendee(c.Request().Context(), auth.Caller(c), id, uint(attendeeID)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "attendee removed",
	})
}

// MyEvents godoc
// @Summary List events the caller signed up for
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Router /my-events [get]
func (h *SignupHandler) MyEvents(c echo.Context) error {
	events, err := h.signupService.ListSignedUpEvents(c.Request().Context(), auth.Caller(c).ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, events)
}

// UserEvents godoc
// @Summary List events a given user signed up for
// @Tags signups
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {array} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/{id}/events [get]
func (h *SignupHandler) UserEvents(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}

	events, err := h.signupService.ListSignedUpEvents(c.Request().Context(), uint(userID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, events)
}
