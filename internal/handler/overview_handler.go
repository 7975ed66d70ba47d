package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// endpointDescription documents one route in the API overview.
type endpointDescription struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Auth        string `json:"auth,omitempty"`
}

var apiOverview = []endpointDescription{
	{Method: "POST", Path: "/register", Description: "Register a new user."},
	{Method: "GET", Path: "/verify/:token", Description: "Verify a user's email using a token."},
	{Method: "POST", Path: "/login", Description: "Log in a user and get a JWT token."},
	{Method: "POST", Path: "/resend-verification", Description: "Re-send the verification email for an unverified account."},
	{Method: "GET", Path: "/profile", Description: "Get the authenticated user's profile.", Auth: "bearer"},
	{Method: "GET", Path: "/my-events", Description: "Get events the authenticated user has signed up for.", Auth: "bearer"},
	{Method: "GET", Path: "/my-created-events", Description: "Get events created by the authenticated user.", Auth: "bearer"},
	{Method: "POST", Path: "/upload", Description: "Upload an image file, returns a public URL.", Auth: "bearer"},
	{Method: "GET", Path: "/events", Description: "List events; supports search, sort_by and order query parameters."},
	{Method: "GET", Path: "/events/:id", Description: "Get event detail with viewer flags."},
	{Method: "POST", Path: "/events", Description: "Create a new event.", Auth: "bearer"},
	{Method: "PUT", Path: "/events/:id", Description: "Update an event (organizer only).", Auth: "bearer"},
	{Method: "DELETE", Path: "/events/:id", Description: "Delete an event (organizer only).", Auth: "bearer"},
	{Method: "GET", Path: "/events/:id/attendees", Description: "List attendees for an event."},
	{Method: "DELETE", Path: "/events/:id/attendees/:aid", Description: "Remove an attendee (organizer only).", Auth: "bearer"},
	{Method: "POST", Path: "/events/:id/signup", Description: "Sign up for an event.", Auth: "bearer"},
	{Method: "DELETE", Path: "/events/:id/signup", Description: "Leave an event.", Auth: "bearer"},
	{Method: "GET", Path: "/users", Description: "List users (sanitized)."},
	{Method: "GET", Path: "/users/:id", Description: "Get a single user (sanitized)."},
	{Method: "GET", Path: "/users/:id/events", Description: "List events a user signed up for.", Auth: "bearer"},
}

// Overview godoc
// @Summary API overview
// @Tags meta
// @Produce json
// @Success 200 {array} endpointDescription
// @Router / [get]
func Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, apiOverview)
}
