package routes

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Users         *DefaultUserRoute
	Meetups       *DefaultMeetupRoute
	Subscriptions *DefaultSubscriptionRoute
	Files         *DefaultFileRoute
}

// Register mounts every API route on e. Everything except sign-up and login
// goes through requireAuth.
func Register(e *echo.Echo, h *Handlers, requireAuth echo.MiddlewareFunc) {
	e.POST("/api/users", h.Users.CreateUser)
	e.POST("/api/sessions", h.Users.CreateSession)

	api := e.Group("/api", requireAuth)

	api.PUT("/users", h.Users.UpdateUser)

	api.POST("/files", h.Files.CreateFile)

	// Meetups
	api.GET("/meetups", h.Meetups.GetMeetups)
	api.POST("/meetups", h.Meetups.CreateMeetup)
	api.PUT("/meetups/:id", h.Meetups.UpdateMeetup)
	api.DELETE("/meetups/:id", h.Meetups.DeleteMeetup)
	api.GET("/organizing", h.Meetups.GetOrganizing)

	// Subscriptions
	api.GET("/subscriptions", h.Subscriptions.GetSubscriptions)
	api.GET("/subscriptions/calendar.ics", h.Subscriptions.GetCalendar)
	api.POST("/meetups/:id/subscriptions", h.Subscriptions.CreateSubscription)
	api.DELETE("/subscriptions/:id", h.Subscriptions.DeleteSubscription)
}
