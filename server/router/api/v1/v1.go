// Package v1 exposes the assistant over a small JSON HTTP API. It is a
// thin shell: every request body is a sentence or an id, and all logic
// lives in the assistant service.
package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/parkjy76/haruplan/internal/profile"
	"github.com/parkjy76/haruplan/server/assistant"
	"github.com/parkjy76/haruplan/store"
)

// APIV1Service registers the /api/v1 routes.
type APIV1Service struct {
	Profile   *profile.Profile
	Store     *store.Store
	Assistant *assistant.Service

	logger *slog.Logger
}

// NewAPIV1Service creates the API service.
func NewAPIV1Service(p *profile.Profile, s *store.Store, a *assistant.Service, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:   p,
		Store:     s,
		Assistant: a,
		logger:    logger,
	}
}

// Register wires the routes into the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(s.requestIDMiddleware)

	g := e.Group("/api/v1")
	g.POST("/ask", s.ask)
	g.GET("/events", s.listEvents)
	g.DELETE("/events/:id", s.deleteEvent)
	g.GET("/memory", s.getMemory)
	g.POST("/memory/reset", s.resetMemory)
	g.GET("/feed", s.feed)
}

// requestIDMiddleware tags every request with an id for log correlation.
func (s *APIV1Service) requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		start := time.Now()
		err := next(c)
		s.logger.Info("http request",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

type askRequest struct {
	Text string `json:"text"`
}

type eventResponse struct {
	ID       int32  `json:"id"`
	UID      string `json:"uid"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Notified bool   `json:"notified"`
}

type askResponse struct {
	Intent string          `json:"intent"`
	Reply  string          `json:"reply,omitempty"`
	Merged string          `json:"merged,omitempty"`
	Events []eventResponse `json:"events"`
}

func (s *APIV1Service) ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	result, err := s.Assistant.Ask(c.Request().Context(), req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process sentence")
	}

	resp := askResponse{
		Intent: result.Intent.String(),
		Reply:  result.Reply,
		Events: make([]eventResponse, 0, len(result.Events)),
	}
	if result.Merged != req.Text {
		resp.Merged = result.Merged
	}
	for _, ev := range result.Events {
		resp.Events = append(resp.Events, s.toEventResponse(ev))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) listEvents(c echo.Context) error {
	find := &store.FindEvent{}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			find.Limit = &limit
		}
	}

	events, err := s.Store.ListEvents(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list events")
	}

	resp := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, s.toEventResponse(ev))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) deleteEvent(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	if err := s.Store.DeleteEvent(c.Request().Context(), &store.DeleteEvent{ID: int32(id)}); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) getMemory(c echo.Context) error {
	memory := s.Assistant.Memory(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"memory": memory.Format()})
}

func (s *APIV1Service) resetMemory(c echo.Context) error {
	if err := s.Assistant.ResetMemory(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to reset memory")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) toEventResponse(ev *store.Event) eventResponse {
	return eventResponse{
		ID:       ev.ID,
		UID:      ev.UID,
		Title:    ev.Title,
		Time:     time.Unix(ev.EventTs, 0).In(s.Profile.Location).Format("2006-01-02 15:04"),
		Notified: ev.Notified,
	}
}
