package waitlist

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlers exposes the waitlist over HTTP for the marketing site.
type Handlers struct {
	store Store
	log   zerolog.Logger
}

func NewHandlers(store Store, log zerolog.Logger) *Handlers {
	return &Handlers{store: store, log: log}
}

// Register mounts the waitlist routes.
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.POST("/api/waitlist", h.Join)
}

type joinRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// Join handles one signup.
func (h *Handlers) Join(c echo.Context) error {
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "A valid email is required")
	}

	entry, err := h.store.Add(c.Request().Context(), email, req.Source)
	if err != nil {
		if errors.Is(err, ErrAlreadyJoined) {
			return echo.NewHTTPError(http.StatusConflict, "This email is already on the waitlist")
		}
		h.log.Error().Err(err).Msg("waitlist insert failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to join the waitlist")
	}

	h.log.Info().Str("source", entry.Source).Msg("waitlist signup")
	return c.JSON(http.StatusCreated, entry)
}

// Health is the liveness probe.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
