package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profilepage/internal/domain"
	"github.com/nfrund/profilepage/internal/middleware"
	"github.com/nfrund/profilepage/internal/pubsub"
)

// maxProfileBytes bounds PUT bodies.
const maxProfileBytes = 1 << 20

// ProfileAPIHandler serves the profile document consumed by the page loader.
type ProfileAPIHandler struct {
	repo      domain.ProfileRepository
	publisher pubsub.Publisher
}

// NewProfileAPIHandler creates a ProfileAPIHandler. publisher may be nil.
func NewProfileAPIHandler(repo domain.ProfileRepository, publisher pubsub.Publisher) *ProfileAPIHandler {
	return &ProfileAPIHandler{repo: repo, publisher: publisher}
}

// Get handles GET /api/profile.
func (h *ProfileAPIHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.repo.Get(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: CodeNotFound, Message: "no profile has been stored"})
	case err != nil:
		middleware.FromContext(ctx).ErrorContext(ctx, "failed to read profile", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: "could not read profile"})
	}

	return c.JSONBlob(http.StatusOK, doc)
}

// Put handles PUT /api/profile. The body replaces the stored document and a
// profile.changed event is published.
func (h *ProfileAPIHandler) Put(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxProfileBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidProfile, Message: "could not read request body"})
	}
	if len(body) > maxProfileBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Code: CodeInvalidProfile, Message: "profile too large"})
	}

	doc := json.RawMessage(body)
	if err := h.repo.Put(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidProfile, Message: err.Error()})
		}
		logger.ErrorContext(ctx, "failed to store profile", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: "could not store profile"})
	}
	logger.InfoContext(ctx, "profile updated", "bytes", len(body))

	if h.publisher != nil {
		msg := pubsub.Message{
			Topic:   pubsub.TopicProfileChanged,
			Payload: body,
			Metadata: map[string]string{
				"source":     "api",
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			},
		}
		if err := h.publisher.Publish(ctx, msg); err != nil {
			// The document is stored; a missed event only delays the next rebuild.
			logger.WarnContext(ctx, "failed to publish profile change", "error", err)
		}
	}

	return h.Get(c)
}

// Health handles GET /health.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
