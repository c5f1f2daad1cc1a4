package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profilepage/internal/middleware"
	"github.com/nfrund/profilepage/internal/modules/profile/view"
	gview "github.com/nfrund/profilepage/internal/view"
)

// DataPath serves the loader output as JSON, the file written next to a prerendered page.
const DataPath = "/__data.json"

// Handler serves the profile page, its data and its htmx card fragment.
type Handler struct {
	fetcher Fetcher
}

// NewHandler creates a Handler that loads through fetcher.
func NewHandler(fetcher Fetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

func (h *Handler) load(c echo.Context) (PageData, error) {
	ctx := c.Request().Context()
	data, err := Load(ctx, h.fetcher)
	if err != nil {
		middleware.FromContext(ctx).ErrorContext(ctx, "profile load failed", "error", err)
		return PageData{}, echo.NewHTTPError(http.StatusBadGateway, "profile unavailable").SetInternal(err)
	}
	return data, nil
}

// Page renders the full profile page.
func (h *Handler) Page(c echo.Context) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "", gview.AdaptGomponentToTempl(view.Page(data.Profile)))
}

// Data returns the loader output as JSON.
func (h *Handler) Data(c echo.Context) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

// Card renders just the profile card.
func (h *Handler) Card(c echo.Context) error {
	data, err := h.load(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "", view.Card(data.Profile))
}
