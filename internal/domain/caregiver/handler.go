package caregiver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acolher/acolher/internal/platform/auth"
	"github.com/acolher/acolher/internal/platform/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "coordinator", "caregiver"))
	g.GET("/me/profile", h.GetMyProfile)
	g.PUT("/me/profile", h.SaveMyProfile)
}

func (h *Handler) GetMyProfile(c echo.Context) error {
	subject := auth.UserIDFromContext(c.Request().Context())
	p, err := h.svc.GetProfile(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) SaveMyProfile(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The subject always comes from the token, never from the body.
	p.ID = auth.UserIDFromContext(c.Request().Context())

	saved, err := h.svc.SaveProfile(c.Request().Context(), &p)
	if err != nil {
		if validation.Is(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}
