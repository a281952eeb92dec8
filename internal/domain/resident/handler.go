package resident

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/acolher/acolher/internal/platform/auth"
	"github.com/acolher/acolher/internal/platform/validation"
	"github.com/acolher/acolher/pkg/pagination"
	"github.com/acolher/acolher/pkg/timefmt"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – any care role
	readGroup := api.Group("", auth.RequireRole("admin", "coordinator", "caregiver"))
	readGroup.GET("/residents", h.ListResidents)
	readGroup.GET("/residents/:id", h.GetResident)

	// Write endpoints – admin, coordinator
	writeGroup := api.Group("", auth.RequireRole("admin", "coordinator"))
	writeGroup.POST("/residents", h.CreateResident)
	writeGroup.PUT("/residents/:id", h.UpdateResident)
	writeGroup.PUT("/residents/:id/status", h.SetStatus)
	writeGroup.DELETE("/residents/:id", h.DeactivateResident)
}

const dateLayout = "2006-01-02"

type residentRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Location  string `json:"location"`
	SUSCard   string `json:"sus_card"`
	BloodType string `json:"blood_type"`
	Allergies string `json:"allergies"`
	PhotoURL  string `json:"photo_url"`
}

func (r *residentRequest) toModel() (*Resident, error) {
	res := &Resident{
		Name:      r.Name,
		Location:  r.Location,
		SUSCard:   r.SUSCard,
		BloodType: r.BloodType,
		Allergies: r.Allergies,
		PhotoURL:  r.PhotoURL,
	}
	if r.BirthDate != "" {
		d, err := time.Parse(dateLayout, r.BirthDate)
		if err != nil {
			return nil, validation.Invalid("birth_date", "must be in YYYY-MM-DD format")
		}
		res.BirthDate = d
	}
	return res, nil
}

// residentView wraps a resident with the derived fields the care UI shows on
// the card: age in completed years and the day-first birth date.
type residentView struct {
	*Resident
	Age              int    `json:"age"`
	BirthDateDisplay string `json:"birth_date_display"`
}

func newView(r *Resident) residentView {
	return residentView{
		Resident:         r,
		Age:              timefmt.Age(r.BirthDate, time.Now()),
		BirthDateDisplay: timefmt.Date(r.BirthDate),
	}
}

func newViews(items []*Resident) []residentView {
	views := make([]residentView, len(items))
	for i, r := range items {
		views[i] = newView(r)
	}
	return views
}

func (h *Handler) CreateResident(c echo.Context) error {
	var req residentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreateResident(c.Request().Context(), r)
	if err != nil {
		if validation.Is(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, newView(created))
}

func (h *Handler) GetResident(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetResident(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "resident not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newView(r))
}

func (h *Handler) ListResidents(c echo.Context) error {
	pg := pagination.FromContext(c)
	name := c.QueryParam("name")
	includeInactive := c.QueryParam("include_inactive") == "true"

	items, total, err := h.svc.ListResidents(c.Request().Context(), name, includeInactive, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(newViews(items), total, pg))
}

func (h *Handler) UpdateResident(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req residentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r.ID = id
	updated, err := h.svc.UpdateResident(c.Request().Context(), r)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "resident not found")
		case validation.Is(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newView(updated))
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.SetStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "resident not found")
		case validation.Is(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newView(r))
}

func (h *Handler) DeactivateResident(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeactivateResident(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "resident not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
