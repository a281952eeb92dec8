package prescription

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/acolher/acolher/internal/platform/auth"
	"github.com/acolher/acolher/internal/platform/validation"
	"github.com/acolher/acolher/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read and confirmation endpoints – any care role
	readGroup := api.Group("", auth.RequireRole("admin", "coordinator", "caregiver"))
	readGroup.GET("/residents/:residentId/prescriptions", h.ListByResident)
	readGroup.GET("/prescriptions/:id", h.GetPrescription)
	readGroup.POST("/prescriptions/:id/confirm", h.ConfirmAdministration)

	// Write endpoints – admin, coordinator
	writeGroup := api.Group("", auth.RequireRole("admin", "coordinator"))
	writeGroup.POST("/prescriptions", h.CreatePrescription)
	writeGroup.PUT("/prescriptions/:id", h.UpdatePrescription)
	writeGroup.DELETE("/prescriptions/:id", h.DeletePrescription)
}

const dateLayout = "2006-01-02"

// prescriptionRequest carries dates as plain strings so the handler can parse
// the yyyy-mm-dd wire format itself.
type prescriptionRequest struct {
	ResidentID uuid.UUID `json:"resident_id"`
	Name       string    `json:"name"`
	Time       string    `json:"time"`
	Dosage     string    `json:"dosage"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
}

func (r *prescriptionRequest) toModel() (*Prescription, error) {
	p := &Prescription{
		ResidentID: r.ResidentID,
		Name:       r.Name,
		TimeOfDay:  r.Time,
		Dosage:     r.Dosage,
	}
	if r.StartDate != "" {
		d, err := time.Parse(dateLayout, r.StartDate)
		if err != nil {
			return nil, validation.Invalid("start_date", "must be in YYYY-MM-DD format")
		}
		p.StartDate = d
	}
	if r.EndDate != "" {
		d, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return nil, validation.Invalid("end_date", "must be in YYYY-MM-DD format")
		}
		p.EndDate = d
	}
	return p, nil
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreatePrescription(c.Request().Context(), p)
	if err != nil {
		if validation.Is(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListByResident(c echo.Context) error {
	residentID, err := uuid.Parse(c.Param("residentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resident id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByResident(c.Request().Context(), residentID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	updated, err := h.svc.UpdatePrescription(c.Request().Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		case validation.Is(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePrescription(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmAdministration is idempotent at the HTTP level. A repeat confirmation
// answers 200 with the stored record and does not move the timestamp.
func (h *Handler) ConfirmAdministration(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.ConfirmAdministration(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyAdministered):
			return c.JSON(http.StatusOK, p)
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
