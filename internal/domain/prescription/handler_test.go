package prescription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_CreatePrescription(t *testing.T) {
	h, e := newTestHandler()

	body := `{"resident_id":"` + uuid.New().String() + `","name":"Amoxicilina","time":"08:00","dosage":"250mg","start_date":"2024-06-01","end_date":"2024-06-30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prescriptions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePrescription(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Prescription
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Name != "Amoxicilina" {
		t.Errorf("expected 'Amoxicilina', got %s", p.Name)
	}
	if p.Status != StatusPending {
		t.Errorf("expected pending, got %s", p.Status)
	}
}

func TestHandler_CreatePrescription_BadRequest(t *testing.T) {
	h, e := newTestHandler()

	body := `{"resident_id":"` + uuid.New().String() + `","time":"08:00","dosage":"250mg","start_date":"2024-06-01","end_date":"2024-06-30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prescriptions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePrescription(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %v", err)
	}
}

func TestHandler_CreatePrescription_BadDate(t *testing.T) {
	h, e := newTestHandler()

	body := `{"resident_id":"` + uuid.New().String() + `","name":"Amoxicilina","time":"08:00","dosage":"250mg","start_date":"01/06/2024","end_date":"2024-06-30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prescriptions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePrescription(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed start_date, got %v", err)
	}
}

func TestHandler_GetPrescription_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetPrescription(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetPrescription_InvalidID(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetPrescription(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ConfirmAdministration(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePrescription(context.Background(), validPrescription())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.ConfirmAdministration(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var confirmed Prescription
	json.Unmarshal(rec.Body.Bytes(), &confirmed)
	if confirmed.Status != StatusAdministered {
		t.Errorf("expected administered, got %s", confirmed.Status)
	}
	if confirmed.AdministeredAt == nil {
		t.Error("expected administered_at to be set")
	}
}

func TestHandler_ConfirmAdministration_RepeatIsNoOp(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePrescription(context.Background(), validPrescription())

	first := time.Date(2024, 6, 10, 8, 5, 0, 0, time.UTC)
	h.svc.now = func() time.Time { return first }

	confirm := func() (int, Prescription) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(p.ID.String())
		if err := h.ConfirmAdministration(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got Prescription
		json.Unmarshal(rec.Body.Bytes(), &got)
		return rec.Code, got
	}

	code, _ := confirm()
	if code != http.StatusOK {
		t.Fatalf("expected 200 on first confirmation, got %d", code)
	}

	h.svc.now = func() time.Time { return first.Add(2 * time.Hour) }
	code, again := confirm()
	if code != http.StatusOK {
		t.Errorf("expected 200 on repeat confirmation, got %d", code)
	}
	if again.AdministeredAt == nil || !again.AdministeredAt.Equal(first) {
		t.Errorf("repeat confirmation moved the timestamp: %v", again.AdministeredAt)
	}
}

func TestHandler_ConfirmAdministration_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.ConfirmAdministration(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_DeletePrescription(t *testing.T) {
	h, e := newTestHandler()
	p, _ := h.svc.CreatePrescription(context.Background(), validPrescription())

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.DeletePrescription(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler()
	api := e.Group("/api/v1")
	h.RegisterRoutes(api)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Method+":"+r.Path] = true
	}

	expected := []string{
		"POST:/api/v1/prescriptions",
		"GET:/api/v1/prescriptions/:id",
		"POST:/api/v1/prescriptions/:id/confirm",
		"GET:/api/v1/residents/:residentId/prescriptions",
	}
	for _, path := range expected {
		if !routePaths[path] {
			t.Errorf("missing expected route: %s", path)
		}
	}
}
