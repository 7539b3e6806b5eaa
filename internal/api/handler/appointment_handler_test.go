package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
)

type stubAppointmentService struct {
	bookFn     func(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error)
	cancelFn   func(ctx context.Context, subject, appointmentID string) error
	completeFn func(ctx context.Context, subject, appointmentID string) error
	addNotesFn func(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error)
	listFn     func(ctx context.Context, subject string) ([]ports.AppointmentWithParty, error)
}

func (s *stubAppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	return s.bookFn(ctx, input)
}

func (s *stubAppointmentService) Cancel(ctx context.Context, subject, appointmentID string) error {
	return s.cancelFn(ctx, subject, appointmentID)
}

func (s *stubAppointmentService) Complete(ctx context.Context, subject, appointmentID string) error {
	return s.completeFn(ctx, subject, appointmentID)
}

func (s *stubAppointmentService) AddNotes(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error) {
	return s.addNotesFn(ctx, subject, appointmentID, notes)
}

func (s *stubAppointmentService) ListUpcoming(ctx context.Context, subject string) ([]ports.AppointmentWithParty, error) {
	return s.listFn(ctx, subject)
}

const testSlotID = "8b7f3f9e-4c0a-4f2d-9a52-1f2f3a4b5c6d"

func TestAppointmentHandler_Book_Success(t *testing.T) {
	stub := &stubAppointmentService{
		bookFn: func(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
			if input.Subject != "sub-pat-1" || input.SlotID != testSlotID {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Appointment{ID: "appt-1", Status: domain.StatusScheduled}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	body := `{"slot_id":"` + testSlotID + `","description":"knee pain"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments", body, "sub-pat-1")

	if err := handler.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	appt, ok := resp["appointment"].(map[string]any)
	if !ok || appt["id"] != "appt-1" {
		t.Fatalf("unexpected appointment payload: %+v", resp["appointment"])
	}
}

func TestAppointmentHandler_Book_RejectsNonUUIDSlot(t *testing.T) {
	stub := &stubAppointmentService{
		bookFn: func(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments", `{"slot_id":"not-a-uuid"}`, "sub-pat-1")

	err := handler.Book(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAppointmentHandler_Book_ServiceErrorPassesThrough(t *testing.T) {
	stub := &stubAppointmentService{
		bookFn: func(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
			return nil, domain.ErrInsufficientCredits
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments", `{"slot_id":"`+testSlotID+`"}`, "sub-pat-1")

	if err := handler.Book(c); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits passed through, got %v", err)
	}
}

func TestAppointmentHandler_List_Success(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubAppointmentService{
		listFn: func(ctx context.Context, subject string) ([]ports.AppointmentWithParty, error) {
			return []ports.AppointmentWithParty{{
				Appointment: domain.Appointment{
					ID: "appt-1", StartTime: start, EndTime: start.Add(30 * time.Minute),
					Status: domain.StatusScheduled,
				},
				PartyName: "Dr. Strange",
			}}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/appointments", "", "sub-pat-1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items, ok := resp["appointments"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 appointment, got %v", resp["appointments"])
	}
	first := items[0].(map[string]any)
	if first["with"] != "Dr. Strange" {
		t.Fatalf("expected counterpart name, got %v", first["with"])
	}
}

func TestAppointmentHandler_Cancel_Success(t *testing.T) {
	stub := &stubAppointmentService{
		cancelFn: func(ctx context.Context, subject, appointmentID string) error {
			if subject != "sub-pat-1" || appointmentID != "appt-1" {
				t.Fatalf("unexpected args: %s %s", subject, appointmentID)
			}
			return nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments/appt-1/cancel", "", "sub-pat-1")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := handler.Cancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAppointmentHandler_Cancel_ServiceErrorPassesThrough(t *testing.T) {
	stub := &stubAppointmentService{
		cancelFn: func(ctx context.Context, subject, appointmentID string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments/appt-1/cancel", "", "sub-stranger")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := handler.Cancel(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden passed through, got %v", err)
	}
}

func TestAppointmentHandler_Complete_Success(t *testing.T) {
	stub := &stubAppointmentService{
		completeFn: func(ctx context.Context, subject, appointmentID string) error {
			if subject != "sub-doc-1" || appointmentID != "appt-1" {
				t.Fatalf("unexpected args: %s %s", subject, appointmentID)
			}
			return nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments/appt-1/complete", "", "sub-doc-1")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := handler.Complete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAppointmentHandler_Complete_ServiceErrorPassesThrough(t *testing.T) {
	stub := &stubAppointmentService{
		completeFn: func(ctx context.Context, subject, appointmentID string) error {
			return domain.ErrTooEarly
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments/appt-1/complete", "", "sub-doc-1")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := handler.Complete(c); !errors.Is(err, domain.ErrTooEarly) {
		t.Fatalf("expected ErrTooEarly passed through, got %v", err)
	}
}

func TestAppointmentHandler_AddNotes_Success(t *testing.T) {
	stub := &stubAppointmentService{
		addNotesFn: func(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error) {
			if notes != "follow up in 2 weeks" {
				t.Fatalf("unexpected notes: %q", notes)
			}
			return &domain.Appointment{ID: appointmentID, Notes: notes}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/v1/appointments/appt-1/notes", `{"notes":"follow up in 2 weeks"}`, "sub-doc-1")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := handler.AddNotes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	appt, ok := resp["appointment"].(map[string]any)
	if !ok || appt["notes"] != "follow up in 2 weeks" {
		t.Fatalf("unexpected appointment payload: %+v", resp["appointment"])
	}
}

func TestAppointmentHandler_AddNotes_EmptyNotesRejected(t *testing.T) {
	stub := &stubAppointmentService{
		addNotesFn: func(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/v1/appointments/appt-1/notes", `{"notes":""}`, "sub-doc-1")
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	err := handler.AddNotes(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
