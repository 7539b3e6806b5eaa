package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// --- Request / Response types ---

type bookAppointmentRequest struct {
	SlotID      string `json:"slot_id" validate:"required,uuid4"`
	Description string `json:"description"`
}

type addNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type appointmentResponse struct {
	Success     bool                `json:"success"`
	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

type appointmentView struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	With      string    `json:"with"`
}

type listAppointmentsResponse struct {
	Success      bool              `json:"success"`
	Appointments []appointmentView `json:"appointments"`
}

// Book handles POST /v1/appointments.
//
// @Summary      Book an available slot
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Booking request"
// @Success      201   {object}  appointmentResponse
// @Failure      402   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.Book(c.Request().Context(), ports.BookAppointmentInput{
		Subject:     subject,
		SlotID:      req.SlotID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, appointmentResponse{Success: true, Appointment: appt})
}

// List handles GET /v1/appointments: doctors see their scheduled patients,
// patients their scheduled doctors.
//
// @Summary      List the caller's upcoming appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAppointmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListUpcoming(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	views := make([]appointmentView, 0, len(items))
	for _, it := range items {
		views = append(views, appointmentView{
			ID:        it.Appointment.ID,
			StartTime: it.Appointment.StartTime,
			EndTime:   it.Appointment.EndTime,
			Status:    string(it.Appointment.Status),
			Notes:     it.Appointment.Notes,
			With:      it.PartyName,
		})
	}

	return c.JSON(http.StatusOK, listAppointmentsResponse{Success: true, Appointments: views})
}

// Cancel handles POST /v1/appointments/:id/cancel.
//
// @Summary      Cancel an appointment and settle credits
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Appointment ID"
// @Success      200  {object}  appointmentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), subject, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointmentResponse{Success: true})
}

// Complete handles POST /v1/appointments/:id/complete.
//
// @Summary      Mark an appointment completed
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Appointment ID"
// @Success      200  {object}  appointmentResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	if err := h.service.Complete(c.Request().Context(), subject, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointmentResponse{Success: true})
}

// AddNotes handles PUT /v1/appointments/:id/notes.
//
// @Summary      Overwrite the notes on an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Appointment ID"
// @Param        body  body      addNotesRequest  true  "Notes"
// @Success      200   {object}  appointmentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/appointments/{id}/notes [put]
func (h *AppointmentHandler) AddNotes(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req addNotesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.AddNotes(c.Request().Context(), subject, c.Param("id"), req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointmentResponse{Success: true, Appointment: appt})
}
