package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medimeet/booking-api/internal/api/metrics"
	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
)

// AppointmentService implements booking, settlement and annotation.
type AppointmentService struct {
	users        ports.UserRepository
	appointments ports.AppointmentRepository
	slots        ports.AvailabilityRepository
	views        ports.ViewInvalidator
	logger       zerolog.Logger

	// now is swapped out in tests to pin the completion time guard.
	now func() time.Time
}

func NewAppointmentService(
	users ports.UserRepository,
	appointments ports.AppointmentRepository,
	slots ports.AvailabilityRepository,
	views ports.ViewInvalidator,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		users:        users,
		appointments: appointments,
		slots:        slots,
		views:        views,
		logger:       logger,
		now:          time.Now,
	}
}

// Book reserves an AVAILABLE slot for the calling patient. The appointment
// insert, the slot flip to BOOKED, both ledger rows and both credit deltas
// all commit in one transaction.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	patient, err := s.users.FindByExternalID(ctx, input.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if patient.Role != domain.RolePatient {
		return nil, domain.ErrForbidden
	}

	slot, err := s.slots.FindByID(ctx, input.SlotID)
	if err != nil {
		return nil, domain.ErrSlotNotFound
	}
	if slot.Status != domain.SlotAvailable {
		return nil, domain.ErrSlotUnavailable
	}
	if patient.Credits < domain.AppointmentCredits {
		return nil, domain.ErrInsufficientCredits
	}

	appt := &domain.Appointment{
		ID:        uuid.NewString(),
		DoctorID:  slot.DoctorID,
		PatientID: patient.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    domain.StatusScheduled,
		Notes:     input.Description,
	}

	if err := s.appointments.Book(ctx, appt, slot.ID, domain.AppointmentCredits); err != nil {
		metrics.SettlementErrorsTotal.WithLabelValues("book_failed").Inc()
		s.logger.Error().Err(err).Str("slot_id", slot.ID).Msg("failed to book appointment")
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	metrics.AppointmentsSettledTotal.WithLabelValues("book").Inc()
	metrics.CreditsTransferredTotal.WithLabelValues(domain.TransactionDeduction).
		Add(float64(domain.AppointmentCredits))

	s.views.Invalidate("/appointments")
	s.logger.Info().
		Str("appointment_id", appt.ID).
		Str("doctor_id", appt.DoctorID).
		Str("patient_id", appt.PatientID).
		Msg("appointment booked")

	return appt, nil
}

// Cancel settles an appointment on behalf of either party: status goes to
// CANCELLED, the patient is refunded the flat fee and the doctor debited, and
// one ledger row per party records the movement. The refund is unconditional;
// current status is deliberately not checked.
func (s *AppointmentService) Cancel(ctx context.Context, subject, appointmentID string) error {
	caller, err := s.users.FindByExternalID(ctx, subject)
	if err != nil {
		return domain.ErrUnauthorized
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}
	if !appt.Involves(caller.ID) {
		return domain.ErrForbidden
	}

	if err := s.appointments.CancelWithRefund(ctx, appt, domain.AppointmentCredits); err != nil {
		metrics.SettlementErrorsTotal.WithLabelValues("cancel_failed").Inc()
		s.logger.Error().Err(err).Str("appointment_id", appt.ID).Msg("failed to cancel appointment")
		return fmt.Errorf("cancel appointment: %w", err)
	}

	metrics.AppointmentsSettledTotal.WithLabelValues("cancel").Inc()
	metrics.CreditsTransferredTotal.WithLabelValues(domain.TransactionRefund).
		Add(float64(domain.AppointmentCredits))

	if caller.IsDoctor() {
		s.views.Invalidate("/doctor")
	} else {
		s.views.Invalidate("/appointments")
	}
	s.logger.Info().
		Str("appointment_id", appt.ID).
		Str("cancelled_by", caller.Role).
		Msg("appointment cancelled")

	return nil
}

// Complete marks a SCHEDULED appointment COMPLETED. Only the owning doctor
// may call it, and only once the scheduled end time has elapsed. No credits
// move.
func (s *AppointmentService) Complete(ctx context.Context, subject, appointmentID string) error {
	caller, err := s.users.FindByExternalID(ctx, subject)
	if err != nil {
		return domain.ErrUnauthorized
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}
	if appt.DoctorID != caller.ID {
		return domain.ErrForbidden
	}
	if appt.Status != domain.StatusScheduled {
		return domain.ErrNotScheduled
	}
	if !appt.CompletableAt(s.now().UTC()) {
		return domain.ErrTooEarly
	}

	if err := s.appointments.MarkCompleted(ctx, appt.ID); err != nil {
		metrics.SettlementErrorsTotal.WithLabelValues("complete_failed").Inc()
		return fmt.Errorf("complete appointment: %w", err)
	}

	metrics.AppointmentsSettledTotal.WithLabelValues("complete").Inc()
	s.views.Invalidate("/doctor")
	s.logger.Info().Str("appointment_id", appt.ID).Msg("appointment completed")
	return nil
}

// AddNotes overwrites the appointment notes. Any status is accepted.
func (s *AppointmentService) AddNotes(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error) {
	caller, err := s.users.FindByExternalID(ctx, subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !caller.IsDoctor() {
		return nil, domain.ErrForbidden
	}

	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}
	if appt.DoctorID != caller.ID {
		return nil, domain.ErrForbidden
	}

	if err := s.appointments.UpdateNotes(ctx, appt.ID, notes); err != nil {
		return nil, fmt.Errorf("update notes: %w", err)
	}
	appt.Notes = notes

	s.views.Invalidate("/doctor")
	return appt, nil
}

// ListUpcoming returns the caller's SCHEDULED appointments with the
// counterpart's name, ordered by start time.
func (s *AppointmentService) ListUpcoming(ctx context.Context, subject string) ([]ports.AppointmentWithParty, error) {
	caller, err := s.users.FindByExternalID(ctx, subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if caller.IsDoctor() {
		return s.appointments.ListScheduledByDoctor(ctx, caller.ID)
	}
	return s.appointments.ListScheduledByPatient(ctx, caller.ID)
}
