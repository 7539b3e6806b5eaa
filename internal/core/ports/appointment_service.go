package ports

import (
	"context"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// BookAppointmentInput carries a patient's booking request.
type BookAppointmentInput struct {
	Subject     string
	SlotID      string
	Description string
}

// AppointmentService defines use-case operations over appointments.
// Subject is always the verified identity-provider subject of the caller.
type AppointmentService interface {
	// Book reserves an AVAILABLE slot for the calling patient, charging the
	// flat credit fee to the patient and crediting the doctor.
	Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error)

	// Cancel may be called by either party; it refunds the patient and
	// debits the doctor inside one transaction.
	Cancel(ctx context.Context, subject, appointmentID string) error

	// Complete marks a SCHEDULED appointment COMPLETED. Doctor only, and only
	// once the scheduled end time has elapsed.
	Complete(ctx context.Context, subject, appointmentID string) error

	// AddNotes overwrites the appointment notes. Doctor only.
	AddNotes(ctx context.Context, subject, appointmentID, notes string) (*domain.Appointment, error)

	// ListUpcoming returns the caller's SCHEDULED appointments: a doctor sees
	// their patients, a patient their doctors.
	ListUpcoming(ctx context.Context, subject string) ([]AppointmentWithParty, error)
}
