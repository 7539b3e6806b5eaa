package ports

import (
	"context"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// AppointmentWithParty pairs an appointment with the display name of the
// counterpart: the patient when listing for a doctor, the doctor otherwise.
type AppointmentWithParty struct {
	Appointment domain.Appointment
	PartyName   string
}

// AppointmentRepository handles appointment persistence and the atomic
// settlement transactions that move credits between the two parties.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)

	// ListScheduledByDoctor returns SCHEDULED appointments of a doctor with
	// the patient's name, ordered by start time.
	ListScheduledByDoctor(ctx context.Context, doctorID string) ([]AppointmentWithParty, error)

	// ListScheduledByPatient is the patient-side counterpart.
	ListScheduledByPatient(ctx context.Context, patientID string) ([]AppointmentWithParty, error)

	// Book inserts the appointment, marks the slot BOOKED, appends a ledger
	// row per party and applies both credit deltas in one transaction.
	Book(ctx context.Context, appt *domain.Appointment, slotID string, fee int) error

	// CancelWithRefund sets the status to CANCELLED, appends a ledger row per
	// party and applies both credit deltas in one transaction. The refund is
	// unconditional: no check that a charge previously occurred.
	CancelWithRefund(ctx context.Context, appt *domain.Appointment, refund int) error

	MarkCompleted(ctx context.Context, id string) error
	UpdateNotes(ctx context.Context, id, notes string) error
}
