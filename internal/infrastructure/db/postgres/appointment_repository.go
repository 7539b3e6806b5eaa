package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
)

// AppointmentRepository implements ports.AppointmentRepository. The Book and
// CancelWithRefund transactions are the only places the credit ledger and the
// balances move, and they always move together.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, doctor_id, patient_id, start_time, end_time, status, notes, created_at, updated_at`

// FindByID retrieves a single appointment.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.StartTime, &a.EndTime,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListScheduledByDoctor returns a doctor's SCHEDULED appointments with the
// patient's name, ordered by start time.
func (r *AppointmentRepository) ListScheduledByDoctor(ctx context.Context, doctorID string) ([]ports.AppointmentWithParty, error) {
	return r.listScheduled(ctx,
		`SELECT a.id, a.doctor_id, a.patient_id, a.start_time, a.end_time,
		        a.status, a.notes, a.created_at, a.updated_at, u.name
		 FROM appointments a
		 JOIN users u ON u.id = a.patient_id
		 WHERE a.doctor_id = $1 AND a.status = 'SCHEDULED'
		 ORDER BY a.start_time`, doctorID)
}

// ListScheduledByPatient is the patient-side counterpart.
func (r *AppointmentRepository) ListScheduledByPatient(ctx context.Context, patientID string) ([]ports.AppointmentWithParty, error) {
	return r.listScheduled(ctx,
		`SELECT a.id, a.doctor_id, a.patient_id, a.start_time, a.end_time,
		        a.status, a.notes, a.created_at, a.updated_at, u.name
		 FROM appointments a
		 JOIN users u ON u.id = a.doctor_id
		 WHERE a.patient_id = $1 AND a.status = 'SCHEDULED'
		 ORDER BY a.start_time`, patientID)
}

func (r *AppointmentRepository) listScheduled(ctx context.Context, query, id string) ([]ports.AppointmentWithParty, error) {
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.AppointmentWithParty
	for rows.Next() {
		var item ports.AppointmentWithParty
		a := &item.Appointment
		if err := rows.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.StartTime, &a.EndTime,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &item.PartyName); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Book inserts the appointment, flips the slot to BOOKED, and settles the fee
// from patient to doctor in one transaction. The slot update is guarded on
// its status so a concurrent booking of the same slot loses cleanly.
func (r *AppointmentRepository) Book(ctx context.Context, appt *domain.Appointment, slotID string, fee int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE availability_slots SET status = $1 WHERE id = $2 AND status = $3`,
		domain.SlotBooked, slotID, domain.SlotAvailable,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotUnavailable
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO appointments (id, doctor_id, patient_id, start_time, end_time, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		appt.ID, appt.DoctorID, appt.PatientID, appt.StartTime, appt.EndTime, appt.Status, appt.Notes,
	)
	if err != nil {
		return err
	}

	if err := r.settle(ctx, tx, appt.PatientID, appt.DoctorID, -fee, domain.TransactionDeduction); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CancelWithRefund sets the status to CANCELLED and reverses the booking fee
// in one transaction. No guard on the current status: the refund really is
// unconditional.
func (r *AppointmentRepository) CancelWithRefund(ctx context.Context, appt *domain.Appointment, refund int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`,
		domain.StatusCancelled, appt.ID,
	)
	if err != nil {
		return err
	}

	if err := r.settle(ctx, tx, appt.PatientID, appt.DoctorID, refund, domain.TransactionRefund); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// settle appends one ledger row per party and applies the matching balance
// deltas. patientAmount is signed; the doctor always receives its negation,
// so the two ledger rows of a settlement sum to zero. Balances move via SQL
// increments so concurrent transactions serialize on the user rows.
func (r *AppointmentRepository) settle(ctx context.Context, tx pgx.Tx, patientID, doctorID string, patientAmount int, txnType string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO credit_transactions (id, user_id, amount, type)
		 VALUES ($1,$2,$3,$4), ($5,$6,$7,$8)`,
		uuid.NewString(), patientID, patientAmount, txnType,
		uuid.NewString(), doctorID, -patientAmount, txnType,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET credits = credits + $1, updated_at = NOW() WHERE id = $2`,
		patientAmount, patientID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET credits = credits + $1, updated_at = NOW() WHERE id = $2`,
		-patientAmount, doctorID,
	)
	return err
}

// MarkCompleted flips a SCHEDULED appointment to COMPLETED.
func (r *AppointmentRepository) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`,
		domain.StatusCompleted, id,
	)
	return err
}

// UpdateNotes overwrites the notes column.
func (r *AppointmentRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE appointments SET notes = $1, updated_at = NOW() WHERE id = $2`,
		notes, id,
	)
	return err
}
