package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// AvailabilityRepository implements ports.AvailabilityRepository over the
// availability_slots table.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// ReplaceDay deletes every slot of the doctor starting within [dayStart,
// dayEnd] and inserts the given slots, all in one transaction. A crash can no
// longer leave a day emptied but not repopulated.
func (r *AvailabilityRepository) ReplaceDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time, slots []*domain.AvailabilitySlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM availability_slots
		 WHERE doctor_id = $1 AND start_time >= $2 AND start_time <= $3`,
		doctorID, dayStart, dayEnd,
	)
	if err != nil {
		return err
	}

	for _, s := range slots {
		_, err = tx.Exec(ctx,
			`INSERT INTO availability_slots (id, doctor_id, start_time, end_time, status)
			 VALUES ($1,$2,$3,$4,$5)`,
			s.ID, s.DoctorID, s.StartTime, s.EndTime, s.Status,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByDoctor returns all slots of a doctor ordered by start time.
func (r *AvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.AvailabilitySlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doctor_id, start_time, end_time, status, created_at
		 FROM availability_slots
		 WHERE doctor_id = $1
		 ORDER BY start_time`, doctorID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AvailabilitySlot
	for rows.Next() {
		var s domain.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.DoctorID, &s.StartTime, &s.EndTime, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindByID retrieves a single slot.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	s := &domain.AvailabilitySlot{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, doctor_id, start_time, end_time, status, created_at
		 FROM availability_slots WHERE id = $1`, id,
	).Scan(&s.ID, &s.DoctorID, &s.StartTime, &s.EndTime, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return s, nil
}
