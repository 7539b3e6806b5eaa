package ports

import (
	"context"
	"time"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// AvailabilityRepository defines persistence operations for availability slots.
type AvailabilityRepository interface {
	// ReplaceDay atomically deletes every slot of the doctor whose start time
	// falls within [dayStart, dayEnd] and inserts the given slots in their
	// place. The delete is unconditional: booked slots on the day go too.
	ReplaceDay(ctx context.Context, doctorID string, dayStart, dayEnd time.Time, slots []*domain.AvailabilitySlot) error

	// ListByDoctor returns all slots of a doctor ordered by start time.
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.AvailabilitySlot, error)

	// FindByID retrieves a single slot.
	FindByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
}
