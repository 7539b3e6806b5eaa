package ports

import (
	"context"
	"time"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// SlotInput is one proposed availability window.
type SlotInput struct {
	StartTime time.Time
	EndTime   time.Time
}

// ReplaceSlotsInput carries a doctor's full proposed slot set. Subject is the
// verified identity-provider subject of the caller.
type ReplaceSlotsInput struct {
	Subject string
	Slots   []SlotInput
}

// AvailabilityService defines use-case operations for doctor availability.
type AvailabilityService interface {
	// ReplaceSlots replaces all existing slots on each calendar day touched
	// by the proposed set and returns the slots created.
	ReplaceSlots(ctx context.Context, input ReplaceSlotsInput) ([]domain.AvailabilitySlot, error)

	// ListSlots returns the calling doctor's slots ordered by start time.
	ListSlots(ctx context.Context, subject string) ([]domain.AvailabilitySlot, error)
}
