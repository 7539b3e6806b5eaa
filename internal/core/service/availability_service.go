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

// AvailabilityService implements day-bucketed slot replacement and listing.
type AvailabilityService struct {
	users  ports.UserRepository
	slots  ports.AvailabilityRepository
	views  ports.ViewInvalidator
	logger zerolog.Logger
}

func NewAvailabilityService(
	users ports.UserRepository,
	slots ports.AvailabilityRepository,
	views ports.ViewInvalidator,
	logger zerolog.Logger,
) *AvailabilityService {
	return &AvailabilityService{users: users, slots: slots, views: views, logger: logger}
}

// ReplaceSlots replaces all existing slots on each UTC calendar day touched by
// the proposed set. Each affected day is rewritten in its own transaction:
// every existing slot whose start time falls on the day is deleted, booked or
// not, and the day's proposed slots are inserted with status AVAILABLE. No
// overlap detection is applied within the proposed set.
func (s *AvailabilityService) ReplaceSlots(ctx context.Context, input ports.ReplaceSlotsInput) ([]domain.AvailabilitySlot, error) {
	doctor, err := s.doctor(ctx, input.Subject)
	if err != nil {
		return nil, err
	}

	if len(input.Slots) == 0 {
		return nil, domain.ErrNoSlots
	}
	for _, slot := range input.Slots {
		if slot.StartTime.IsZero() || slot.EndTime.IsZero() {
			return nil, domain.ErrSlotEndpointMissing
		}
		if !slot.StartTime.Before(slot.EndTime) {
			return nil, domain.ErrInvalidSlotRange
		}
	}

	created := make([]domain.AvailabilitySlot, 0, len(input.Slots))
	byDay := make(map[time.Time][]*domain.AvailabilitySlot)
	for _, in := range input.Slots {
		slot := domain.AvailabilitySlot{
			ID:        uuid.NewString(),
			DoctorID:  doctor.ID,
			StartTime: in.StartTime.UTC(),
			EndTime:   in.EndTime.UTC(),
			Status:    domain.SlotAvailable,
		}
		created = append(created, slot)
		day := slot.Day()
		byDay[day] = append(byDay[day], &created[len(created)-1])
	}

	for day, daySlots := range byDay {
		dayEnd := day.Add(24*time.Hour - time.Millisecond)
		if err := s.slots.ReplaceDay(ctx, doctor.ID, day, dayEnd, daySlots); err != nil {
			s.logger.Error().Err(err).
				Str("doctor_id", doctor.ID).
				Time("day", day).
				Msg("failed to replace availability for day")
			return nil, fmt.Errorf("replace slots: %w", err)
		}
		metrics.SlotDaysRebuiltTotal.Inc()
	}
	metrics.SlotsReplacedTotal.Add(float64(len(created)))

	s.views.Invalidate("/doctor")
	s.logger.Info().
		Str("doctor_id", doctor.ID).
		Int("slots", len(created)).
		Int("days", len(byDay)).
		Msg("availability replaced")

	return created, nil
}

// ListSlots returns the calling doctor's slots ordered by start time.
func (s *AvailabilityService) ListSlots(ctx context.Context, subject string) ([]domain.AvailabilitySlot, error) {
	doctor, err := s.doctor(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.slots.ListByDoctor(ctx, doctor.ID)
}

// doctor resolves the caller subject to a DOCTOR user. Anything else is an
// authorization failure, not a lookup miss.
func (s *AvailabilityService) doctor(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.users.FindByExternalID(ctx, subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsDoctor() {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
