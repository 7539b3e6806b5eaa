package domain

import (
	"errors"
	"time"
)

// SlotStatus represents the state of an availability slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

var ErrSlotNotFound = errors.New("availability slot not found")
var ErrSlotUnavailable = errors.New("slot is no longer available")
var ErrInvalidSlotRange = errors.New("start time must be before end time")
var ErrSlotEndpointMissing = errors.New("start time and end time are required for all slots")
var ErrNoSlots = errors.New("at least one slot is required")

// AvailabilitySlot is a bookable time window published by one doctor.
// Invariant: StartTime < EndTime.
type AvailabilitySlot struct {
	ID        string     `json:"id"`
	DoctorID  string     `json:"doctor_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    SlotStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Day returns the UTC calendar day bucket the slot belongs to, which is the
// unit of replacement: redefining one day's hours leaves other days alone.
func (s *AvailabilitySlot) Day() time.Time {
	y, m, d := s.StartTime.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
