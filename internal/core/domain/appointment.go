package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrForbidden = errors.New("access forbidden")
var ErrNotScheduled = errors.New("only scheduled appointments can be completed")
var ErrTooEarly = errors.New("appointment has not reached its scheduled end time")

// Appointment links one doctor and one patient over a time interval.
// COMPLETED and CANCELLED are terminal by intent; cancellation does not guard
// on the current status, matching the behaviour the ledger tests document.
type Appointment struct {
	ID        string            `json:"id"`
	DoctorID  string            `json:"doctor_id"`
	PatientID string            `json:"patient_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Involves reports whether the given user is a party to the appointment.
func (a *Appointment) Involves(userID string) bool {
	return a.DoctorID == userID || a.PatientID == userID
}

// CompletableAt reports whether the appointment may be marked completed at
// the given instant: exactly at and after the scheduled end time.
func (a *Appointment) CompletableAt(now time.Time) bool {
	return !now.Before(a.EndTime)
}
