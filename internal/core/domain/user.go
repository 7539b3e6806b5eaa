package domain

import (
	"errors"
	"time"
)

const (
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

// AppointmentCredits is the flat credit price of one appointment. Booking
// moves this amount from patient to doctor; cancellation moves it back.
const AppointmentCredits = 2

// StartingCredits is granted to every newly registered user.
const StartingCredits = 2

var ErrUnauthorized = errors.New("caller identity could not be resolved")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInsufficientCredits = errors.New("insufficient credits")

// User models an authenticated actor. ExternalID is the identity-provider
// subject carried in the JWT "sub" claim. Credits is the authoritative
// balance; it is mutated only through SQL increments inside settlement
// transactions, never by read-modify-write in application code.
type User struct {
	ID           string    `json:"id"`
	ExternalID   string    `json:"external_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Credits      int       `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsDoctor reports whether the user holds the DOCTOR role.
func (u *User) IsDoctor() bool { return u.Role == RoleDoctor }
