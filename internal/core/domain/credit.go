package domain

import "time"

// Ledger entry types. Booking debits the patient; cancellation reverses it.
const (
	TransactionDeduction = "APPOINTMENT_DEDUCTION"
	TransactionRefund    = "APPOINTMENT_REFUND"
)

// CreditTransaction is one side of a settlement event in the append-only
// audit ledger. Rows are never mutated or deleted; the authoritative balance
// lives on User.Credits. For every settlement the amounts across the patient
// and doctor rows sum to zero.
type CreditTransaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int       `json:"amount"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
