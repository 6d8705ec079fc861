package domain

import "time"

// Reservation statuses
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationExpired   = "expired"
)

// FounderReservation holds a founder slot while checkout is in progress
type FounderReservation struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FounderAvailability summarizes the limited founder slots
type FounderAvailability struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Reserved  int `json:"reserved"`
	Remaining int `json:"remaining"`
}

// Purchase kinds carried in checkout metadata
const (
	PurchaseKindFounder = "founder"
	PurchaseKindGold    = "gold"
)

// Purchase is a verified, completed checkout
type Purchase struct {
	EventID       string `json:"event_id"`
	Kind          string `json:"kind"`
	UserID        string `json:"user_id"`
	GoldAmount    int    `json:"gold_amount,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
}
