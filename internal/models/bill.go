package models

import "time"

// Bill is the charge derived from a finalized booking. Amount never
// changes after creation; only the payment fields do.
type Bill struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"booking_id"`
	Amount        float64       `json:"amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentDate   time.Time     `json:"payment_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
