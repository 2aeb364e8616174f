package model

import "time"

const (
	PaymentCreated  = "created"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentExpired  = "expired"
	PaymentRefunded = "refunded"
)

// PaymentOrder is the unit handed to the payment gateway. Verification
// compares the gateway signature against our own HMAC over order+payment id.
type PaymentOrder struct {
	OrderID   string    `bson:"order_id" json:"order_id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"`
	PaymentID string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	PaidAt    time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
}
