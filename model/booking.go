package model

import "time"

// Booking status lifecycle: pending -> confirmed (after payment
// verification) or cancelled. Completed is set once checkout has passed.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

type Booking struct {
	BookingID   string    `bson:"booking_id" json:"booking_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	HotelID     string    `bson:"hotel_id" json:"hotel_id"`
	CheckIn     time.Time `bson:"check_in" json:"check_in"`
	CheckOut    time.Time `bson:"check_out" json:"check_out"`
	Rooms       int       `bson:"rooms" json:"rooms"`
	Guests      int       `bson:"guests" json:"guests"`
	Nights      int       `bson:"nights" json:"nights"`
	TotalAmount float64   `bson:"total_amount" json:"total_amount"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
