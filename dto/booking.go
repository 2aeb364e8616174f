package dto

type CreateBookingRequest struct {
	HotelID  string `json:"hotel_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`  // YYYY-MM-DD
	CheckOut string `json:"check_out" binding:"required"` // YYYY-MM-DD
	Rooms    int    `json:"rooms" binding:"required,gt=0"`
	Guests   int    `json:"guests" binding:"required,gt=0"`
}

type CreatePaymentOrderRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
