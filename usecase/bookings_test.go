package usecase

import (
	"errors"
	"testing"
	"time"

	"main/dto"
)

func TestCreateBookingDateValidation(t *testing.T) {
	s := &BookingsService{}
	future := time.Now().AddDate(0, 1, 0).Format(dateLayout)
	futureEnd := time.Now().AddDate(0, 1, 3).Format(dateLayout)
	past := time.Now().AddDate(0, -1, 0).Format(dateLayout)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  error
	}{
		{"Malformed check-in", "03-01-2026", futureEnd, nil},
		{"Malformed check-out", future, "next tuesday", nil},
		{"Check-out before check-in", futureEnd, future, ErrInvalidDateRange},
		{"Zero-length stay", future, future, ErrInvalidDateRange},
		{"Check-in in the past", past, future, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBooking("u1", &dto.CreateBookingRequest{
				HotelID:  "h1",
				CheckIn:  tt.checkIn,
				CheckOut: tt.checkOut,
				Rooms:    1,
				Guests:   2,
			})
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
