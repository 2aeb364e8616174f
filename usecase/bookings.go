package usecase

import (
	"errors"
	"fmt"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"
)

type BookingsService struct {
	BookingRepo *repository.BookingRepo
	HotelRepo   *repository.HotelRepo
}

const dateLayout = "2006-01-02"

var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrNoRoomsAvailable = errors.New("not enough rooms available for the selected dates")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
)

// CreateBooking validates dates and availability, prices the stay and
// persists a pending booking awaiting payment.
func (s *BookingsService) CreateBooking(userID string, req *dto.CreateBookingRequest) (*model.Booking, error) {
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date: %w", err)
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check-out date: %w", err)
	}

	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	today := time.Now().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, errors.New("check-in date is in the past")
	}

	hotel, err := s.HotelRepo.GetHotel(req.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel == nil || !hotel.IsActive {
		return nil, ErrHotelNotFound
	}

	booked, err := s.BookingRepo.CountOverlapping(req.HotelID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if booked+req.Rooms > hotel.TotalRooms {
		return nil, ErrNoRoomsAvailable
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)

	booking := &model.Booking{
		BookingID:   utils.GenerateID(),
		UserID:      userID,
		HotelID:     hotel.HotelID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Rooms:       req.Rooms,
		Guests:      req.Guests,
		Nights:      nights,
		TotalAmount: float64(nights*req.Rooms) * hotel.PricePerNight,
		Status:      model.BookingPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.BookingRepo.CreateBooking(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking moves a booking to cancelled if the caller owns it (or is
// an admin) and it has not started yet.
func (s *BookingsService) CancelBooking(bookingID, userID, role string) (*model.Booking, error) {
	booking, err := s.BookingRepo.GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, errors.New("booking not found")
	}

	if booking.UserID != userID && role != model.RoleAdmin {
		return nil, errors.New("not allowed to cancel this booking")
	}
	if booking.Status == model.BookingCancelled {
		return booking, nil
	}
	if booking.Status == model.BookingCompleted {
		return nil, errors.New("completed bookings cannot be cancelled")
	}
	if time.Now().After(booking.CheckIn) {
		return nil, errors.New("stay has already started")
	}

	if err := s.BookingRepo.UpdateBookingStatus(bookingID, model.BookingCancelled); err != nil {
		return nil, err
	}
	booking.Status = model.BookingCancelled
	return booking, nil
}

// ConfirmBooking is invoked after successful payment verification.
func (s *BookingsService) ConfirmBooking(bookingID string) error {
	booking, err := s.BookingRepo.GetBooking(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return errors.New("booking not found")
	}
	if booking.Status != model.BookingPending {
		return fmt.Errorf("booking is %s, only pending bookings can be confirmed", booking.Status)
	}
	return s.BookingRepo.UpdateBookingStatus(bookingID, model.BookingConfirmed)
}
