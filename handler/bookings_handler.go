package handler

import (
	"errors"
	"log"
	"strconv"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateBookingHandler(c *gin.Context, bookingsService *usecase.BookingsService) {
	userID, _ := c.Get("user_id")

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	booking, err := bookingsService.CreateBooking(userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHotelNotFound):
			utils.NotFound(c, "Hotel not found")
		case errors.Is(err, usecase.ErrNoRoomsAvailable):
			utils.Conflict(c, err.Error())
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Created(c, booking)
}

func GetUserBookingsHandler(c *gin.Context, bookingsService *usecase.BookingsService) {
	userID, _ := c.Get("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	bookings, total, err := bookingsService.BookingRepo.GetUserBookings(userID.(string), page, pageSize)
	if err != nil {
		log.Printf("Error listing bookings for %s: %v", userID, err)
		utils.InternalError(c, "Failed to list bookings")
		return
	}

	utils.Success(c, gin.H{
		"bookings":     bookings,
		"total_count":  total,
		"current_page": page,
	})
}

func GetBookingHandler(c *gin.Context, bookingsService *usecase.BookingsService) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	booking, err := bookingsService.BookingRepo.GetBooking(c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch booking")
		return
	}
	if booking == nil {
		utils.NotFound(c, "Booking not found")
		return
	}
	if booking.UserID != userID.(string) && role.(string) != model.RoleAdmin {
		utils.Forbidden(c, "Not allowed to view this booking")
		return
	}

	utils.Success(c, booking)
}

func CancelBookingHandler(c *gin.Context, bookingsService *usecase.BookingsService) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	booking, err := bookingsService.CancelBooking(c.Param("id"), userID.(string), role.(string))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, booking)
}

// GetHotelBookingsHandler lists bookings for a hotel the caller owns.
func GetHotelBookingsHandler(c *gin.Context, bookingsService *usecase.BookingsService, hotelsService *usecase.HotelsService) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	hotelID := c.Param("id")

	hotel, err := hotelsService.HotelRepo.GetHotel(hotelID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch hotel")
		return
	}
	if hotel == nil {
		utils.NotFound(c, "Hotel not found")
		return
	}
	if !hotelsService.CanManage(hotel, userID.(string), role.(string)) {
		utils.Forbidden(c, "Not allowed to view bookings for this hotel")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	bookings, total, err := bookingsService.BookingRepo.GetHotelBookings(hotelID, page, pageSize)
	if err != nil {
		log.Printf("Error listing bookings for hotel %s: %v", hotelID, err)
		utils.InternalError(c, "Failed to list bookings")
		return
	}

	utils.Success(c, gin.H{
		"bookings":     bookings,
		"total_count":  total,
		"current_page": page,
	})
}
