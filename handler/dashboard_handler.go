package handler

import (
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	userRepo    *repository.UserRepo
	hotelRepo   *repository.HotelRepo
	bookingRepo *repository.BookingRepo
}

func NewDashboardHandler(
	userRepo *repository.UserRepo,
	hotelRepo *repository.HotelRepo,
	bookingRepo *repository.BookingRepo,
) *DashboardHandler {
	return &DashboardHandler{
		userRepo:    userRepo,
		hotelRepo:   hotelRepo,
		bookingRepo: bookingRepo,
	}
}

func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	var stats model.DashboardStats
	var err error

	if stats.TotalUsers, err = h.userRepo.CountUsers(); err != nil {
		log.Printf("Error counting users: %v", err)
		utils.InternalError(c, "Failed to count users")
		return
	}
	if stats.TotalHotels, err = h.hotelRepo.CountHotels(); err != nil {
		log.Printf("Error counting hotels: %v", err)
		utils.InternalError(c, "Failed to count hotels")
		return
	}
	if stats.TotalBookings, err = h.bookingRepo.CountBookings(); err != nil {
		log.Printf("Error counting bookings: %v", err)
		utils.InternalError(c, "Failed to count bookings")
		return
	}
	if stats.TotalRevenue, err = h.bookingRepo.TotalRevenue(); err != nil {
		log.Printf("Error summing revenue: %v", err)
		utils.InternalError(c, "Failed to compute revenue")
		return
	}
	if stats.BookingsByStatus, err = h.bookingRepo.CountByStatus(); err != nil {
		log.Printf("Error grouping bookings: %v", err)
		utils.InternalError(c, "Failed to group bookings")
		return
	}
	if stats.TopCities, err = h.hotelRepo.TopCities(5); err != nil {
		log.Printf("Error aggregating cities: %v", err)
		utils.InternalError(c, "Failed to aggregate cities")
		return
	}
	if stats.RecentBookings, err = h.bookingRepo.RecentBookings(10); err != nil {
		log.Printf("Error listing recent bookings: %v", err)
		utils.InternalError(c, "Failed to list recent bookings")
		return
	}

	stats.GeneratedAt = time.Now()
	utils.Success(c, stats)
}
