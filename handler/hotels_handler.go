package handler

import (
	"log"
	"strconv"
	"strings"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func SearchHotelsHandler(c *gin.Context, hotelsService *usecase.HotelsService) {
	opts := usecase.HotelSearchOptions{
		City:      c.Query("city"),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	opts.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	opts.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	opts.MinRating, _ = strconv.ParseFloat(c.Query("min_rating"), 64)
	opts.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	opts.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if amenities := c.Query("amenities"); amenities != "" {
		opts.Amenities = strings.Split(amenities, ",")
	}

	result, err := hotelsService.SearchHotels(opts)
	if err != nil {
		log.Printf("Error searching hotels: %v", err)
		utils.InternalError(c, "Failed to search hotels")
		return
	}

	utils.Success(c, result)
}

func GetHotelHandler(c *gin.Context, hotelsService *usecase.HotelsService) {
	hotel, err := hotelsService.HotelRepo.GetHotel(c.Param("id"))
	if err != nil {
		log.Printf("Error fetching hotel %s: %v", c.Param("id"), err)
		utils.InternalError(c, "Failed to fetch hotel")
		return
	}
	if hotel == nil {
		utils.NotFound(c, "Hotel not found")
		return
	}
	utils.Success(c, hotel)
}

func CreateHotelHandler(c *gin.Context, hotelsService *usecase.HotelsService) {
	userID, _ := c.Get("user_id")

	var req dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	hotel, err := hotelsService.CreateHotel(userID.(string), &req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, hotel)
}

func UpdateHotelHandler(c *gin.Context, hotelsService *usecase.HotelsService) {
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
		utils.Forbidden(c, "Not allowed to manage this hotel")
		return
	}

	var req dto.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.City != nil {
		update["city"] = *req.City
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Amenities != nil {
		update["amenities"] = req.Amenities
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			utils.BadRequest(c, "price per night must be positive")
			return
		}
		update["price_per_night"] = *req.PricePerNight
	}
	if req.TotalRooms != nil {
		if *req.TotalRooms <= 0 {
			utils.BadRequest(c, "hotel must have at least one room")
			return
		}
		update["total_rooms"] = *req.TotalRooms
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if len(update) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := hotelsService.HotelRepo.UpdateHotel(hotelID, update); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.NotFound(c, "Hotel not found")
			return
		}
		log.Printf("Error updating hotel %s: %v", hotelID, err)
		utils.InternalError(c, "Failed to update hotel")
		return
	}

	utils.Success(c, gin.H{"message": "Hotel updated successfully"})
}

func DeleteHotelHandler(c *gin.Context, hotelsService *usecase.HotelsService) {
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
		utils.Forbidden(c, "Not allowed to manage this hotel")
		return
	}

	if err := hotelsService.HotelRepo.DeleteHotel(hotelID); err != nil {
		log.Printf("Error deleting hotel %s: %v", hotelID, err)
		utils.InternalError(c, "Failed to delete hotel")
		return
	}

	utils.Success(c, gin.H{"message": "Hotel deleted successfully"})
}
