package dto

type CreateHotelRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	City          string   `json:"city" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	TotalRooms    int      `json:"total_rooms" binding:"required,gt=0"`
}

type UpdateHotelRequest struct {
	Name          *string  `json:"name"`
	City          *string  `json:"city"`
	Address       *string  `json:"address"`
	Description   *string  `json:"description"`
	Amenities     []string `json:"amenities"`
	PricePerNight *float64 `json:"price_per_night"`
	TotalRooms    *int     `json:"total_rooms"`
	IsActive      *bool    `json:"is_active"`
}
