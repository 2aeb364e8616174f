package model

import "time"

type Hotel struct {
	HotelID       string    `bson:"hotel_id" json:"hotel_id"`
	OwnerID       string    `bson:"owner_id" json:"owner_id"`
	Name          string    `bson:"name" json:"name" validate:"required,min=2,max=100"`
	City          string    `bson:"city" json:"city" validate:"required"`
	Address       string    `bson:"address" json:"address" validate:"required"`
	Description   string    `bson:"description" json:"description"`
	Amenities     []string  `bson:"amenities" json:"amenities"`
	PricePerNight float64   `bson:"price_per_night" json:"price_per_night" validate:"required,gt=0"`
	Rating        float64   `bson:"rating" json:"rating"`
	RatingCount   int       `bson:"rating_count" json:"rating_count"`
	TotalRooms    int       `bson:"total_rooms" json:"total_rooms" validate:"required,gt=0"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
