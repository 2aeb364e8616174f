package usecase

import (
	"errors"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"
)

type HotelsService struct {
	HotelRepo *repository.HotelRepo
}

// HotelSearchOptions narrows and orders a hotel search.
type HotelSearchOptions struct {
	City      string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Amenities []string
	Query     string
	SortBy    string // "price_per_night", "rating", "created_at"
	SortOrder string // "asc" or "desc"
	Page      int
	PageSize  int
}

type HotelsResponse struct {
	Hotels      []*model.Hotel `json:"hotels"`
	TotalCount  int64          `json:"total_count"`
	PageCount   int            `json:"page_count"`
	CurrentPage int            `json:"current_page"`
}

func (s *HotelsService) validateHotel(hotel *model.Hotel) error {
	hotel.Name = strings.TrimSpace(hotel.Name)
	if hotel.Name == "" {
		return errors.New("hotel name is required")
	}
	if len(hotel.Name) > 100 {
		return errors.New("hotel name exceeds maximum length")
	}

	hotel.City = strings.TrimSpace(hotel.City)
	if hotel.City == "" {
		return errors.New("hotel city is required")
	}

	if hotel.PricePerNight <= 0 {
		return errors.New("price per night must be positive")
	}
	if hotel.TotalRooms <= 0 {
		return errors.New("hotel must have at least one room")
	}

	normalized := make([]string, 0, len(hotel.Amenities))
	for _, amenity := range hotel.Amenities {
		if trimmed := strings.TrimSpace(amenity); trimmed != "" {
			normalized = append(normalized, strings.ToLower(trimmed))
		}
	}
	hotel.Amenities = normalized

	return nil
}

func (s *HotelsService) CreateHotel(ownerID string, req *dto.CreateHotelRequest) (*model.Hotel, error) {
	hotel := &model.Hotel{
		HotelID:       utils.GenerateID(),
		OwnerID:       ownerID,
		Name:          req.Name,
		City:          req.City,
		Address:       req.Address,
		Description:   req.Description,
		Amenities:     req.Amenities,
		PricePerNight: req.PricePerNight,
		TotalRooms:    req.TotalRooms,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.validateHotel(hotel); err != nil {
		return nil, err
	}

	if err := s.HotelRepo.CreateHotel(hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *HotelsService) SearchHotels(opts HotelSearchOptions) (*HotelsResponse, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	switch opts.SortBy {
	case "price_per_night", "rating", "created_at":
	default:
		opts.SortBy = ""
	}

	filter := repository.HotelFilter{
		City:      strings.TrimSpace(opts.City),
		MinPrice:  opts.MinPrice,
		MaxPrice:  opts.MaxPrice,
		MinRating: opts.MinRating,
		Amenities: opts.Amenities,
		Query:     strings.TrimSpace(opts.Query),
	}

	hotels, total, err := s.HotelRepo.FindHotels(filter, opts.SortBy, opts.SortOrder == "desc", opts.Page, opts.PageSize)
	if err != nil {
		return nil, err
	}

	pageCount := int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	return &HotelsResponse{
		Hotels:      hotels,
		TotalCount:  total,
		PageCount:   pageCount,
		CurrentPage: opts.Page,
	}, nil
}

// CanManage reports whether the caller may mutate the hotel.
func (s *HotelsService) CanManage(hotel *model.Hotel, userID, role string) bool {
	if role == model.RoleAdmin {
		return true
	}
	return role == model.RoleHotelOwner && hotel.OwnerID == userID
}
