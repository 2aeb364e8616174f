package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/config"
	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HotelRepo struct {
	MongoCollection *mongo.Collection
}

func GetHotelRepo(client *mongo.Client) *HotelRepo {
	cfg := config.LoadDatabaseConfig()
	collectionName := utils.GetEnvAsString("HOTELS_COLLECTION", "hotels")
	return &HotelRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection(collectionName),
	}
}

// HotelFilter narrows FindHotels; zero values are ignored.
type HotelFilter struct {
	City      string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Amenities []string
	Query     string
	OwnerID   string
}

func (f HotelFilter) build() bson.M {
	filter := bson.M{"is_active": true}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
		delete(filter, "is_active") // owners see their inactive hotels too
	}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		price := bson.M{}
		if f.MinPrice > 0 {
			price["$gte"] = f.MinPrice
		}
		if f.MaxPrice > 0 {
			price["$lte"] = f.MaxPrice
		}
		filter["price_per_night"] = price
	}
	if f.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": f.MinRating}
	}
	if len(f.Amenities) > 0 {
		filter["amenities"] = bson.M{"$all": f.Amenities}
	}
	if f.Query != "" {
		filter["$text"] = bson.M{"$search": f.Query}
	}
	return filter
}

func (r *HotelRepo) CreateHotel(hotel *model.Hotel) error {
	timer := utils.TrackDBOperation("insert", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if hotel == nil || hotel.HotelID == "" {
		utils.TrackError("database", "invalid_hotel_data")
		return fmt.Errorf("invalid hotel data: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, hotel); err != nil {
		utils.TrackError("database", "hotel_creation_failed")
		return fmt.Errorf("failed to create hotel in database: %w", err)
	}
	return nil
}

func (r *HotelRepo) GetHotel(hotelID string) (*model.Hotel, error) {
	timer := utils.TrackDBOperation("find", "hotels")
	defer timer.ObserveDuration()

	if hotelID == "" {
		return nil, fmt.Errorf("hotelID cannot be empty")
	}

	if services.GlobalHotelCache != nil {
		if hotel, err := services.GlobalHotelCache.GetHotel(hotelID); err == nil && hotel != nil {
			utils.TrackCacheOperation("hotel", true)
			return hotel, nil
		}
		utils.TrackCacheOperation("hotel", false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var hotel model.Hotel
	err := r.MongoCollection.FindOne(ctx, bson.M{"hotel_id": hotelID}).Decode(&hotel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "hotel_fetch_failed")
		return nil, fmt.Errorf("failed to fetch hotel from database: %w", err)
	}

	if services.GlobalHotelCache != nil {
		if err := services.GlobalHotelCache.SetHotel(&hotel); err != nil {
			log.Printf("Warning: Failed to cache hotel: %v", err)
		}
	}

	return &hotel, nil
}

func (r *HotelRepo) FindHotels(filter HotelFilter, sortBy string, descending bool, page, pageSize int) ([]*model.Hotel, int64, error) {
	timer := utils.TrackDBOperation("find", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := filter.build()

	total, err := r.MongoCollection.CountDocuments(ctx, query)
	if err != nil {
		utils.TrackError("database", "hotel_count_failed")
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	order := 1
	if descending {
		order = -1
	}
	if sortBy == "" {
		sortBy = "rating"
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "hotel_search_failed")
		return nil, 0, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []*model.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, 0, fmt.Errorf("failed to decode hotels: %w", err)
	}

	return hotels, total, nil
}

func (r *HotelRepo) UpdateHotel(hotelID string, update bson.M) error {
	timer := utils.TrackDBOperation("update", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"hotel_id": hotelID}, bson.M{"$set": update})
	if err != nil {
		utils.TrackError("database", "hotel_update_failed")
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if services.GlobalHotelCache != nil {
		if err := services.GlobalHotelCache.InvalidateHotel(hotelID); err != nil {
			log.Printf("Warning: Failed to invalidate hotel cache: %v", err)
		}
	}
	return nil
}

func (r *HotelRepo) DeleteHotel(hotelID string) error {
	timer := utils.TrackDBOperation("delete", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"hotel_id": hotelID})
	if err != nil {
		utils.TrackError("database", "hotel_delete_failed")
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if services.GlobalHotelCache != nil {
		if err := services.GlobalHotelCache.InvalidateHotel(hotelID); err != nil {
			log.Printf("Warning: Failed to invalidate hotel cache: %v", err)
		}
	}
	return nil
}

func (r *HotelRepo) CountHotels() (int64, error) {
	timer := utils.TrackDBOperation("count", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// TopCities aggregates the cities with the most active hotels.
func (r *HotelRepo) TopCities(limit int) ([]model.CityCount, error) {
	timer := utils.TrackDBOperation("aggregate", "hotels")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$city", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cities: %w", err)
	}
	defer cursor.Close(ctx)

	var cities []model.CityCount
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode city counts: %w", err)
	}
	return cities, nil
}
