package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// HotelCache fronts the hotels collection with Redis. Entries are
// invalidated on every mutation, so a short TTL is enough.
type HotelCache struct {
	client *redis.Client
	ttl    time.Duration
}

var GlobalHotelCache *HotelCache

// NewHotelCache creates and initializes a new hotel cache
func NewHotelCache(redisURL string, ttl time.Duration) (*HotelCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &HotelCache{client: client, ttl: ttl}, nil
}

// SetHotel caches a single hotel document
func (hc *HotelCache) SetHotel(hotel *model.Hotel) error {
	if hotel == nil {
		return fmt.Errorf("cannot cache nil hotel")
	}

	data, err := json.Marshal(hotel)
	if err != nil {
		return fmt.Errorf("failed to marshal hotel: %v", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("hotel:%s", hotel.HotelID)

	if err := hc.client.Set(ctx, key, data, hc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache hotel: %v", err)
	}
	return nil
}

// GetHotel retrieves a hotel from cache; (nil, nil) on cache miss
func (hc *HotelCache) GetHotel(hotelID string) (*model.Hotel, error) {
	if hotelID == "" {
		return nil, fmt.Errorf("hotelID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("hotel:%s", hotelID)

	data, err := hc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel from cache: %v", err)
	}

	var hotel model.Hotel
	if err := json.Unmarshal(data, &hotel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hotel: %v", err)
	}
	return &hotel, nil
}

// InvalidateHotel removes a hotel from the cache after a mutation
func (hc *HotelCache) InvalidateHotel(hotelID string) error {
	ctx := context.Background()
	return hc.client.Del(ctx, fmt.Sprintf("hotel:%s", hotelID)).Err()
}

// IsConnected checks if the Redis connection is alive
func (hc *HotelCache) IsConnected() bool {
	if hc == nil || hc.client == nil {
		return false
	}
	return hc.client.Ping(context.Background()).Err() == nil
}

// Close closes the Redis connection
func (hc *HotelCache) Close() error {
	return hc.client.Close()
}
