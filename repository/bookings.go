package repository

import (
	"context"
	"fmt"
	"time"

	"main/config"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo struct {
	MongoCollection *mongo.Collection
}

func GetBookingRepo(client *mongo.Client) *BookingRepo {
	cfg := config.LoadDatabaseConfig()
	collectionName := utils.GetEnvAsString("BOOKINGS_COLLECTION", "bookings")
	return &BookingRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection(collectionName),
	}
}

func (r *BookingRepo) CreateBooking(booking *model.Booking) error {
	timer := utils.TrackDBOperation("insert", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if booking == nil || booking.BookingID == "" || booking.UserID == "" {
		utils.TrackError("database", "invalid_booking_data")
		return fmt.Errorf("invalid booking data: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, booking); err != nil {
		utils.TrackError("database", "booking_creation_failed")
		return fmt.Errorf("failed to create booking in database: %w", err)
	}

	utils.TrackBookingOperation("create")
	return nil
}

func (r *BookingRepo) GetBooking(bookingID string) (*model.Booking, error) {
	timer := utils.TrackDBOperation("find", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var booking model.Booking
	err := r.MongoCollection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "booking_fetch_failed")
		return nil, fmt.Errorf("failed to fetch booking from database: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepo) GetUserBookings(userID string, page, pageSize int) ([]*model.Booking, int64, error) {
	timer := utils.TrackDBOperation("find", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "booking_list_failed")
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *BookingRepo) GetHotelBookings(hotelID string, page, pageSize int) ([]*model.Booking, int64, error) {
	timer := utils.TrackDBOperation("find", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"hotel_id": hotelID}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

// CountOverlapping sums rooms already booked for the hotel over the given
// date range, ignoring cancelled bookings.
func (r *BookingRepo) CountOverlapping(hotelID string, checkIn, checkOut time.Time) (int, error) {
	timer := utils.TrackDBOperation("aggregate", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"hotel_id":  hotelID,
			"status":    bson.M{"$in": []string{model.BookingPending, model.BookingConfirmed}},
			"check_in":  bson.M{"$lt": checkOut},
			"check_out": bson.M{"$gt": checkIn},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "rooms": bson.M{"$sum": "$rooms"}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Rooms int `bson:"rooms"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode overlap count: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Rooms, nil
}

func (r *BookingRepo) UpdateBookingStatus(bookingID, status string) error {
	timer := utils.TrackDBOperation("update", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"booking_id": bookingID}, update)
	if err != nil {
		utils.TrackError("database", "booking_status_update_failed")
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	utils.TrackBookingOperation(status)
	return nil
}

func (r *BookingRepo) CountBookings() (int64, error) {
	timer := utils.TrackDBOperation("count", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// CountByStatus groups bookings by lifecycle status.
func (r *BookingRepo) CountByStatus() (map[string]int64, error) {
	timer := utils.TrackDBOperation("aggregate", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// RecentBookings returns the most recent bookings across all hotels.
func (r *BookingRepo) RecentBookings(limit int) ([]*model.Booking, error) {
	timer := utils.TrackDBOperation("find", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// TotalRevenue sums confirmed and completed booking amounts.
func (r *BookingRepo) TotalRevenue() (float64, error) {
	timer := utils.TrackDBOperation("aggregate", "bookings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$in": []string{model.BookingConfirmed, model.BookingCompleted}}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
