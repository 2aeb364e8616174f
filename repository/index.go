package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := db.Collection("users")
	hotelsCollection := db.Collection("hotels")
	bookingsCollection := db.Collection("bookings")
	paymentsCollection := db.Collection("payments")

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	hotelIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "hotel_id", Value: 1}},
			Options: options.Index().
				SetName("hotel_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "city", Value: 1},
				{Key: "price_per_night", Value: 1},
			},
			Options: options.Index().
				SetName("city_price"),
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().
				SetName("owner_index"),
		},
		// Text search index
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "city", Value: "text"},
			},
			Options: options.Index().
				SetName("text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "city", Value: 5},
					{Key: "description", Value: 3},
				}),
		},
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().
				SetName("booking_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_bookings_date"),
		},
		{
			Keys: bson.D{
				{Key: "hotel_id", Value: 1},
				{Key: "check_in", Value: 1},
				{Key: "check_out", Value: 1},
			},
			Options: options.Index().
				SetName("hotel_date_range"),
		},
	}

	paymentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().
				SetName("order_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().
				SetName("order_booking_index"),
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}
	if _, err := hotelsCollection.Indexes().CreateMany(ctx, hotelIndexes); err != nil {
		return fmt.Errorf("failed to create hotels indexes: %w", err)
	}
	if _, err := bookingsCollection.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create bookings indexes: %w", err)
	}
	if _, err := paymentsCollection.Indexes().CreateMany(ctx, paymentIndexes); err != nil {
		return fmt.Errorf("failed to create payments indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
