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
)

type PaymentRepo struct {
	MongoCollection *mongo.Collection
}

func GetPaymentRepo(client *mongo.Client) *PaymentRepo {
	cfg := config.LoadDatabaseConfig()
	collectionName := utils.GetEnvAsString("PAYMENTS_COLLECTION", "payments")
	return &PaymentRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection(collectionName),
	}
}

func (r *PaymentRepo) CreateOrder(order *model.PaymentOrder) error {
	timer := utils.TrackDBOperation("insert", "payments")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if order == nil || order.OrderID == "" || order.BookingID == "" {
		utils.TrackError("database", "invalid_order_data")
		return fmt.Errorf("invalid payment order: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, order); err != nil {
		utils.TrackError("database", "order_creation_failed")
		return fmt.Errorf("failed to create payment order: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetOrder(orderID string) (*model.PaymentOrder, error) {
	timer := utils.TrackDBOperation("find", "payments")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order model.PaymentOrder
	err := r.MongoCollection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "order_fetch_failed")
		return nil, fmt.Errorf("failed to fetch payment order: %w", err)
	}
	return &order, nil
}

func (r *PaymentRepo) MarkPaid(orderID, paymentID string) error {
	timer := utils.TrackDBOperation("update", "payments")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     model.PaymentPaid,
		"payment_id": paymentID,
		"paid_at":    time.Now(),
	}}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		utils.TrackError("database", "order_update_failed")
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PaymentRepo) MarkStatus(orderID, status string) error {
	timer := utils.TrackDBOperation("update", "payments")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"order_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
