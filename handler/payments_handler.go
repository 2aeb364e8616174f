package handler

import (
	"log"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreatePaymentOrderHandler(c *gin.Context, paymentRepo *repository.PaymentRepo, bookingsService *usecase.BookingsService) {
	userID, _ := c.Get("user_id")

	var req dto.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	booking, err := bookingsService.BookingRepo.GetBooking(req.BookingID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch booking")
		return
	}
	if booking == nil {
		utils.NotFound(c, "Booking not found")
		return
	}
	if booking.UserID != userID.(string) {
		utils.Forbidden(c, "Not allowed to pay for this booking")
		return
	}
	if booking.Status != model.BookingPending {
		utils.BadRequest(c, "Booking is not awaiting payment")
		return
	}

	order := &model.PaymentOrder{
		OrderID:   utils.GenerateID(),
		BookingID: booking.BookingID,
		UserID:    booking.UserID,
		Amount:    booking.TotalAmount,
		Currency:  utils.GetEnvAsString("PAYMENT_CURRENCY", "USD"),
		Status:    model.PaymentCreated,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	if err := paymentRepo.CreateOrder(order); err != nil {
		log.Printf("Error creating payment order: %v", err)
		utils.InternalError(c, "Failed to create payment order")
		return
	}

	utils.Created(c, order)
}

func VerifyPaymentHandler(c *gin.Context, paymentRepo *repository.PaymentRepo, bookingsService *usecase.BookingsService, activityLog *services.ActivityLogger) {
	userID, _ := c.Get("user_id")

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	order, err := paymentRepo.GetOrder(req.OrderID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch payment order")
		return
	}
	if order == nil {
		utils.NotFound(c, "Payment order not found")
		return
	}
	if order.UserID != userID.(string) {
		utils.Forbidden(c, "Not allowed to verify this order")
		return
	}
	if order.Status == model.PaymentPaid {
		utils.Success(c, order)
		return
	}
	if time.Now().After(order.ExpiresAt) {
		paymentRepo.MarkStatus(order.OrderID, model.PaymentExpired)
		utils.BadRequest(c, "Payment order has expired")
		return
	}

	if !services.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		activityLog.RecordSystem(model.ActivityLog{
			ActorID:    userID.(string),
			Method:     "POST",
			Path:       c.Request.URL.Path,
			IPAddress:  c.ClientIP(),
			StatusCode: 400,
			Note:       "rejected: payment signature mismatch for order " + req.OrderID,
		})
		utils.BadRequest(c, "Payment verification failed")
		return
	}

	if err := paymentRepo.MarkPaid(req.OrderID, req.PaymentID); err != nil {
		log.Printf("Error marking order %s paid: %v", req.OrderID, err)
		utils.InternalError(c, "Failed to record payment")
		return
	}

	if err := bookingsService.ConfirmBooking(order.BookingID); err != nil {
		log.Printf("Error confirming booking %s: %v", order.BookingID, err)
		utils.InternalError(c, "Payment recorded but booking confirmation failed")
		return
	}

	order.Status = model.PaymentPaid
	order.PaymentID = req.PaymentID
	utils.Success(c, order)
}
