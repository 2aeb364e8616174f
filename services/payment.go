package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// SignPayment computes the HMAC signature the gateway is expected to send
// back after charging an order.
func SignPayment(orderID, paymentID string) string {
	secret := os.Getenv("PAYMENT_SECRET")
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks a gateway callback signature in constant time.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := SignPayment(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
