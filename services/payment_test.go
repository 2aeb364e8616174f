package services

import (
	"os"
	"testing"
)

func TestPaymentSignatureRoundTrip(t *testing.T) {
	os.Setenv("PAYMENT_SECRET", "test-payment-secret")

	sig := SignPayment("order-1", "pay-1")
	if sig == "" {
		t.Fatal("Expected non-empty signature")
	}

	if !VerifyPaymentSignature("order-1", "pay-1", sig) {
		t.Error("Expected signature to verify")
	}
	if VerifyPaymentSignature("order-2", "pay-1", sig) {
		t.Error("Expected signature for different order to fail")
	}
	if VerifyPaymentSignature("order-1", "pay-1", sig+"00") {
		t.Error("Expected tampered signature to fail")
	}
}

func TestPaymentSignatureDependsOnSecret(t *testing.T) {
	os.Setenv("PAYMENT_SECRET", "secret-a")
	sigA := SignPayment("order-1", "pay-1")

	os.Setenv("PAYMENT_SECRET", "secret-b")
	sigB := SignPayment("order-1", "pay-1")

	if sigA == sigB {
		t.Error("Expected different secrets to produce different signatures")
	}
}
