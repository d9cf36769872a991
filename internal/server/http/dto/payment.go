package dto

import "time"

// StartPaymentRequest begins a payment attempt. The idempotency key arrives
// in the Idempotency-Key header, not the body.
type StartPaymentRequest struct {
	PaymentMethodID int64 `json:"payment_method_id" binding:"required"`
}

// FinalizePaymentRequest records the provider outcome.
type FinalizePaymentRequest struct {
	Succeeded *bool `json:"succeeded" binding:"required"`
}

// PaymentResponse describes one payment attempt.
type PaymentResponse struct {
	ID              int64      `json:"id"`
	OrderID         int64      `json:"order_id"`
	PaymentMethodID int64      `json:"payment_method_id"`
	Amount          string     `json:"amount"`
	Status          string     `json:"status"`
	RedirectURL     string     `json:"redirect_url,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

// PaymentMethodResponse is one way to pay.
type PaymentMethodResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CleanupResponse summarizes one manual maintenance sweep.
type CleanupResponse struct {
	OrdersCancelled int `json:"orders_cancelled"`
	TicketsReleased int `json:"tickets_released"`
	GAUnitsReleased int `json:"ga_units_released"`
}
