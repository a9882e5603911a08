package models

import "time"

const (
	ChargeStatusPending             = "pending"
	ChargeStatusConfirmedFraudulent = "confirmed_fraudulent"
	ChargeStatusConfirmedLegitimate = "confirmed_legitimate"
	ChargeStatusDismissed           = "dismissed"
)

type SuspiciousCharge struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	TransactionID   *int64     `json:"transaction_id"`
	MerchantName    string     `json:"merchant_name"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	ChargeDate      time.Time  `json:"charge_date"`
	SuspicionType   string     `json:"suspicion_type"`
	ConfidenceScore float64    `json:"confidence_score"` // 0.0 to 1.0
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	UserFeedback    *string    `json:"user_feedback"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	AlertSent       bool       `json:"alert_sent"`
	AlertSentAt     *time.Time `json:"alert_sent_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
