package models

import "time"

const (
	AlertPriorityLow      = "low"
	AlertPriorityMedium   = "medium"
	AlertPriorityHigh     = "high"
	AlertPriorityCritical = "critical"
)

type Alert struct {
	ID                    int64      `json:"id"`
	UserID                int64      `json:"user_id"`
	AlertType             string     `json:"alert_type"` // suspicious_charge, subscription_reminder, low_balance, etc.
	Title                 string     `json:"title"`
	Message               string     `json:"message"`
	Priority              string     `json:"priority"`
	Category              string     `json:"category"` // security, payment, budget, account
	RelatedTransactionID  *int64     `json:"related_transaction_id"`
	RelatedSubscriptionID *int64     `json:"related_subscription_id"`
	RelatedAccountID      *int64     `json:"related_account_id"`
	IsRead                bool       `json:"is_read"`
	IsDismissed           bool       `json:"is_dismissed"`
	ReadAt                *time.Time `json:"read_at"`
	DismissedAt           *time.Time `json:"dismissed_at"`
	RequiresAction        bool       `json:"requires_action"`
	ActionURL             *string    `json:"action_url"`
	ActionTaken           bool       `json:"action_taken"`
	ActionTakenAt         *time.Time `json:"action_taken_at"`
	PushSent              bool       `json:"push_sent"`
	EmailSent             bool       `json:"email_sent"`
	SMSSent               bool       `json:"sms_sent"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at"`
}
