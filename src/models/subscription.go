package models

import "time"

const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
	BillingWeekly  = "weekly"
)

type Subscription struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	ServiceName      string     `json:"service_name"`
	MerchantName     string     `json:"merchant_name"`
	Category         *string    `json:"category"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	BillingFrequency string     `json:"billing_frequency"`
	BillingDay       *int       `json:"billing_day"`
	FirstChargeDate  time.Time  `json:"first_charge_date"`
	LastChargeDate   *time.Time `json:"last_charge_date"`
	NextChargeDate   *time.Time `json:"next_charge_date"`
	IsActive         bool       `json:"is_active"`
	AutoDetected     bool       `json:"auto_detected"`
	UserConfirmed    bool       `json:"user_confirmed"`
	AlertBeforeCharge bool      `json:"alert_before_charge"`
	AlertDaysBefore  int        `json:"alert_days_before"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
