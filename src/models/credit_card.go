package models

import "time"

type CreditCard struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	CardName           string     `json:"card_name"`
	LastFourDigits     string     `json:"last_four_digits"`
	InstitutionName    string     `json:"institution_name"`
	CardType           *string    `json:"card_type"`
	CreditLimit        float64    `json:"credit_limit"`
	CurrentBalance     float64    `json:"current_balance"`
	AvailableCredit    float64    `json:"available_credit"`
	BillingCycleDay    *int       `json:"billing_cycle_day"`
	PaymentDueDay      *int       `json:"payment_due_day"`
	MinimumPayment     float64    `json:"minimum_payment"`
	AnnualInterestRate *float64   `json:"annual_interest_rate"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
	LastSyncedAt       *time.Time `json:"last_synced_at"`
}
