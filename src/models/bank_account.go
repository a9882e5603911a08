package models

import "time"

type BankAccount struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	BelvoAccountID   *string    `json:"belvo_account_id"`
	AccountName      string     `json:"account_name"`
	AccountNumber    *string    `json:"account_number"` // last 4 digits only
	AccountType      string     `json:"account_type"`
	InstitutionName  string     `json:"institution_name"`
	Currency         string     `json:"currency"`
	CurrentBalance   float64    `json:"current_balance"`
	AvailableBalance float64    `json:"available_balance"`
	IsActive         bool       `json:"is_active"`
	IsPrimary        bool       `json:"is_primary"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
	LastSyncedAt     *time.Time `json:"last_synced_at"`
}
