package models

import "time"

// Transaction types. Amount is always stored as a non-negative magnitude;
// the type determines the sign in aggregate sums.
const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeTransfer = "transfer"
)

type Transaction struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	BankAccountID      *int64     `json:"bank_account_id"`
	CreditCardID       *int64     `json:"credit_card_id"`
	BelvoTransactionID *string    `json:"belvo_transaction_id"`
	Description        string     `json:"description"`
	MerchantName       *string    `json:"merchant_name"`
	Category           *string    `json:"category"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	TransactionType    string     `json:"transaction_type"`
	Reference          *string    `json:"reference"`
	Notes              *string    `json:"notes"`
	TransactionDate    time.Time  `json:"transaction_date"`
	ValueDate          *time.Time `json:"value_date"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

type TransactionListResponse struct {
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	Transactions []Transaction `json:"transactions"`
}
