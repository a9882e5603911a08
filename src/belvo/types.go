package belvo

import "fmt"

type Institution struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country_code"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

type Link struct {
	ID             string  `json:"id"`
	Institution    string  `json:"institution"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	LastAccessedAt *string `json:"last_accessed_at"`
}

type Balance struct {
	Current   float64 `json:"current"`
	Available float64 `json:"available"`
}

type AccountInstitution struct {
	Name string `json:"name"`
}

type Account struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Number      string             `json:"number"`
	Type        string             `json:"type"`
	Currency    string             `json:"currency"`
	Balance     Balance            `json:"balance"`
	Institution AccountInstitution `json:"institution"`
}

type TransactionAccount struct {
	ID string `json:"id"`
}

type Merchant struct {
	Name string `json:"name"`
}

type Transaction struct {
	ID          string             `json:"id"`
	Account     TransactionAccount `json:"account"`
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`
	Merchant    *Merchant          `json:"merchant"`
	Category    *string            `json:"category"`
	Currency    string             `json:"currency"`
	Reference   *string            `json:"reference"`
	ValueDate   string             `json:"value_date"` // YYYY-MM-DD
}

// APIError is returned for any non-2xx provider response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("belvo: %d %s", e.StatusCode, e.Message)
}
