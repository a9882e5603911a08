package handlers

import (
	"encoding/json"
	"testing"

	"glassfin-server/src/models"
)

func TestNewBankAccountDefaults(t *testing.T) {
	t.Run("is_primary in the body is ignored", func(t *testing.T) {
		var account models.BankAccount
		body := `{"account_name":"Nómina","account_type":"checking","institution_name":"BBVA","is_primary":true,"is_active":false}`
		if err := json.Unmarshal([]byte(body), &account); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		newBankAccountDefaults(&account, 7)

		if account.IsPrimary {
			t.Error("new accounts must not start as primary")
		}
		if !account.IsActive {
			t.Error("new accounts must start active")
		}
		if account.UserID != 7 {
			t.Errorf("UserID = %d, want 7", account.UserID)
		}
		if account.Currency != "MXN" {
			t.Errorf("Currency = %q, want MXN", account.Currency)
		}
	})

	t.Run("explicit currency kept", func(t *testing.T) {
		account := models.BankAccount{Currency: "USD"}
		newBankAccountDefaults(&account, 7)
		if account.Currency != "USD" {
			t.Errorf("Currency = %q, want USD", account.Currency)
		}
	})
}
