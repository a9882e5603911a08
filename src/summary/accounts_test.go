package summary

import (
	"testing"

	"glassfin-server/src/models"
)

func TestAccounts(t *testing.T) {
	tests := []struct {
		name     string
		accounts []models.BankAccount
		want     AccountSummary
	}{
		{
			name:     "no accounts",
			accounts: nil,
			want:     AccountSummary{},
		},
		{
			name: "inactive accounts counted but not summed",
			accounts: []models.BankAccount{
				{CurrentBalance: 1000, AvailableBalance: 900, IsActive: true},
				{CurrentBalance: 500, AvailableBalance: 500, IsActive: false},
				{CurrentBalance: 250.50, AvailableBalance: 200, IsActive: true},
			},
			want: AccountSummary{
				TotalAccounts:  3,
				ActiveAccounts: 2,
				TotalBalance:   1250.50,
				TotalAvailable: 1100,
			},
		},
		{
			name: "all inactive yields zero sums",
			accounts: []models.BankAccount{
				{CurrentBalance: 100, AvailableBalance: 100},
			},
			want: AccountSummary{TotalAccounts: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accounts(tt.accounts)
			if got != tt.want {
				t.Errorf("Accounts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCards(t *testing.T) {
	cards := []models.CreditCard{
		{CreditLimit: 10000, CurrentBalance: 2500, AvailableCredit: 7500, MinimumPayment: 125, IsActive: true},
		{CreditLimit: 5000, CurrentBalance: 5000, AvailableCredit: 0, MinimumPayment: 250, IsActive: true},
		{CreditLimit: 20000, CurrentBalance: 0, AvailableCredit: 20000, MinimumPayment: 0, IsActive: false},
	}

	got := Cards(cards)
	want := CardSummary{
		TotalCards:           3,
		ActiveCards:          2,
		TotalCreditLimit:     15000,
		TotalBalance:         7500,
		TotalAvailableCredit: 7500,
		TotalMinimumPayment:  375,
	}
	if got != want {
		t.Errorf("Cards() = %+v, want %+v", got, want)
	}
}

func TestCardsAvailableCreditIdentity(t *testing.T) {
	// available_credit = credit_limit - current_balance holds per card, so it
	// must hold for the active sums too.
	cards := []models.CreditCard{
		{CreditLimit: 8000, CurrentBalance: 1234.56, AvailableCredit: 8000 - 1234.56, IsActive: true},
		{CreditLimit: 3000, CurrentBalance: 299.99, AvailableCredit: 3000 - 299.99, IsActive: true},
	}

	got := Cards(cards)
	if diff := got.TotalCreditLimit - got.TotalBalance - got.TotalAvailableCredit; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("credit identity violated: limit %v - balance %v != available %v",
			got.TotalCreditLimit, got.TotalBalance, got.TotalAvailableCredit)
	}
}
