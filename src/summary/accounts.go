package summary

import "glassfin-server/src/models"

// AccountSummary is the derived view over one user's bank accounts.
// Inactive accounts count toward Total but are excluded from all sums.
type AccountSummary struct {
	TotalAccounts  int     `json:"total_accounts"`
	ActiveAccounts int     `json:"active_accounts"`
	TotalBalance   float64 `json:"total_balance"`
	TotalAvailable float64 `json:"total_available"`
}

func Accounts(accounts []models.BankAccount) AccountSummary {
	s := AccountSummary{TotalAccounts: len(accounts)}
	for _, acc := range accounts {
		if !acc.IsActive {
			continue
		}
		s.ActiveAccounts++
		s.TotalBalance += acc.CurrentBalance
		s.TotalAvailable += acc.AvailableBalance
	}
	return s
}

type CardSummary struct {
	TotalCards           int     `json:"total_cards"`
	ActiveCards          int     `json:"active_cards"`
	TotalCreditLimit     float64 `json:"total_credit_limit"`
	TotalBalance         float64 `json:"total_balance"`
	TotalAvailableCredit float64 `json:"total_available_credit"`
	TotalMinimumPayment  float64 `json:"total_minimum_payment"`
}

func Cards(cards []models.CreditCard) CardSummary {
	s := CardSummary{TotalCards: len(cards)}
	for _, card := range cards {
		if !card.IsActive {
			continue
		}
		s.ActiveCards++
		s.TotalCreditLimit += card.CreditLimit
		s.TotalBalance += card.CurrentBalance
		s.TotalAvailableCredit += card.AvailableCredit
		s.TotalMinimumPayment += card.MinimumPayment
	}
	return s
}
