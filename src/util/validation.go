package util

import (
	"regexp"
)

func ValidateEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func ValidateFullName(name string) bool {
	return len(name) >= 2 && len(name) <= 100
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile("[a-z]").MatchString(password)
	hasUpper := regexp.MustCompile("[A-Z]").MatchString(password)
	hasDigit := regexp.MustCompile("[0-9]").MatchString(password)

	return hasLower && hasUpper && hasDigit
}

func ValidateBillingFrequency(frequency string) bool {
	switch frequency {
	case "monthly", "yearly", "weekly":
		return true
	}
	return false
}

func ValidateTransactionType(transactionType string) bool {
	switch transactionType {
	case "income", "expense", "transfer":
		return true
	}
	return false
}

func ValidateChargeStatus(status string) bool {
	switch status {
	case "pending", "confirmed_fraudulent", "confirmed_legitimate", "dismissed":
		return true
	}
	return false
}

func ValidateAlertPriority(priority string) bool {
	switch priority {
	case "low", "medium", "high", "critical":
		return true
	}
	return false
}
