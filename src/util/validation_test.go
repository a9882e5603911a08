package util

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"maria@example.com", true},
		{"maria.lopez+banco@sub.example.mx", true},
		{"no-at-sign.example.com", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Secreta1", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.valid {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.valid)
		}
	}
}

func TestValidateBillingFrequency(t *testing.T) {
	for _, freq := range []string{"monthly", "yearly", "weekly"} {
		if !ValidateBillingFrequency(freq) {
			t.Errorf("ValidateBillingFrequency(%q) = false, want true", freq)
		}
	}
	for _, freq := range []string{"daily", "quarterly", ""} {
		if ValidateBillingFrequency(freq) {
			t.Errorf("ValidateBillingFrequency(%q) = true, want false", freq)
		}
	}
}

func TestValidateChargeStatus(t *testing.T) {
	for _, status := range []string{"pending", "confirmed_fraudulent", "confirmed_legitimate", "dismissed"} {
		if !ValidateChargeStatus(status) {
			t.Errorf("ValidateChargeStatus(%q) = false, want true", status)
		}
	}
	if ValidateChargeStatus("resolved") {
		t.Error("ValidateChargeStatus(\"resolved\") = true, want false")
	}
}
