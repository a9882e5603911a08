package models

// Partial-update request bodies. Nil means "leave unchanged".

type UpdateUserRequest struct {
	FullName           *string `json:"full_name"`
	Email              *string `json:"email"`
	PushNotifications  *bool   `json:"push_notifications"`
	EmailNotifications *bool   `json:"email_notifications"`
	SMSNotifications   *bool   `json:"sms_notifications"`
}

type UpdateBankAccountRequest struct {
	AccountName *string `json:"account_name"`
	IsActive    *bool   `json:"is_active"`
	IsPrimary   *bool   `json:"is_primary"`
}

type UpdateCreditCardRequest struct {
	CardName           *string  `json:"card_name"`
	CreditLimit        *float64 `json:"credit_limit"`
	CurrentBalance     *float64 `json:"current_balance"`
	BillingCycleDay    *int     `json:"billing_cycle_day"`
	PaymentDueDay      *int     `json:"payment_due_day"`
	MinimumPayment     *float64 `json:"minimum_payment"`
	AnnualInterestRate *float64 `json:"annual_interest_rate"`
	IsActive           *bool    `json:"is_active"`
}

type UpdateTransactionRequest struct {
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

type UpdateSubscriptionRequest struct {
	ServiceName       *string  `json:"service_name"`
	Category          *string  `json:"category"`
	Amount            *float64 `json:"amount"`
	BillingFrequency  *string  `json:"billing_frequency"`
	BillingDay        *int     `json:"billing_day"`
	IsActive          *bool    `json:"is_active"`
	UserConfirmed     *bool    `json:"user_confirmed"`
	AlertBeforeCharge *bool    `json:"alert_before_charge"`
	AlertDaysBefore   *int     `json:"alert_days_before"`
}

type ResolveSuspiciousChargeRequest struct {
	Status       string  `json:"status"`
	UserFeedback *string `json:"user_feedback"`
}

type UpdateAutomationRuleRequest struct {
	RuleName            *string            `json:"rule_name"`
	Description         *string            `json:"description"`
	TriggerConditions   *TriggerConditions `json:"trigger_conditions"`
	ActionConfig        *ActionConfig      `json:"action_config"`
	IsActive            *bool              `json:"is_active"`
	MaxAmount           *float64           `json:"max_amount"`
	RequireConfirmation *bool              `json:"require_confirmation"`
}

type UpdateAlertRequest struct {
	IsRead      *bool `json:"is_read"`
	IsDismissed *bool `json:"is_dismissed"`
	ActionTaken *bool `json:"action_taken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
