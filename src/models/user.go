package models

import "time"

type User struct {
	ID                 int64      `json:"id"`
	FullName           string     `json:"full_name"`
	Email              string     `json:"email"`
	HashedPassword     string     `json:"-"`
	IsActive           bool       `json:"is_active"`
	IsVerified         bool       `json:"is_verified"`
	BelvoLinkID        *string    `json:"belvo_link_id"`
	PushNotifications  bool       `json:"push_notifications"`
	EmailNotifications bool       `json:"email_notifications"`
	SMSNotifications   bool       `json:"sms_notifications"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
	LastLogin          *time.Time `json:"last_login"`
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UserProfile is the /users/me/profile response: the user plus
// aggregate statistics over their linked entities.
type UserProfile struct {
	User
	TotalAccounts       int     `json:"total_accounts"`
	TotalCreditCards    int     `json:"total_credit_cards"`
	TotalBalance        float64 `json:"total_balance"`
	TotalCreditLimit    float64 `json:"total_credit_limit"`
	ActiveSubscriptions int     `json:"active_subscriptions"`
	PendingAlerts       int     `json:"pending_alerts"`
}
