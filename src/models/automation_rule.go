package models

import "time"

type AutomationRule struct {
	ID                  int64             `json:"id"`
	UserID              int64             `json:"user_id"`
	RuleName            string            `json:"rule_name"`
	RuleType            string            `json:"rule_type"` // auto_pay, auto_save, budget_alert, etc.
	Description         *string           `json:"description"`
	TriggerConditions   TriggerConditions `json:"trigger_conditions"`
	ActionConfig        ActionConfig      `json:"action_config"`
	IsActive            bool              `json:"is_active"`
	MaxAmount           *float64          `json:"max_amount"`
	RequireConfirmation bool              `json:"require_confirmation"`
	LastExecutedAt      *time.Time        `json:"last_executed_at"`
	ExecutionCount      int               `json:"execution_count"`
	FailureCount        int               `json:"failure_count"`
	LastError           *string           `json:"last_error"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           *time.Time        `json:"updated_at"`
}
