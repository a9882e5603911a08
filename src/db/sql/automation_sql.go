package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"glassfin-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const automationRuleColumns = `
	id, user_id, rule_name, rule_type, description, trigger_conditions,
	action_config, is_active, max_amount, require_confirmation,
	last_executed_at, execution_count, failure_count, last_error,
	created_at, updated_at
`

func scanAutomationRule(row pgx.Row) (*models.AutomationRule, error) {
	var r models.AutomationRule
	var trigger, action []byte
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.RuleName,
		&r.RuleType,
		&r.Description,
		&trigger,
		&action,
		&r.IsActive,
		&r.MaxAmount,
		&r.RequireConfirmation,
		&r.LastExecutedAt,
		&r.ExecutionCount,
		&r.FailureCount,
		&r.LastError,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	if err := json.Unmarshal(trigger, &r.TriggerConditions); err != nil {
		return nil, fmt.Errorf("invalid trigger_conditions for rule %d: %w", r.ID, err)
	}
	if err := json.Unmarshal(action, &r.ActionConfig); err != nil {
		return nil, fmt.Errorf("invalid action_config for rule %d: %w", r.ID, err)
	}
	return &r, nil
}

func GetAllAutomationRules(ctx context.Context, pool *pgxpool.Pool, userID int64, activeOnly bool) ([]models.AutomationRule, error) {
	query := `SELECT ` + automationRuleColumns + ` FROM automation_rules WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	rules := []models.AutomationRule{}
	for rows.Next() {
		rule, err := scanAutomationRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func GetAutomationRuleByID(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64) (*models.AutomationRule, error) {
	query := `SELECT ` + automationRuleColumns + ` FROM automation_rules WHERE id = $1 AND user_id = $2`
	return scanAutomationRule(pool.QueryRow(ctx, query, ruleID, userID))
}

func CreateAutomationRule(ctx context.Context, pool *pgxpool.Pool, rule *models.AutomationRule) (*models.AutomationRule, error) {
	trigger, err := json.Marshal(rule.TriggerConditions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trigger_conditions: %w", err)
	}
	action, err := json.Marshal(rule.ActionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action_config: %w", err)
	}

	query := `
		INSERT INTO automation_rules (
			user_id, rule_name, rule_type, description, trigger_conditions,
			action_config, is_active, max_amount, require_confirmation
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + automationRuleColumns
	return scanAutomationRule(pool.QueryRow(ctx, query,
		rule.UserID,
		rule.RuleName,
		rule.RuleType,
		rule.Description,
		trigger,
		action,
		rule.IsActive,
		rule.MaxAmount,
		rule.RequireConfirmation,
	))
}

func UpdateAutomationRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64, req models.UpdateAutomationRuleRequest) (*models.AutomationRule, error) {
	var trigger, action []byte
	var err error
	if req.TriggerConditions != nil {
		if trigger, err = json.Marshal(req.TriggerConditions); err != nil {
			return nil, fmt.Errorf("failed to encode trigger_conditions: %w", err)
		}
	}
	if req.ActionConfig != nil {
		if action, err = json.Marshal(req.ActionConfig); err != nil {
			return nil, fmt.Errorf("failed to encode action_config: %w", err)
		}
	}

	query := `
		UPDATE automation_rules
		SET rule_name = COALESCE($1, rule_name),
		    description = COALESCE($2, description),
		    trigger_conditions = COALESCE($3, trigger_conditions),
		    action_config = COALESCE($4, action_config),
		    is_active = COALESCE($5, is_active),
		    max_amount = COALESCE($6, max_amount),
		    require_confirmation = COALESCE($7, require_confirmation),
		    updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + automationRuleColumns
	return scanAutomationRule(pool.QueryRow(ctx, query,
		req.RuleName,
		req.Description,
		trigger,
		action,
		req.IsActive,
		req.MaxAmount,
		req.RequireConfirmation,
		ruleID,
		userID,
	))
}

// ToggleAutomationRule flips is_active and returns the updated rule.
func ToggleAutomationRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64) (*models.AutomationRule, error) {
	query := `
		UPDATE automation_rules
		SET is_active = NOT is_active, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + automationRuleColumns
	return scanAutomationRule(pool.QueryRow(ctx, query, ruleID, userID))
}

// DeleteAutomationRule removes the row outright. Rules carry no history
// worth keeping, unlike accounts and subscriptions.
func DeleteAutomationRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int64) error {
	query := `DELETE FROM automation_rules WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, ruleID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
