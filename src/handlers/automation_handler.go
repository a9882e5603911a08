package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	cache "glassfin-server/src/db"
	db "glassfin-server/src/db/sql"
	"glassfin-server/src/models"
	"glassfin-server/src/summary"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAutomationRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active_only") == "true"
		rules, err := db.GetAllAutomationRules(r.Context(), pool, userIDFrom(r), activeOnly)
		if err != nil {
			handleStoreError(w, err, "rules")
			return
		}
		writeJSON(w, http.StatusOK, rules)
	}
}

func GetAutomationRuleSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		cacheKey := cache.SummaryCacheKey("automation", userID)
		if cached, found := cache.GetSummaryCache(cacheKey); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}

		rules, err := db.GetAllAutomationRules(r.Context(), pool, userID, false)
		if err != nil {
			handleStoreError(w, err, "rules")
			return
		}

		s := summary.AutomationRules(rules)
		cache.SetSummaryCache(cacheKey, s)
		writeJSON(w, http.StatusOK, s)
	}
}

func GetAutomationRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ruleID, err := idParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		rule, err := db.GetAutomationRuleByID(r.Context(), pool, userIDFrom(r), ruleID)
		if err != nil {
			handleStoreError(w, err, "rule")
			return
		}
		writeJSON(w, http.StatusOK, rule)
	}
}

func CreateAutomationRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)

		rule := models.AutomationRule{IsActive: true, RequireConfirmation: true}
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			// A malformed trigger or action payload fails the union decode here.
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		if rule.RuleName == "" || rule.RuleType == "" {
			http.Error(w, "rule_name and rule_type are required", http.StatusBadRequest)
			return
		}
		if rule.TriggerConditions.Type == "" || rule.ActionConfig.Type == "" {
			http.Error(w, "trigger_conditions and action_config are required", http.StatusBadRequest)
			return
		}

		rule.UserID = userID

		created, err := db.CreateAutomationRule(r.Context(), pool, &rule)
		if err != nil {
			log.Printf("ERROR: Failed to create rule for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateAutomationRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		ruleID, err := idParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		var req models.UpdateAutomationRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		rule, err := db.UpdateAutomationRule(r.Context(), pool, userID, ruleID, req)
		if err != nil {
			handleStoreError(w, err, "rule")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, rule)
	}
}

func ToggleAutomationRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		ruleID, err := idParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		rule, err := db.ToggleAutomationRule(r.Context(), pool, userID, ruleID)
		if err != nil {
			handleStoreError(w, err, "rule")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, rule)
	}
}

// DeleteAutomationRule removes the rule permanently, unlike the
// soft-deleting account and subscription endpoints.
func DeleteAutomationRule(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFrom(r)
		ruleID, err := idParam(r, "rule_id")
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}

		if err := db.DeleteAutomationRule(r.Context(), pool, userID, ruleID); err != nil {
			handleStoreError(w, err, "rule")
			return
		}

		cache.ClearUserSummaryCaches(userID)
		writeJSON(w, http.StatusOK, map[string]string{"message": "rule deleted"})
	}
}
