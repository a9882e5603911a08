package summary

import "glassfin-server/src/models"

type AlertSummary struct {
	TotalAlerts    int `json:"total_alerts"`
	UnreadAlerts   int `json:"unread_alerts"`
	CriticalAlerts int `json:"critical_alerts"`
	RequiresAction int `json:"requires_action"`
}

// Alerts expects the dismissed rows to already be filtered out.
func Alerts(alerts []models.Alert) AlertSummary {
	s := AlertSummary{TotalAlerts: len(alerts)}
	for _, a := range alerts {
		if !a.IsRead {
			s.UnreadAlerts++
		}
		if a.Priority == models.AlertPriorityCritical {
			s.CriticalAlerts++
		}
		if a.RequiresAction && !a.ActionTaken {
			s.RequiresAction++
		}
	}
	return s
}

type AutomationRuleSummary struct {
	TotalRules      int `json:"total_rules"`
	ActiveRules     int `json:"active_rules"`
	TotalExecutions int `json:"total_executions"`
}

func AutomationRules(rules []models.AutomationRule) AutomationRuleSummary {
	s := AutomationRuleSummary{TotalRules: len(rules)}
	for _, r := range rules {
		if r.IsActive {
			s.ActiveRules++
		}
		s.TotalExecutions += r.ExecutionCount
	}
	return s
}
