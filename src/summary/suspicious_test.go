package summary

import (
	"testing"

	"glassfin-server/src/models"
)

func TestSuspiciousCharges(t *testing.T) {
	tests := []struct {
		name    string
		charges []models.SuspiciousCharge
		want    SuspiciousChargeSummary
	}{
		{
			name:    "empty",
			charges: nil,
			want:    SuspiciousChargeSummary{},
		},
		{
			name: "pending and legitimate",
			charges: []models.SuspiciousCharge{
				{Amount: 500, Status: models.ChargeStatusPending},
				{Amount: 2000, Status: models.ChargeStatusConfirmedLegitimate},
			},
			want: SuspiciousChargeSummary{
				TotalSuspicious:     2,
				PendingReview:       1,
				ConfirmedLegitimate: 1,
				TotalAmountAtRisk:   500,
			},
		},
		{
			name: "fraudulent counts toward risk, dismissed does not",
			charges: []models.SuspiciousCharge{
				{Amount: 100, Status: models.ChargeStatusPending},
				{Amount: 250, Status: models.ChargeStatusConfirmedFraudulent},
				{Amount: 9000, Status: models.ChargeStatusDismissed},
				{Amount: 80, Status: models.ChargeStatusConfirmedLegitimate},
			},
			want: SuspiciousChargeSummary{
				TotalSuspicious:     4,
				PendingReview:       1,
				ConfirmedFraudulent: 1,
				ConfirmedLegitimate: 1,
				TotalAmountAtRisk:   350,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuspiciousCharges(tt.charges)
			if got != tt.want {
				t.Errorf("SuspiciousCharges() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAlerts(t *testing.T) {
	alerts := []models.Alert{
		{IsRead: false, Priority: models.AlertPriorityCritical, RequiresAction: true},
		{IsRead: true, Priority: models.AlertPriorityLow},
		{IsRead: false, Priority: models.AlertPriorityMedium, RequiresAction: true, ActionTaken: true},
	}

	got := Alerts(alerts)
	want := AlertSummary{
		TotalAlerts:    3,
		UnreadAlerts:   2,
		CriticalAlerts: 1,
		RequiresAction: 1,
	}
	if got != want {
		t.Errorf("Alerts() = %+v, want %+v", got, want)
	}
}

func TestAutomationRules(t *testing.T) {
	rules := []models.AutomationRule{
		{IsActive: true, ExecutionCount: 12},
		{IsActive: false, ExecutionCount: 3},
		{IsActive: true, ExecutionCount: 0},
	}

	got := AutomationRules(rules)
	want := AutomationRuleSummary{
		TotalRules:      3,
		ActiveRules:     2,
		TotalExecutions: 15,
	}
	if got != want {
		t.Errorf("AutomationRules() = %+v, want %+v", got, want)
	}
}
