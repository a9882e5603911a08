package summary

import "glassfin-server/src/models"

type SuspiciousChargeSummary struct {
	TotalSuspicious     int     `json:"total_suspicious"`
	PendingReview       int     `json:"pending_review"`
	ConfirmedFraudulent int     `json:"confirmed_fraudulent"`
	ConfirmedLegitimate int     `json:"confirmed_legitimate"`
	TotalAmountAtRisk   float64 `json:"total_amount_at_risk"`
}

// SuspiciousCharges counts charges by status. Amount at risk covers pending
// and confirmed-fraudulent charges; legitimate and dismissed ones carry no
// risk.
func SuspiciousCharges(charges []models.SuspiciousCharge) SuspiciousChargeSummary {
	s := SuspiciousChargeSummary{TotalSuspicious: len(charges)}
	for _, c := range charges {
		switch c.Status {
		case models.ChargeStatusPending:
			s.PendingReview++
			s.TotalAmountAtRisk += c.Amount
		case models.ChargeStatusConfirmedFraudulent:
			s.ConfirmedFraudulent++
			s.TotalAmountAtRisk += c.Amount
		case models.ChargeStatusConfirmedLegitimate:
			s.ConfirmedLegitimate++
		}
	}
	return s
}
