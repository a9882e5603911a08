package summary

import (
	"math"
	"sort"
	"time"

	"glassfin-server/src/models"
)

// Average weeks per month, used to normalize weekly billing.
const weeksPerMonth = 4.33

const upcomingWindowDays = 30

type UpcomingCharge struct {
	SubscriptionID int64     `json:"subscription_id"`
	ServiceName    string    `json:"service_name"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	ChargeDate     time.Time `json:"charge_date"`
}

type SubscriptionSummary struct {
	TotalSubscriptions  int              `json:"total_subscriptions"`
	ActiveSubscriptions int              `json:"active_subscriptions"`
	MonthlyCost         float64          `json:"monthly_cost"`
	YearlyCost          float64          `json:"yearly_cost"`
	UpcomingCharges     []UpcomingCharge `json:"upcoming_charges"`
}

// Subscriptions normalizes billing frequencies into monthly and yearly cost
// totals and collects charges due within the next 30 days, today inclusive.
// Rounding to 2 decimals happens once on the final sums.
func Subscriptions(subs []models.Subscription, today time.Time) SubscriptionSummary {
	s := SubscriptionSummary{
		TotalSubscriptions: len(subs),
		UpcomingCharges:    []UpcomingCharge{},
	}

	windowStart := truncateToDay(today)
	windowEnd := windowStart.AddDate(0, 0, upcomingWindowDays)

	var monthly, yearly float64
	for _, sub := range subs {
		if !sub.IsActive {
			continue
		}
		s.ActiveSubscriptions++

		switch sub.BillingFrequency {
		case models.BillingMonthly:
			monthly += sub.Amount
			yearly += sub.Amount * 12
		case models.BillingYearly:
			yearly += sub.Amount
			monthly += sub.Amount / 12
		case models.BillingWeekly:
			monthly += sub.Amount * weeksPerMonth
			yearly += sub.Amount * 52
		}

		if sub.NextChargeDate == nil {
			continue
		}
		chargeDate := truncateToDay(*sub.NextChargeDate)
		if chargeDate.Before(windowStart) || chargeDate.After(windowEnd) {
			continue
		}
		s.UpcomingCharges = append(s.UpcomingCharges, UpcomingCharge{
			SubscriptionID: sub.ID,
			ServiceName:    sub.ServiceName,
			Amount:         sub.Amount,
			Currency:       sub.Currency,
			ChargeDate:     chargeDate,
		})
	}

	sort.SliceStable(s.UpcomingCharges, func(i, j int) bool {
		return s.UpcomingCharges[i].ChargeDate.Before(s.UpcomingCharges[j].ChargeDate)
	})

	s.MonthlyCost = round2(monthly)
	s.YearlyCost = round2(yearly)

	return s
}

// NextChargeDate projects the first charge after firstCharge for the given
// billing frequency: monthly advances one calendar month clamping at
// month-end, yearly one calendar year with the same clamp, weekly seven days.
// An unknown frequency returns firstCharge unchanged.
func NextChargeDate(firstCharge time.Time, frequency string) time.Time {
	switch frequency {
	case models.BillingMonthly:
		return addMonthsClamped(firstCharge, 1)
	case models.BillingYearly:
		return addMonthsClamped(firstCharge, 12)
	case models.BillingWeekly:
		return firstCharge.AddDate(0, 0, 7)
	default:
		return firstCharge
	}
}

// addMonthsClamped advances by whole calendar months, clamping the day of
// month to the target month's last day (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
