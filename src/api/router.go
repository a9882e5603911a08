package api

import (
	"net/http"

	"glassfin-server/src/belvo"
	"glassfin-server/src/email"
	"glassfin-server/src/handlers"
	"glassfin-server/src/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, belvoClient belvo.Client, mailer *email.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(pool, mailer))
		r.Post("/auth/login", handlers.Login(pool))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware).Group(func(r chi.Router) {
			// User
			r.Get("/users/me", handlers.GetCurrentUser(pool))
			r.Get("/users/me/profile", handlers.GetUserProfile(pool))
			r.Patch("/users/me", handlers.UpdateCurrentUser(pool))
			r.Delete("/users/me", handlers.DeleteCurrentUser(pool))

			// Bank accounts
			r.Get("/accounts", handlers.GetBankAccounts(pool))
			r.Get("/accounts/summary", handlers.GetBankAccountSummary(pool))
			r.Post("/accounts", handlers.CreateBankAccount(pool))
			r.Get("/accounts/{account_id}", handlers.GetBankAccount(pool))
			r.Patch("/accounts/{account_id}", handlers.UpdateBankAccount(pool))
			r.Delete("/accounts/{account_id}", handlers.DeleteBankAccount(pool))

			// Credit cards
			r.Get("/cards", handlers.GetCreditCards(pool))
			r.Get("/cards/summary", handlers.GetCreditCardSummary(pool))
			r.Post("/cards", handlers.CreateCreditCard(pool))
			r.Get("/cards/{card_id}", handlers.GetCreditCard(pool))
			r.Patch("/cards/{card_id}", handlers.UpdateCreditCard(pool))
			r.Delete("/cards/{card_id}", handlers.DeleteCreditCard(pool))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Get("/transactions/analytics", handlers.GetTransactionAnalytics(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransaction(pool))
			r.Patch("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))

			// Subscriptions
			r.Get("/subscriptions", handlers.GetSubscriptions(pool))
			r.Get("/subscriptions/summary", handlers.GetSubscriptionSummary(pool))
			r.Post("/subscriptions", handlers.CreateSubscription(pool))
			r.Get("/subscriptions/{subscription_id}", handlers.GetSubscription(pool))
			r.Patch("/subscriptions/{subscription_id}", handlers.UpdateSubscription(pool))
			r.Delete("/subscriptions/{subscription_id}", handlers.DeleteSubscription(pool))

			// Suspicious charges
			r.Get("/suspicious-charges", handlers.GetSuspiciousCharges(pool))
			r.Get("/suspicious-charges/summary", handlers.GetSuspiciousChargeSummary(pool))
			r.Post("/suspicious-charges", handlers.CreateSuspiciousCharge(pool, mailer))
			r.Get("/suspicious-charges/{charge_id}", handlers.GetSuspiciousCharge(pool))
			r.Patch("/suspicious-charges/{charge_id}", handlers.ResolveSuspiciousCharge(pool))

			// Automation rules
			r.Get("/automation", handlers.GetAutomationRules(pool))
			r.Get("/automation/summary", handlers.GetAutomationRuleSummary(pool))
			r.Post("/automation", handlers.CreateAutomationRule(pool))
			r.Get("/automation/{rule_id}", handlers.GetAutomationRule(pool))
			r.Patch("/automation/{rule_id}", handlers.UpdateAutomationRule(pool))
			r.Post("/automation/{rule_id}/toggle", handlers.ToggleAutomationRule(pool))
			r.Delete("/automation/{rule_id}", handlers.DeleteAutomationRule(pool))

			// Alerts
			r.Get("/alerts", handlers.GetAlerts(pool))
			r.Get("/alerts/summary", handlers.GetAlertSummary(pool))
			r.Post("/alerts", handlers.CreateAlert(pool))
			r.Post("/alerts/mark-all-read", handlers.MarkAllAlertsRead(pool))
			r.Get("/alerts/{alert_id}", handlers.GetAlert(pool))
			r.Patch("/alerts/{alert_id}", handlers.UpdateAlert(pool))
			r.Delete("/alerts/{alert_id}", handlers.DismissAlert(pool))

			// Open banking
			r.Get("/belvo/institutions", handlers.GetInstitutions(belvoClient))
			r.Post("/belvo/link", handlers.CreateBankLink(pool, belvoClient))
			r.Get("/belvo/link", handlers.GetBankLink(pool, belvoClient))
			r.Delete("/belvo/link", handlers.DeleteBankLink(pool, belvoClient))
			r.Post("/belvo/sync/accounts", handlers.SyncAccounts(pool, belvoClient))
			r.Post("/belvo/sync/transactions", handlers.SyncTransactions(pool, belvoClient))
			r.Post("/belvo/sync/all", handlers.SyncAll(pool, belvoClient))
		})
	})

	return r
}
