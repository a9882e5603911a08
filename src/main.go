package main

import (
	"context"
	"log"
	"net/http"

	"glassfin-server/src/api"
	"glassfin-server/src/belvo"
	"glassfin-server/src/config"
	"glassfin-server/src/db"
	"glassfin-server/src/email"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	db.InitCache()

	belvoClient := belvo.NewClient(cfg.BelvoSecretID, cfg.BelvoSecretPassword, cfg.BelvoEnvironment)
	mailer := email.NewClient(cfg.BrevoAPIKey, cfg.BrevoFromEmail, cfg.BrevoFromName)

	// Router
	router := api.NewRouter(pool, belvoClient, mailer)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
