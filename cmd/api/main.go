package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/GoSim-25-26J-441/go-identity-backend/config"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/service"
)

const identityScope = "https://www.googleapis.com/auth/identitytoolkit"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ts, err := tokenSource(ctx, cfg.Identity.CredentialsPath)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	transport := service.NewHTTPTransport(cfg.Identity.BaseURL, cfg.Identity.ProjectID, ts, cfg.Identity.RequestsPerSec)
	accounts := service.NewAccountService(cfg.Identity.ProjectID, transport)

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "identity-backend",
		Version:     cfg.App.Version,
		DB:          db,
		Accounts:    accounts,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}

// tokenSource builds OAuth2 credentials for the identity API from a
// service-account file when configured, falling back to application
// default credentials.
func tokenSource(ctx context.Context, credentialsPath string) (oauth2.TokenSource, error) {
	if credentialsPath == "" {
		return google.DefaultTokenSource(ctx, identityScope)
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, identityScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds.TokenSource, nil
}
