// scripts/gcal-auth/main.go
//
// Run this once to authorize Google Calendar access. The token is written to
// the store configured under google_calendar (token.json or sqlite).
//
// Usage:
//   go run ./scripts/gcal-auth [config.yaml]

package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"calboss/config"
	"calboss/pkg/gcalendar"
	"calboss/pkg/log"
	"calboss/pkg/tokenstore"
)

func main() {
	var (
		cfg *config.Config
		err error
	)
	if len(os.Args) > 1 {
		cfg, err = config.LoadFile(os.Args[1])
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := log.Init(log.ZapConfig{Level: "info", Mode: "debug", Encoding: "console", ColorEnabled: true})
	gc := cfg.GoogleCalendar

	data, err := os.ReadFile(gc.CredentialsPath)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read credentials file %q: %v", gc.CredentialsPath, err)
	}

	oauthCfg, err := gcalendar.OAuthConfigFromJSON(data)
	if err != nil {
		logger.Fatalf(ctx, "Failed to parse credentials: %v. %q must be an OAuth Desktop App credentials file.", err, gc.CredentialsPath)
	}

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("=================================================================")
	fmt.Println("STEP 1: Open this URL in a browser and sign in with your Google account:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		logger.Fatalf(ctx, "Failed to read authorization code: %v", err)
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Fatalf(ctx, "Failed to exchange authorization code: %v", err)
	}

	var store tokenstore.Store
	if gc.TokenStore == config.TokenStoreSQLite {
		s, err := tokenstore.OpenSQLite(ctx, gc.TokenPath)
		if err != nil {
			logger.Fatalf(ctx, "Failed to open token database: %v", err)
		}
		defer s.Close()
		store = s
	} else {
		store = tokenstore.NewFileStore(gc.TokenPath)
	}

	if err := store.Save(ctx, gc.Account, tok); err != nil {
		logger.Fatalf(ctx, "Failed to save token: %v", err)
	}

	logger.Infof(ctx, "Token for account %q saved to %s (%s)", gc.Account, gc.TokenPath, gc.TokenStore)
	fmt.Println("Restart CalBoss to pick up the new token.")
}
