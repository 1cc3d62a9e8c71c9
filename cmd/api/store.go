package main

import (
	"context"
	"fmt"
	"time"

	"calboss/config"
	"calboss/internal/schedule/repository"
	caldavRepo "calboss/internal/schedule/repository/caldav"
	gcalRepo "calboss/internal/schedule/repository/gcal"
	"calboss/pkg/gcalendar"
	"calboss/pkg/log"
	"calboss/pkg/tokenstore"
)

// newCalendarStore builds the configured Calendar Store. The returned close
// func releases the token store, if any.
func newCalendarStore(ctx context.Context, l log.Logger, cfg *config.Config, loc *time.Location) (repository.CalendarStore, func(), error) {
	noop := func() {}

	switch cfg.Calendar.Provider {
	case config.ProviderCalDAV:
		client, err := caldavRepo.Dial(caldavRepo.Options{
			URL:      cfg.CalDAV.URL,
			Username: cfg.CalDAV.Username,
			Password: cfg.CalDAV.Password,
		})
		if err != nil {
			return nil, noop, err
		}
		l.Infof(ctx, "CalDAV calendar at %s%s", cfg.CalDAV.URL, cfg.CalDAV.CalendarPath)
		return caldavRepo.New(l, client, cfg.CalDAV.CalendarPath, loc), noop, nil

	case config.ProviderGoogle:
		store, closeFn, err := openTokenStore(ctx, cfg.GoogleCalendar)
		if err != nil {
			return nil, noop, err
		}
		client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath,
			gcalendar.WithTokenStore(store, cfg.GoogleCalendar.Account),
			gcalendar.WithRateLimit(cfg.GoogleCalendar.RequestsPerSecond),
		)
		if err != nil {
			closeFn()
			return nil, noop, fmt.Errorf("%w (run scripts/gcal-auth to create a token)", err)
		}
		l.Infof(ctx, "Google Calendar %q initialized", cfg.GoogleCalendar.CalendarID)
		return gcalRepo.New(l, client, cfg.GoogleCalendar.CalendarID, loc), closeFn, nil
	}

	return nil, noop, fmt.Errorf("unknown calendar provider %q", cfg.Calendar.Provider)
}

func openTokenStore(ctx context.Context, cfg config.GoogleCalendarConfig) (tokenstore.Store, func(), error) {
	if cfg.TokenStore == config.TokenStoreSQLite {
		s, err := tokenstore.OpenSQLite(ctx, cfg.TokenPath)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return tokenstore.NewFileStore(cfg.TokenPath), func() {}, nil
}
