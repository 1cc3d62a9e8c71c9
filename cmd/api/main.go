package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"calboss/config"
	_ "calboss/docs" // Swagger docs
	"calboss/internal/agenda"
	"calboss/internal/catchup"
	"calboss/internal/digest"
	"calboss/internal/httpserver"
	"calboss/internal/middleware"
	scheduleHTTP "calboss/internal/schedule/delivery/http"
	"calboss/internal/schedule/usecase"
	"calboss/pkg/datemath"
	"calboss/pkg/log"
	"calboss/pkg/telegram"
)

// @title       CalBoss API
// @description Personal calendar assistant: agenda views, birthdays and catch-up planning over Google Calendar or CalDAV.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting CalBoss...")
	logger.Infof(ctx, "Environment: %s, provider: %s, timezone: %s", cfg.Environment.Name, cfg.Calendar.Provider, cfg.Calendar.Timezone)

	// 3. Calendar store
	dateMathParser, err := datemath.NewParser(cfg.Calendar.Timezone)
	if err != nil {
		logger.Fatalf(ctx, "Invalid timezone %q: %v", cfg.Calendar.Timezone, err)
	}
	loc := dateMathParser.Location()

	store, closeStore, err := newCalendarStore(ctx, logger, cfg, loc)
	if err != nil {
		logger.Fatalf(ctx, "Calendar store: %v", err)
	}
	defer closeStore()

	// 4. Schedule use case
	suggester := catchup.NewSuggester(nil, catchup.SuggesterConfig{
		JitterDays:      cfg.Schedule.JitterDays,
		NoHistoryMonths: cfg.Schedule.NoHistoryMonths,
		Location:        loc,
	})
	scheduleUC := usecase.New(logger, store, dateMathParser, suggester, usecase.Config{
		WeekDays:             cfg.Schedule.WeekDays,
		HistoryYears:         cfg.Schedule.HistoryYears,
		DefaultCadenceMonths: cfg.Schedule.DefaultCadenceMonths,
		MaxResults:           cfg.Schedule.MaxResults,
		Birthday:             agenda.BirthdayMarker{Prefix: cfg.Schedule.BirthdayPrefix, Suffix: cfg.Schedule.BirthdaySuffix},
		CatchUp:              catchup.Marker{Prefix: cfg.Schedule.CatchUpMarker},
	})

	// 5. Morning digest (optional)
	digestDone := make(chan struct{})
	if cfg.Digest.Enabled {
		job, err := digest.New(logger, scheduleUC, telegram.NewBot(cfg.Telegram.BotToken), digest.Config{
			Spec:     cfg.Digest.Cron,
			ChatID:   cfg.Telegram.ChatID,
			Location: loc,
		})
		if err != nil {
			logger.Fatalf(ctx, "Digest: %v", err)
		}
		go func() {
			defer close(digestDone)
			if err := job.Start(ctx); err != nil {
				logger.Errorf(ctx, "Digest: %v", err)
			}
		}()
	} else {
		close(digestDone)
		logger.Info(ctx, "Digest disabled")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      middleware.New(logger, cfg.RateLimit.RequestsPerMin),
		ScheduleHandler: scheduleHTTP.New(logger, scheduleUC),
		CalendarStore:   store,
		Backend:         cfg.Calendar.Provider,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run until SIGINT/SIGTERM
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}
	stop()
	<-digestDone

	logger.Info(context.Background(), "Server stopped gracefully")
}
