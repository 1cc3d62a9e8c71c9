package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"calboss/internal/schedule"
	"calboss/pkg/log"
)

// Sender delivers the digest text. *telegram.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Config tunes the digest job.
type Config struct {
	Spec     string // standard 5-field cron expression, e.g. "0 7 * * *"
	ChatID   int64
	Location *time.Location
	// CatchUpDays is how far ahead suggested catch-ups are listed.
	CatchUpDays int
}

// Digest sends a morning summary on a cron schedule.
type Digest struct {
	l      log.Logger
	uc     schedule.UseCase
	sender Sender
	cfg    Config
	cron   *cron.Cron
}

// New validates the cron spec and builds the job. It does not start it.
func New(l log.Logger, uc schedule.UseCase, sender Sender, cfg Config) (*Digest, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CatchUpDays <= 0 {
		cfg.CatchUpDays = 7
	}
	if _, err := cron.ParseStandard(cfg.Spec); err != nil {
		return nil, fmt.Errorf("digest: invalid cron %q: %w", cfg.Spec, err)
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("digest: chat id is required")
	}

	return &Digest{
		l:      l,
		uc:     uc,
		sender: sender,
		cfg:    cfg,
		cron:   cron.New(cron.WithLocation(cfg.Location)),
	}, nil
}

// Start schedules the job and blocks until ctx is done, then waits for a
// running send to finish.
func (d *Digest) Start(ctx context.Context) error {
	if _, err := d.cron.AddFunc(d.cfg.Spec, func() {
		if err := d.Send(context.Background()); err != nil {
			d.l.Errorf(context.Background(), "digest.Send: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("digest: add job: %w", err)
	}

	d.cron.Start()
	d.l.Infof(ctx, "Digest scheduled (%s, %s)", d.cfg.Spec, d.cfg.Location)

	<-ctx.Done()
	<-d.cron.Stop().Done()
	d.l.Info(context.Background(), "Digest stopped")
	return nil
}

// Send composes the digest and delivers it.
func (d *Digest) Send(ctx context.Context) error {
	text, err := d.Compose(ctx)
	if err != nil {
		return err
	}
	if err := d.sender.SendMessage(ctx, d.cfg.ChatID, text); err != nil {
		return fmt.Errorf("digest: send: %w", err)
	}
	d.l.Infof(ctx, "digest.Send: delivered to %d", d.cfg.ChatID)
	return nil
}
