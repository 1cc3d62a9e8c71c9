package usecase

import (
	"time"

	"calboss/internal/agenda"
	"calboss/internal/catchup"
	"calboss/internal/schedule"
	"calboss/internal/schedule/repository"
	"calboss/pkg/datemath"
	pkgLog "calboss/pkg/log"
)

// Config carries the scheduling conventions.
type Config struct {
	WeekDays             int
	HistoryYears         int
	DefaultCadenceMonths int
	MaxResults           int64
	Birthday             agenda.BirthdayMarker
	CatchUp              catchup.Marker
	// Clock defaults to time.Now.
	Clock func() time.Time
}

var _ schedule.UseCase = (*implUseCase)(nil)

type implUseCase struct {
	l         pkgLog.Logger
	store     repository.CalendarStore
	dateMath  *datemath.Parser
	tracker   *catchup.Tracker
	suggester *catchup.Suggester
	cfg       Config
}

// New creates a new schedule UseCase instance.
func New(
	l pkgLog.Logger,
	store repository.CalendarStore,
	dateMath *datemath.Parser,
	suggester *catchup.Suggester,
	cfg Config,
) *implUseCase {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.WeekDays <= 0 {
		cfg.WeekDays = 7
	}
	if cfg.HistoryYears <= 0 {
		cfg.HistoryYears = 10
	}
	return &implUseCase{
		l:         l,
		store:     store,
		dateMath:  dateMath,
		tracker:   catchup.NewTracker(cfg.CatchUp, cfg.DefaultCadenceMonths, dateMath.Location()),
		suggester: suggester,
		cfg:       cfg,
	}
}
