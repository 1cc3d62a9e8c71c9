package catchup

import (
	"math/rand"
	"sync"
	"time"

	"calboss/pkg/datemath"
)

// RandSource is the jitter source. *rand.Rand satisfies it; tests pass a
// seeded one.
type RandSource interface {
	Intn(n int) int
}

// Suggestion is the predicted next contact date for one person.
type Suggestion struct {
	Name          string
	HasHistory    bool
	LastContact   time.Time // zero when HasHistory is false
	CadenceMonths int       // zero when HasHistory is false
	JitterDays    int
	SuggestedDate time.Time
}

// SuggesterConfig tunes the prediction.
type SuggesterConfig struct {
	JitterDays      int
	NoHistoryMonths int
	Location        *time.Location
}

// Suggester predicts next catch-up dates. It is safe for concurrent use.
type Suggester struct {
	mu  sync.Mutex
	rnd RandSource
	cfg SuggesterConfig
}

// NewSuggester builds a Suggester. A nil rnd is replaced by a time-seeded
// generator; a nil location means UTC and a non-positive NoHistoryMonths
// means DefaultNoHistoryMonths.
func NewSuggester(rnd RandSource, cfg SuggesterConfig) *Suggester {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.JitterDays < 0 {
		cfg.JitterDays = 0
	}
	if cfg.NoHistoryMonths <= 0 {
		cfg.NoHistoryMonths = DefaultNoHistoryMonths
	}
	return &Suggester{rnd: rnd, cfg: cfg}
}

// Suggest predicts a date for each name. With no names it covers every
// tracked person in the records' order. A tracked person gets
// last contact + cadence months (day clamped) + a fresh jitter drawn from
// [-JitterDays, +JitterDays]; anyone else gets now + NoHistoryMonths.
func (s *Suggester) Suggest(now time.Time, names []string, records Records) []Suggestion {
	if len(names) == 0 {
		names = records.Names()
	}

	loc := s.cfg.Location
	today := startOfDay(now, loc)
	out := make([]Suggestion, 0, len(names))

	for _, name := range names {
		rec, ok := records.Get(name)
		if !ok {
			out = append(out, Suggestion{
				Name:          name,
				SuggestedDate: datemath.AddMonths(today, s.cfg.NoHistoryMonths),
			})
			continue
		}

		jitter := s.jitter()
		target := datemath.AddMonths(startOfDay(rec.LastContact, loc), rec.CadenceMonths)
		out = append(out, Suggestion{
			Name:          name,
			HasHistory:    true,
			LastContact:   rec.LastContact,
			CadenceMonths: rec.CadenceMonths,
			JitterDays:    jitter,
			SuggestedDate: target.AddDate(0, 0, jitter),
		})
	}

	return out
}

func (s *Suggester) jitter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(2*s.cfg.JitterDays+1) - s.cfg.JitterDays
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
