package catchup

import (
	"sort"
	"time"

	"calboss/internal/model"
)

// Record is the reduced catch-up history of one person.
type Record struct {
	Name          string
	LastContact   time.Time
	CadenceMonths int
	EventID       string
}

// Records maps person names (case-sensitive, not normalised) to their latest
// catch-up, remembering the order in which names were first met.
type Records struct {
	order  []string
	byName map[string]Record

	// Skipped lists ids of marked events dropped for a missing start.
	Skipped []string
}

// Get returns the record for name.
func (r Records) Get(name string) (Record, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// Names returns every tracked name in first-seen order.
func (r Records) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of tracked people.
func (r Records) Len() int {
	return len(r.order)
}

// Tracker folds catch-up events into per-person Records.
type Tracker struct {
	marker         Marker
	defaultCadence int
	loc            *time.Location
}

// NewTracker builds a Tracker. A non-positive defaultCadence falls back to
// DefaultCadenceMonths.
func NewTracker(marker Marker, defaultCadence int, loc *time.Location) *Tracker {
	if defaultCadence <= 0 {
		defaultCadence = DefaultCadenceMonths
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{marker: marker, defaultCadence: defaultCadence, loc: loc}
}

// Track keeps, per person, the cadence of the event with the latest start.
// The cadence comes only from that winning event's own description; hints
// on older events are not inherited. Events outside the marker convention
// are ignored and events with a missing start are skipped.
func (t *Tracker) Track(events []model.CalendarEvent) Records {
	recs := Records{byName: make(map[string]Record)}

	type dated struct {
		ev    model.CalendarEvent
		name  string
		start time.Time
	}

	candidates := make([]dated, 0, len(events))
	for _, ev := range events {
		name, ok := t.marker.Name(ev.Title)
		if !ok {
			continue
		}
		if ev.Start.IsZero() {
			recs.Skipped = append(recs.Skipped, ev.ID)
			continue
		}
		candidates = append(candidates, dated{ev: ev, name: name, start: ev.Start.In(t.loc)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start.Before(candidates[j].start)
	})

	for _, c := range candidates {
		prev, seen := recs.byName[c.name]
		if !seen {
			recs.order = append(recs.order, c.name)
		} else if !c.start.After(prev.LastContact) {
			continue
		}

		cadence, ok := ParseCadenceHint(c.ev.Description)
		if !ok {
			cadence = t.defaultCadence
		}
		recs.byName[c.name] = Record{
			Name:          c.name,
			LastContact:   c.start,
			CadenceMonths: cadence,
			EventID:       c.ev.ID,
		}
	}

	return recs
}
