package catchup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultCadenceMonths is the typical gap between catch-ups when an
	// event carries no frequency hint.
	DefaultCadenceMonths = 18
	// DefaultJitterDays bounds the random offset applied to a prediction.
	DefaultJitterDays = 60
	// DefaultNoHistoryMonths is the horizon suggested for people never met.
	DefaultNoHistoryMonths = 6
)

var cadenceHintRe = regexp.MustCompile(`(?i)frequency:\s*(\d+)\s*months?\b`)

// MaxCadenceMonths caps a parsed cadence hint at a century; larger values
// overflow date arithmetic downstream.
const MaxCadenceMonths = 1200

// Marker is the title prefix that tags an event as a catch-up, e.g. "[Catch-Up]".
type Marker struct {
	Prefix string
}

// Title renders the catch-up title for name.
func (m Marker) Title(name string) string {
	return m.Prefix + " " + strings.TrimSpace(name)
}

// Name extracts the person name from a catch-up title. Titles without the
// prefix, or with nothing after it, are not catch-ups.
func (m Marker) Name(title string) (string, bool) {
	if m.Prefix == "" || !strings.HasPrefix(title, m.Prefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(title, m.Prefix))
	if name == "" {
		return "", false
	}
	return name, true
}

// ParseCadenceHint reads "Frequency: N months" (case-insensitive) out of a
// free-text description. Missing, unparsable or non-positive values report false.
func ParseCadenceHint(description string) (int, bool) {
	matches := cadenceHintRe.FindStringSubmatch(description)
	if len(matches) != 2 {
		return 0, false
	}
	months, err := strconv.Atoi(matches[1])
	if err != nil || months <= 0 || months > MaxCadenceMonths {
		return 0, false
	}
	return months, true
}

// FormatCadenceHint renders the description line ParseCadenceHint understands.
func FormatCadenceHint(months int) string {
	return fmt.Sprintf("Frequency: %d months", months)
}
