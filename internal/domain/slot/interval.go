package slot

import (
	"fmt"
	"strings"
	"time"
)

// IntervalSeparator is the en dash used by the interval catalog.
const IntervalSeparator = "–"

var intervalSeparators = []string{IntervalSeparator, "—", " - ", "-", "~"}

// NormalizeInterval rewrites an "HH:MM<sep>HH:MM" label into the canonical
// "HH:MM–HH:MM" form so labels coming from different sources compare equal.
func NormalizeInterval(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, sep := range intervalSeparators {
		parts := strings.Split(raw, sep)
		if len(parts) != 2 {
			continue
		}
		start, err := parseClock(parts[0])
		if err != nil {
			return "", err
		}
		end, err := parseClock(parts[1])
		if err != nil {
			return "", err
		}
		if !end.After(start) {
			return "", fmt.Errorf("%w: %q ends before it starts", ErrInvalidInterval, raw)
		}
		return FormatInterval(start, end), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInterval, raw)
}

func FormatInterval(start, end time.Time) string {
	return start.Format("15:04") + IntervalSeparator + end.Format("15:04")
}

func parseClock(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04", "15:04:05", "3:04PM", "3:04 PM"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad clock %q", ErrInvalidInterval, raw)
}

// IntervalDef is one entry of the resource-independent interval catalog.
type IntervalDef struct {
	ID    int64
	Start string
	End   string
}

func (d IntervalDef) Label() (string, error) {
	return NormalizeInterval(d.Start + IntervalSeparator + d.End)
}
