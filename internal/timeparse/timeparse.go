// Package timeparse turns flexible textual booked-slot times into a
// canonical clock value.
//
// Parsing is an ordered chain of strategies, each tried in sequence until
// one succeeds: a single time ("09:00", optionally with seconds), then the
// start component of a range ("09:00-09:30", whitespace tolerant). An
// unrecognized shape is reported as not-ok, never as an error.
package timeparse

import (
	"strconv"
	"strings"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

type strategy func(string) (models.TimeOfDay, bool)

var strategies = []strategy{
	parseSingle,
	parseRangeStart,
}

// Parse parses a booked-slot time. The second return value is false when no
// strategy recognizes the text or the clock value is out of range.
func Parse(text string) (models.TimeOfDay, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.TimeOfDay{}, false
	}

	for _, parse := range strategies {
		if tod, ok := parse(text); ok {
			return tod, true
		}
	}
	return models.TimeOfDay{}, false
}

// parseSingle parses "HH:MM" or "HH:MM:SS".
func parseSingle(text string) (models.TimeOfDay, bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return models.TimeOfDay{}, false
	}

	var tod models.TimeOfDay
	var err error

	if tod.Hour, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return models.TimeOfDay{}, false
	}
	if tod.Minute, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return models.TimeOfDay{}, false
	}
	if len(parts) == 3 {
		if tod.Second, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return models.TimeOfDay{}, false
		}
	}

	if !tod.Valid() {
		return models.TimeOfDay{}, false
	}
	return tod, true
}

// parseRangeStart parses "HH:MM-HH:MM" or "HH:MM - HH:MM" and returns the
// start component.
func parseRangeStart(text string) (models.TimeOfDay, bool) {
	start, _, found := strings.Cut(text, "-")
	if !found {
		return models.TimeOfDay{}, false
	}
	return parseSingle(strings.TrimSpace(start))
}

// SplitClock is the last-resort fallback used when Parse fails: it splits on
// ':' and takes up to hour, minute and second components. Missing minute and
// second default to zero.
func SplitClock(text string) (models.TimeOfDay, bool) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, ":") {
		return models.TimeOfDay{}, false
	}

	parts := strings.SplitN(text, ":", 3)
	var tod models.TimeOfDay
	var err error

	if tod.Hour, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return models.TimeOfDay{}, false
	}
	if len(parts) > 1 {
		if tod.Minute, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return models.TimeOfDay{}, false
		}
	}
	if len(parts) > 2 {
		if tod.Second, err = strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			return models.TimeOfDay{}, false
		}
	}

	if !tod.Valid() {
		return models.TimeOfDay{}, false
	}
	return tod, true
}
