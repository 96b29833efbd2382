package scoreboard

import (
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/hunterjsb/scorebot/internal/espn"
)

// Game lifecycle states reported by ESPN
const (
	StatePre  = "pre"
	StateIn   = "in"
	StatePost = "post"
)

var eastern = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("scoreboard: missing America/New_York zone: " + err.Error())
	}
	return loc
})

// Eastern returns US Eastern time, the reference zone for scoreboard dates
func Eastern() *time.Location {
	return eastern()
}

// eventDateLayouts are tried in order. ESPN usually omits seconds.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseEventDate(s string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StatusLabel derives the status line of a game from its competition state.
func StatusLabel(status espn.StatusType, eventDate *string) string {
	switch status.State {
	case StatePre:
		return orDefault(status.ShortDetail, "Scheduled")
	case StateIn:
		return orDefault(status.ShortDetail, "In Progress")
	case StatePost:
		if eventDate == nil {
			return "Final"
		}
		t, ok := parseEventDate(*eventDate)
		if !ok {
			return "Final"
		}
		return "Final - " + t.In(Eastern()).Format("01/02 03:04 PM")
	default:
		return orDefault(status.ShortDetail, "Unknown")
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
