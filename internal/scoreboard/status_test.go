package scoreboard

import (
	"testing"

	"github.com/hunterjsb/scorebot/internal/espn"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name     string
		status   espn.StatusType
		date     *string
		expected string
	}{
		{"pre with detail", espn.StatusType{State: "pre", ShortDetail: "1/5 - 1:00 PM EST"}, nil, "1/5 - 1:00 PM EST"},
		{"pre without detail", espn.StatusType{State: "pre"}, nil, "Scheduled"},
		{"in with detail", espn.StatusType{State: "in", ShortDetail: "Q3 4:12"}, nil, "Q3 4:12"},
		{"in without detail", espn.StatusType{State: "in"}, nil, "In Progress"},
		{"post standard time", espn.StatusType{State: "post"}, strPtr("2025-01-05T20:00:00Z"), "Final - 01/05 03:00 PM"},
		{"post without seconds", espn.StatusType{State: "post"}, strPtr("2025-01-05T20:00Z"), "Final - 01/05 03:00 PM"},
		{"post daylight time", espn.StatusType{State: "post"}, strPtr("2025-07-04T23:10Z"), "Final - 07/04 07:10 PM"},
		{"post crossing midnight", espn.StatusType{State: "post"}, strPtr("2025-01-06T01:30Z"), "Final - 01/05 08:30 PM"},
		{"post unparseable date", espn.StatusType{State: "post", ShortDetail: "Final/OT"}, strPtr("yesterday"), "Final"},
		{"post without date", espn.StatusType{State: "post"}, nil, "Final"},
		{"unknown with detail", espn.StatusType{State: "delayed", ShortDetail: "Rain Delay"}, nil, "Rain Delay"},
		{"unknown without detail", espn.StatusType{State: ""}, nil, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusLabel(tt.status, tt.date))
		})
	}
}
