package scoreboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/hunterjsb/scorebot/internal/espn"
	"github.com/hunterjsb/scorebot/internal/pipeline"
)

const (
	MenuTitle     = "What sport?"
	TimeoutNotice = "Scoreboard selection timed out."
)

// ScoreboardClient fetches a league scoreboard
type ScoreboardClient interface {
	Scoreboard(ctx context.Context, sport, league string) (*espn.Scoreboard, error)
}

// Workflow is the interactive scoreboard command: pick a league, fetch its
// scoreboard and post one message per game.
type Workflow struct {
	pipeline *pipeline.Pipeline[League, *espn.Scoreboard]
}

// NewWorkflow wires the league menu, the ESPN client and the renderer
func NewWorkflow(log *slog.Logger, transport pipeline.Transport, waiter *pipeline.Waiter, client ScoreboardClient, renderer *Renderer, timeout time.Duration) *Workflow {
	return &Workflow{
		pipeline: &pipeline.Pipeline[League, *espn.Scoreboard]{
			Log:       log.With("workflow", "scoreboard"),
			Transport: transport,
			Waiter:    waiter,
			Menu:      Leagues(),
			Fetch: func(ctx context.Context, l League) (*espn.Scoreboard, error) {
				return client.Scoreboard(ctx, l.Sport, l.League)
			},
			Render:        renderer.Render,
			Title:         MenuTitle,
			Timeout:       timeout,
			TimeoutNotice: TimeoutNotice,
		},
	}
}

// Run executes the workflow for issuerID in channelID. All output goes to the channel.
func (w *Workflow) Run(ctx context.Context, issuerID, channelID string) {
	w.pipeline.Run(ctx, issuerID, channelID)
}
