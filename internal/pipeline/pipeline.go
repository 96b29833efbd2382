// Package pipeline implements the prompted selection workflow: show a menu,
// wait for the issuer to pick an option, fetch data for it, then render and
// send the result as a sequence of chunks.
//
// Each Run is self-contained. The only suspension points are the selection
// wait and the fetch; the gateway runs every handler on its own goroutine so
// a waiting workflow never blocks other commands.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hunterjsb/scorebot/internal/metrics"
)

// Transport sends text to a channel
type Transport interface {
	SendText(ctx context.Context, channelID, text string) error
}

// Typer is implemented by transports that can show a typing indicator
type Typer interface {
	Typing(ctx context.Context, channelID string) error
}

// Fetcher loads the data for a selected option
type Fetcher[P, R any] func(ctx context.Context, params P) (R, error)

// Renderer turns a fetch result into chunks. ok is false when the fetch
// produced no usable data.
type Renderer[R any] func(result R, ok bool, displayName string) []string

// Selection is the state of one pending prompt
type Selection struct {
	IssuerID  string
	ChannelID string
	Deadline  time.Time
}

// Qualifies reports whether msg comes from the issuer, in the same channel,
// with text naming a valid token.
func (s Selection) Qualifies(msg Message, valid func(token string) bool) bool {
	return msg.AuthorID == s.IssuerID &&
		msg.ChannelID == s.ChannelID &&
		valid(strings.TrimSpace(msg.Content))
}

// RunSelection sends the rendered menu to channelID and waits up to timeout
// for the issuer to answer with one of its tokens.
func RunSelection[P any](ctx context.Context, t Transport, w *Waiter, menu *Menu[P], title, issuerID, channelID string, timeout time.Duration) (Option[P], error) {
	var zero Option[P]

	if err := t.SendText(ctx, channelID, menu.Render(title)); err != nil {
		return zero, fmt.Errorf("error sending menu: %w", err)
	}

	sel := Selection{
		IssuerID:  issuerID,
		ChannelID: channelID,
		Deadline:  w.Clock().Now().Add(timeout),
	}
	msg, err := w.WaitUntil(ctx, func(m Message) bool { return sel.Qualifies(m, menu.Has) }, sel.Deadline)
	if err != nil {
		return zero, err
	}

	opt, _ := menu.Lookup(strings.TrimSpace(msg.Content))
	return opt, nil
}

// Emit sends chunks to channelID one after another, in order. A failed send
// does not stop the remaining chunks; all failures are returned joined.
func Emit(ctx context.Context, t Transport, channelID string, chunks []string) error {
	var errs []error
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := t.SendText(ctx, channelID, chunk); err != nil {
			metrics.ChunksSentTotal.WithLabelValues("error").Inc()
			errs = append(errs, fmt.Errorf("chunk %d: %w", i, err))
			continue
		}
		metrics.ChunksSentTotal.WithLabelValues("ok").Inc()
	}
	return errors.Join(errs...)
}

// Pipeline wires a menu, a fetcher and a renderer into one workflow.
type Pipeline[P, R any] struct {
	Log       *slog.Logger
	Transport Transport
	Waiter    *Waiter
	Menu      *Menu[P]
	Fetch     Fetcher[P, R]
	Render    Renderer[R]

	// Title heads the menu, e.g. "What sport?"
	Title string
	// Timeout bounds the selection wait
	Timeout time.Duration
	// TimeoutNotice is sent when the issuer does not answer in time
	TimeoutNotice string
}

// Run performs the whole workflow. It returns nothing: every outcome,
// including failures, is reported to the channel or the log.
func (p *Pipeline[P, R]) Run(ctx context.Context, issuerID, channelID string) {
	log := p.Log.With("workflow_id", uuid.NewString(), "issuer", issuerID, "channel", channelID)

	option, err := RunSelection(ctx, p.Transport, p.Waiter, p.Menu, p.Title, issuerID, channelID, p.Timeout)
	switch {
	case errors.Is(err, ErrSelectionTimeout):
		metrics.SelectionsTotal.WithLabelValues("timeout").Inc()
		log.Debug("selection timed out", "timeout", p.Timeout)
		if err := p.Transport.SendText(ctx, channelID, p.TimeoutNotice); err != nil {
			log.Error("failed to send timeout notice", "error", err)
		}
		return
	case err != nil:
		metrics.SelectionsTotal.WithLabelValues("error").Inc()
		log.Error("selection failed", "error", err)
		return
	}
	metrics.SelectionsTotal.WithLabelValues("matched").Inc()
	log = log.With("option", option.DisplayName)

	if typer, ok := p.Transport.(Typer); ok {
		if err := typer.Typing(ctx, channelID); err != nil {
			log.Debug("failed to send typing indicator", "error", err)
		}
	}

	result, ok := p.fetch(ctx, log, option.Params)
	chunks := p.Render(result, ok, option.DisplayName)

	if err := Emit(ctx, p.Transport, channelID, chunks); err != nil {
		log.Error("failed to send some chunks", "chunks", len(chunks), "error", err)
		return
	}
	log.Info("workflow completed", "chunks", len(chunks), "fetched", ok)
}

// fetch runs the fetcher and converts any error into the absence signal
func (p *Pipeline[P, R]) fetch(ctx context.Context, log *slog.Logger, params P) (R, bool) {
	start := time.Now()
	result, err := p.Fetch(ctx, params)
	duration := time.Since(start)

	if err != nil {
		metrics.FetchDuration.WithLabelValues("error").Observe(duration.Seconds())
		log.Warn("fetch failed", "duration", duration, "error", err)
		var zero R
		return zero, false
	}
	metrics.FetchDuration.WithLabelValues("ok").Observe(duration.Seconds())
	log.Debug("fetch completed", "duration", duration)
	return result, true
}
