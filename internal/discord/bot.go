package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hunterjsb/scorebot/internal/config"
	"github.com/hunterjsb/scorebot/internal/espn"
	"github.com/hunterjsb/scorebot/internal/llm"
	"github.com/hunterjsb/scorebot/internal/pipeline"
	"github.com/hunterjsb/scorebot/internal/scoreboard"
	"github.com/jonboulle/clockwork"
)

// Bot is the Discord gateway binding: it owns the session, routes prefix
// commands and interactions, and feeds replies to pending selections.
type Bot struct {
	Session *discordgo.Session
	Config  *config.Config

	log       *slog.Logger
	clock     clockwork.Clock
	started   time.Time
	ownerID   string
	transport messenger
	waiter    *pipeline.Waiter
	commands  []*Command

	chat       llm.Provider
	claude     llm.Provider
	scoreboard *scoreboard.Workflow

	slashCommands []*discordgo.ApplicationCommand

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBot creates a Bot from cfg. Nothing connects until Start.
func NewBot(cfg *config.Config, log *slog.Logger, clock clockwork.Clock) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		Session:   session,
		Config:    cfg,
		log:       log,
		clock:     clock,
		started:   clock.Now(),
		transport: &channelTransport{session: session},
		waiter:    pipeline.NewWaiter(clock),
		ctx:       ctx,
		cancel:    cancel,
	}

	bot.chat = llm.NewOpenAI(log, llm.OpenAIOptions{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	})
	bot.claude = llm.NewAnthropic(log, llm.AnthropicOptions{
		APIKey:    cfg.Anthropic.APIKey,
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		Suffix:    llm.PromptSuffix,
	})

	espnClient := espn.NewClient(&http.Client{Timeout: 15 * time.Second}, cfg.Scores.BaseURL)
	bot.scoreboard = scoreboard.NewWorkflow(log, bot.transport, bot.waiter, espnClient,
		scoreboard.NewRenderer(clock), cfg.Scores.SelectionTimeout)

	bot.commands = bot.commandTable()
	return bot, nil
}

// Start opens the gateway connection and registers the slash commands
func (b *Bot) Start() error {
	b.Session.AddHandler(b.onReady)
	b.Session.AddHandler(b.onMessageCreate)
	b.Session.AddHandler(b.interactionHandler)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}

	app, err := b.Session.Application("@me")
	if err != nil {
		b.log.Warn("could not fetch application owner, owner-only commands are disabled", "error", err)
	} else if app.Owner != nil {
		b.ownerID = app.Owner.ID
	}

	registered, err := b.registerCommands()
	if err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}
	b.slashCommands = registered

	b.log.Info("bot is running", "prefix", b.Config.CommandPrefix, "slash_commands", len(registered))
	return nil
}

// Stop removes the registered slash commands, cancels running workflows and
// closes the gateway connection.
func (b *Bot) Stop() error {
	b.log.Info("removing commands")
	for _, cmd := range b.slashCommands {
		err := b.Session.ApplicationCommandDelete(b.Session.State.User.ID, b.Config.GuildID, cmd.ID)
		if err != nil {
			b.log.Error("error removing command", "command", cmd.Name, "error", err)
		}
	}
	b.cancel()
	return b.Session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("logged in", "user", r.User.Username, "id", r.User.ID, "guilds", len(r.Guilds))

	if err := s.UpdateWatchStatus(0, fmt.Sprintf("%d servers", len(r.Guilds))); err != nil {
		b.log.Warn("error updating presence", "error", err)
	}
}

// SetupCloseHandler catches SIGINT and SIGTERM, runs cleanup and exits
func SetupCloseHandler(log *slog.Logger, cleanup func() error) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		log.Info("shutting down", "signal", sig.String())
		if err := cleanup(); err != nil {
			log.Error("error during cleanup", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
}
