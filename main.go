package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/hunterjsb/scorebot/internal/config"
	"github.com/hunterjsb/scorebot/internal/discord"
	"github.com/hunterjsb/scorebot/internal/dotenv"
	"github.com/hunterjsb/scorebot/internal/espn"
	"github.com/hunterjsb/scorebot/internal/format"
	"github.com/hunterjsb/scorebot/internal/logging"
	"github.com/hunterjsb/scorebot/internal/metrics"
	"github.com/hunterjsb/scorebot/internal/scoreboard"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	mode := pflag.String("mode", "discord", "run mode: discord or scores")
	envFile := pflag.String("env-file", dotenv.DefaultFile, "environment file to load before reading configuration")
	league := pflag.String("league", "NFL", "league to print in scores mode (name or menu number)")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("scorebot %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if loaded, err := dotenv.LoadFirst(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading %s: %v\n", *envFile, err)
	} else if loaded == "" {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables from system")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	log := logging.New(os.Stdout, level)

	switch *mode {
	case "discord":
		err = runDiscordBot(cfg, log)
	case "scores":
		err = runScores(cfg, log, *league)
	default:
		err = fmt.Errorf("unknown mode %q, use --mode discord or --mode scores", *mode)
	}
	if err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func runDiscordBot(cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	bot, err := discord.NewBot(cfg, log, clockwork.NewRealClock())
	if err != nil {
		return fmt.Errorf("error creating bot: %w", err)
	}

	log.Info("starting Discord bot", "version", version)
	if err := bot.Start(); err != nil {
		return fmt.Errorf("error starting bot: %w", err)
	}

	discord.SetupCloseHandler(log, bot.Stop)

	log.Info("bot is now running, press CTRL-C to exit")
	select {}
}

func serveMetrics(addr string, log *slog.Logger) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("failed to start prometheus metrics server listener", "error", err)
		os.Exit(1)
	}
	log.Info("prometheus metrics server listening", "address", listener.Addr().String())
	http.Handle("/metrics", promhttp.Handler())
	if err := http.Serve(listener, nil); err != nil {
		log.Error("failed to start prometheus metrics server", "error", err)
		os.Exit(1)
	}
}

// runScores prints one league's scoreboard as a table followed by the
// chunks the bot would send.
func runScores(cfg *config.Config, log *slog.Logger, name string) error {
	opt, ok := scoreboard.FindLeague(name)
	if !ok {
		return fmt.Errorf("unknown league %q", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := espn.NewClient(&http.Client{Timeout: 15 * time.Second}, cfg.Scores.BaseURL)
	board, err := client.Scoreboard(ctx, opt.Params.Sport, opt.Params.League)
	if err != nil {
		log.Warn("fetch failed", "league", opt.DisplayName, "error", err)
	}

	renderer := scoreboard.NewRenderer(clockwork.NewRealClock())
	if err == nil {
		fmt.Println(renderer.Header(opt.DisplayName))
		scoreboard.WriteTable(os.Stdout, scoreboard.Games(board))
		fmt.Println()
	}

	for i, chunk := range renderer.Render(board, err == nil, opt.DisplayName) {
		fmt.Printf("--- message %d (%d chars) ---\n%s\n", i+1, len([]rune(chunk)), chunk)
		if len([]rune(chunk)) > format.MaxMessageLength {
			return fmt.Errorf("chunk %d exceeds the message limit", i+1)
		}
	}
	return nil
}
