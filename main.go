package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/views"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	debug := flag.Bool("debug", false, "Validate agent invariants every aging tick and log at debug level")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
		cfg.Recompute()
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		Headless:       *headless,
		Debug:          *debug,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runGraphical(opts, *maxTicks)
}

// runHeadless steps the simulation as fast as possible without raylib.
func runHeadless(opts game.Options, maxTicks int) {
	opts.Gate = game.RemoveImmediately

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"stats_window", opts.Config.Telemetry.StatsWindow,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
		if p := g.Population(); p.Alive == 0 && p.Dead == 0 {
			slog.Info("population extinct", "tick", g.Tick())
			return
		}
	}
}

// runGraphical opens a window and drives the simulation once per frame.
func runGraphical(opts game.Options, maxTicks int) {
	cfg := opts.Config

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Meadow")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	tracker := views.NewTracker(cfg.Presentation, cfg.Derived.HalfExtent)
	opts.Gate = tracker

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	app := newViewer(g, tracker)
	defer app.Unload()

	for !rl.WindowShouldClose() {
		app.Update(rl.GetFrameTime())
		app.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
