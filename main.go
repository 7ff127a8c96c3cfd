package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/game"
	"github.com/lemilonkh/ecolia/sim"
	"github.com/lemilonkh/ecolia/telemetry"
	"github.com/lemilonkh/ecolia/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Run in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON to stdout for structured logging; the terminal UI owns stdout
	logOut := os.Stdout
	if *terminal {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s := sim.New(cfg, sim.Options{
		Seed:     rngSeed,
		LogStats: *logStats,
		Output:   output,
	})

	switch {
	case *headless:
		runHeadless(s, rngSeed, *maxTicks, *stepsPerUpdate)
	case *terminal:
		if err := runTerminal(s, *maxTicks, *stepsPerUpdate); err != nil {
			slog.Error("terminal front-end failed", "error", err)
		}
	default:
		runWindow(s, *maxTicks, *stepsPerUpdate)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM so deferred cleanup runs.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runHeadless is a pure CPU run, no raylib or terminal needed.
func runHeadless(s *sim.Simulation, seed int64, maxTicks, steps int) {
	slog.Info("starting headless simulation",
		"seed", seed,
		"stats_window", s.Config().Telemetry.StatsWindow,
		"max_ticks", maxTicks,
		"steps_per_update", steps,
	)

	ctx, stop := signalContext()
	defer stop()

	for ctx.Err() == nil {
		for i := 0; i < steps; i++ {
			s.Tick()
		}
		if maxTicks > 0 && int(s.TickCount()) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.TickCount())
			return
		}
	}
	slog.Info("interrupted", "tick", s.TickCount())
}

func runTerminal(s *sim.Simulation, maxTicks, steps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signalContext()
	defer stop()

	err = tui.New(screen, s, steps).Run(ctx, maxTicks)
	if err == context.Canceled {
		return nil
	}
	return err
}

func runWindow(s *sim.Simulation, maxTicks, steps int) {
	cfg := s.Config()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Ecolia")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(s, steps)
	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
