// Command clamor runs headless arena rounds between bots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/sumukhanand/clamor/internal/config"
	"github.com/sumukhanand/clamor/internal/game"
	"github.com/sumukhanand/clamor/internal/level"
	"github.com/sumukhanand/clamor/internal/trace"
)

func main() {
	if err := start(); err != nil {
		fmt.Fprintln(os.Stderr, "clamor:", err)
		os.Exit(1)
	}
}

func start() error {
	configPath := flag.String("config", "", "TOML config file")
	envFile := flag.String("env", ".env", "dotenv file with CLAMOR_* overrides")
	players := flag.Int("players", 0, "players per round")
	duration := flag.Float64("duration", 0, "round length in seconds")
	rounds := flag.Int("rounds", 0, "rounds to play")
	dt := flag.Float64("dt", 0, "frame step in seconds")
	maxFrames := flag.Int("max-frames", 0, "frame cap per round, 0 for none")
	seed := flag.Uint64("seed", 0, "bot seed")
	tracePath := flag.String("trace", "", "write a msgpack frame trace to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		return err
	}
	// Flags win over the file and the environment, but only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "players":
			cfg.Round.Players = *players
		case "duration":
			cfg.Round.Duration = *duration
		case "rounds":
			cfg.Sim.Rounds = *rounds
		case "dt":
			cfg.Sim.DT = *dt
		case "max-frames":
			cfg.Sim.MaxFrames = *maxFrames
		case "seed":
			cfg.Sim.Seed = *seed
		case "trace":
			cfg.Sim.Trace = *tracePath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkPlayers(level.Builtin(), cfg.Round.Players); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	var tw *trace.Writer
	if cfg.Sim.Trace != "" {
		f, err := os.Create(cfg.Sim.Trace)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		tw = trace.NewWriter(f)
		defer func() {
			if err := tw.Flush(); err != nil {
				log.Error("flush trace", "path", cfg.Sim.Trace, "err", err)
				return
			}
			log.Info("trace written", "path", cfg.Sim.Trace, "frames", tw.Frames())
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting",
		"players", cfg.Round.Players,
		"rounds", cfg.Sim.Rounds,
		"duration", cfg.Round.Duration,
		"seed", cfg.Sim.Seed,
	)
	results, err := newSim(cfg, log, tw).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("shutting down", "rounds", len(results))
		err = nil
	}
	report(log, results)
	return err
}

// checkPlayers rejects a player count the arena set has no layout for
func checkPlayers(set *level.Set, players int) error {
	if counts := set.PlayerCounts(); !slices.Contains(counts, players) {
		return fmt.Errorf("%w: %d players, layouts exist for %v", level.ErrNoLayout, players, counts)
	}
	return nil
}

// report logs each player's win count and the number of draws
func report(log *slog.Logger, results []game.Result) {
	wins, draws := tally(results)
	for _, i := range slices.Sorted(maps.Keys(wins)) {
		log.Info("wins", "player", i, "count", wins[i])
	}
	log.Info("summary", "rounds", len(results), "draws", draws)
}

func tally(results []game.Result) (wins map[int]int, draws int) {
	wins = make(map[int]int)
	for _, res := range results {
		if res.Draw() {
			draws++
			continue
		}
		wins[res.Winner]++
	}
	return wins, draws
}
