package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sumukhanand/clamor/internal/bot"
	"github.com/sumukhanand/clamor/internal/config"
	"github.com/sumukhanand/clamor/internal/game"
	"github.com/sumukhanand/clamor/internal/trace"
)

// sim plays bot-driven rounds back to back on one Round
type sim struct {
	cfg   config.Config
	log   *slog.Logger
	trace *trace.Writer // nil when not tracing

	round   *game.Round
	bots    []*bot.Bot
	results []game.Result
}

func newSim(cfg config.Config, log *slog.Logger, tw *trace.Writer) *sim {
	s := &sim{cfg: cfg, log: log, trace: tw}
	s.round = game.NewRound(game.Options{
		PoolSize:   cfg.Round.PoolSize,
		CameraLerp: cfg.Camera.Lerp,
		Viewport:   cfg.Camera.Viewport,
		Logger:     log,
		Listener:   game.ListenerFunc(s.roundOver),
	})
	return s
}

func (s *sim) roundOver(res game.Result) {
	s.results = append(s.results, res)
}

// Run plays cfg.Sim.Rounds rounds. It stops between frames once ctx is done
// and returns the results collected so far.
func (s *sim) Run(ctx context.Context) ([]game.Result, error) {
	defer s.round.TeardownRound()
	for n := range s.cfg.Sim.Rounds {
		if err := s.start(n); err != nil {
			return s.results, err
		}
		if err := s.play(ctx); err != nil {
			return s.results, err
		}
	}
	return s.results, nil
}

func (s *sim) start(n int) error {
	var err error
	if s.round.Phase() == game.PhaseRoundOver {
		err = s.round.AcceptResult()
	} else {
		err = s.round.InitRound(s.cfg.Round.Players, s.cfg.Round.Duration)
	}
	if err != nil {
		return fmt.Errorf("round %d: %w", n+1, err)
	}

	s.bots = make([]*bot.Bot, s.round.TotalPlayers())
	for i := range s.bots {
		s.bots[i] = bot.New(i, s.cfg.Sim.Seed+uint64(n))
	}
	if s.trace != nil {
		return s.trace.Begin(s.round, s.cfg.Round.Duration)
	}
	return nil
}

func (s *sim) play(ctx context.Context) error {
	dt := s.cfg.Sim.DT
	for frame := 0; s.round.Phase() == game.PhaseActive; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit := s.cfg.Sim.MaxFrames; limit > 0 && frame >= limit {
			s.log.Warn("frame cap reached", "round", s.round.ID(), "frames", frame)
			return nil
		}

		for i, b := range s.bots {
			s.round.HandleInput(i, b.Think(dt, s.round))
		}
		s.round.Update(dt)

		if s.trace == nil {
			s.round.Effects()
			continue
		}
		if err := s.trace.Frame(trace.Capture(s.round)); err != nil {
			return err
		}
	}
	if s.trace != nil {
		return s.trace.End(s.round.Result())
	}
	return nil
}
