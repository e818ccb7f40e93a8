package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumukhanand/clamor/internal/config"
	"github.com/sumukhanand/clamor/internal/game"
	"github.com/sumukhanand/clamor/internal/level"
	"github.com/sumukhanand/clamor/internal/trace"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Round.Players = 2
	cfg.Round.Duration = 2
	cfg.Sim.Rounds = 2
	cfg.Sim.MaxFrames = 0
	return cfg
}

var quiet = slog.New(slog.DiscardHandler)

func TestSimPlaysEveryRound(t *testing.T) {
	var buf bytes.Buffer
	tw := trace.NewWriter(&buf)

	results, err := newSim(testConfig(), quiet, tw).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, tw.Flush())
	require.Len(t, results, 2)
	assert.NotEqual(t, results[0].Round, results[1].Round)

	counts := map[trace.RecordKind]int{}
	rd := trace.NewReader(&buf)
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		counts[rec.Kind]++
	}
	assert.Equal(t, 2, counts[trace.RecordHeader])
	assert.Equal(t, 2, counts[trace.RecordResult])
	assert.Equal(t, tw.Frames(), counts[trace.RecordFrame])
	assert.Greater(t, tw.Frames(), 0)
}

func TestSimFrameCap(t *testing.T) {
	cfg := testConfig()
	cfg.Round.Duration = 60
	cfg.Sim.Rounds = 1
	cfg.Sim.MaxFrames = 10

	results, err := newSim(cfg, quiet, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSimStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newSim(testConfig(), quiet, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestSimRejectsUnknownPlayerCount(t *testing.T) {
	cfg := testConfig()
	cfg.Round.Players = 9

	_, err := newSim(cfg, quiet, nil).Run(context.Background())
	assert.ErrorIs(t, err, game.ErrPlayerCount)
}

func TestCheckPlayers(t *testing.T) {
	set := level.Builtin()
	for _, n := range set.PlayerCounts() {
		assert.NoError(t, checkPlayers(set, n))
	}
	err := checkPlayers(set, 7)
	assert.ErrorIs(t, err, level.ErrNoLayout)
	assert.ErrorContains(t, err, "[1 2 3 4]")
}

func TestTally(t *testing.T) {
	wins, draws := tally([]game.Result{
		{Winner: 1, Survivors: []int{1}},
		{Winner: -1},
		{Winner: 1, Survivors: []int{1}},
		{Winner: 0, Survivors: []int{0}},
	})
	assert.Equal(t, map[int]int{0: 1, 1: 2}, wins)
	assert.Equal(t, 1, draws)
}
