// Package config holds the tunable settings of a simulation run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvPlayers    = "CLAMOR_PLAYERS"
	EnvDuration   = "CLAMOR_ROUND_SECONDS"
	EnvPoolSize   = "CLAMOR_POOL_SIZE"
	EnvCameraLerp = "CLAMOR_CAMERA_LERP"
	EnvLogLevel   = "CLAMOR_LOG_LEVEL"
	EnvSeed       = "CLAMOR_SEED"
)

var (
	ErrInvalid = errors.New("invalid config")
)

// RoundConfig holds per-round settings
type RoundConfig struct {
	Players  int     `toml:"players"`
	Duration float64 `toml:"duration"` // seconds
	PoolSize int     `toml:"pool_size"`
}

// CameraConfig controls framing of the living players
type CameraConfig struct {
	Lerp     float64 `toml:"lerp"` // 0..1, 1 snaps to the target projection
	Viewport [2]int  `toml:"viewport"`
}

// SimConfig controls a headless run
type SimConfig struct {
	DT        float64 `toml:"dt"`
	Rounds    int     `toml:"rounds"`
	MaxFrames int     `toml:"max_frames"` // per round, 0 = unbounded
	Seed      uint64  `toml:"seed"`
	Trace     string  `toml:"trace"`
}

// Config is the full set of settings
type Config struct {
	Round    RoundConfig  `toml:"round"`
	Camera   CameraConfig `toml:"camera"`
	Sim      SimConfig    `toml:"sim"`
	LogLevel string       `toml:"log_level"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Round: RoundConfig{
			Players:  4,
			Duration: 120,
			PoolSize: 50,
		},
		Camera: CameraConfig{
			Lerp:     1,
			Viewport: [2]int{1024, 768},
		},
		Sim: SimConfig{
			DT:        1.0 / 60.0,
			Rounds:    1,
			MaxFrames: 60 * 60 * 10,
			Seed:      1,
		},
		LogLevel: "info",
	}
}

// Load decodes the TOML file at path over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// LoadEnv applies CLAMOR_* overrides. envFile is loaded first when present;
// a missing file is not an error.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env %s: %w", envFile, err)
		}
	}

	if err := envInt(EnvPlayers, &c.Round.Players); err != nil {
		return err
	}
	if err := envFloat(EnvDuration, &c.Round.Duration); err != nil {
		return err
	}
	if err := envInt(EnvPoolSize, &c.Round.PoolSize); err != nil {
		return err
	}
	if err := envFloat(EnvCameraLerp, &c.Camera.Lerp); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Sim.Seed = seed
	}
	return c.Validate()
}

// Validate checks ranges
func (c Config) Validate() error {
	switch {
	case c.Round.Players < 1:
		return fmt.Errorf("%w: players %d", ErrInvalid, c.Round.Players)
	case c.Round.Duration <= 0:
		return fmt.Errorf("%w: duration %v", ErrInvalid, c.Round.Duration)
	case c.Round.PoolSize < 1:
		return fmt.Errorf("%w: pool size %d", ErrInvalid, c.Round.PoolSize)
	case c.Camera.Lerp < 0 || c.Camera.Lerp > 1:
		return fmt.Errorf("%w: camera lerp %v", ErrInvalid, c.Camera.Lerp)
	case c.Sim.DT <= 0:
		return fmt.Errorf("%w: dt %v", ErrInvalid, c.Sim.DT)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return lvl, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}
