// Package config loads the client configuration from an optional TOML file
// with environment-variable overrides, applying sane defaults and returning
// descriptive errors for invalid settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"stellarsiege/client/internal/logging"
)

const (
	// DefaultBufferTime is the number of battle ticks of events the
	// playback controller keeps buffered ahead of the current time.
	DefaultBufferTime = 50
	// DefaultTickInterval is the playback timer cadence.
	DefaultTickInterval = 20 * time.Millisecond
	// DefaultTicksPerBattleCycle is how many timer ticks make up one
	// battle tick on screen.
	DefaultTicksPerBattleCycle = 3
	// DefaultScheduler selects the event scheduling policy.
	DefaultScheduler = "standard"

	// DefaultAddr is the TCP address the event service listens on.
	DefaultAddr = ":43311"
	// DefaultPingInterval controls websocket keepalive cadence.
	DefaultPingInterval = 30 * time.Second
	// DefaultMaxPayloadBytes limits inbound websocket frame size.
	DefaultMaxPayloadBytes int64 = 1 << 20

	// DefaultReplayDir is where recordings are archived.
	DefaultReplayDir = "replays"
)

// PlaybackConfig captures the playback controller tunables.
type PlaybackConfig struct {
	BufferTime          int           `toml:"buffer_time"`
	TickInterval        time.Duration `toml:"tick_interval"`
	TicksPerBattleCycle int           `toml:"ticks_per_battle_cycle"`
	Scheduler           string        `toml:"scheduler"`
}

// TransportConfig captures the websocket event-service tunables.
type TransportConfig struct {
	Address         string        `toml:"address"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
	MaxPayloadBytes int64         `toml:"max_payload_bytes"`
	PingInterval    time.Duration `toml:"ping_interval"`
}

// ReplayConfig captures recording archive settings.
type ReplayConfig struct {
	Dir string `toml:"dir"`
}

// Config captures all runtime tunables for the client.
type Config struct {
	Logging   logging.Config  `toml:"logging"`
	Playback  PlaybackConfig  `toml:"playback"`
	Transport TransportConfig `toml:"transport"`
	Replay    ReplayConfig    `toml:"replay"`
}

// Load reads the configuration. The TOML file at path is optional; settings
// may further be overridden through CLIENT_* environment variables. Invalid
// overrides are collected and reported together.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Logging: logging.Config{Level: "info"},
		Playback: PlaybackConfig{
			BufferTime:          DefaultBufferTime,
			TickInterval:        DefaultTickInterval,
			TicksPerBattleCycle: DefaultTicksPerBattleCycle,
			Scheduler:           DefaultScheduler,
		},
		Transport: TransportConfig{
			Address:         DefaultAddr,
			MaxPayloadBytes: DefaultMaxPayloadBytes,
			PingInterval:    DefaultPingInterval,
		},
		Replay: ReplayConfig{Dir: DefaultReplayDir},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("CLIENT_LOG_LEVEL")); raw != "" {
		cfg.Logging.Level = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_ADDR")); raw != "" {
		cfg.Transport.Address = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_REPLAY_DIR")); raw != "" {
		cfg.Replay.Dir = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_SCHEDULER")); raw != "" {
		cfg.Playback.Scheduler = raw
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_BUFFER_TIME")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("CLIENT_BUFFER_TIME must be a positive integer, got %q", raw))
		} else {
			cfg.Playback.BufferTime = value
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_TICK_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("CLIENT_TICK_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.Playback.TickInterval = duration
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CLIENT_MAX_PAYLOAD_BYTES")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("CLIENT_MAX_PAYLOAD_BYTES must be a positive integer, got %q", raw))
		} else {
			cfg.Transport.MaxPayloadBytes = value
		}
	}

	if err := cfg.validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Playback.Scheduler {
	case "traditional", "standard", "interleaved":
	default:
		return fmt.Errorf("playback.scheduler must be traditional, standard or interleaved, got %q", c.Playback.Scheduler)
	}
	if c.Playback.BufferTime <= 0 {
		return fmt.Errorf("playback.buffer_time must be positive, got %d", c.Playback.BufferTime)
	}
	if c.Playback.TicksPerBattleCycle <= 0 {
		return fmt.Errorf("playback.ticks_per_battle_cycle must be positive, got %d", c.Playback.TicksPerBattleCycle)
	}
	return nil
}
