package audio

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment keys read by LoadConfig
const (
	EnvAudio      = "GUARDIAN_AUDIO"
	EnvVolume     = "GUARDIAN_VOLUME"
	EnvSampleRate = "GUARDIAN_SAMPLE_RATE"
	// EnvCueVolumes holds comma separated name=percent pairs, e.g. "shot=20,boss=100"
	EnvCueVolumes = "GUARDIAN_CUE_VOLUMES"
)

// Config tunes the tone sink
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	// Buffer is the speaker latency
	Buffer time.Duration
	// MinGap is the shortest simulation-time spacing between two plays of the same cue
	MinGap  time.Duration
	Volumes [cueCount]float64
}

func DefaultConfig() Config {
	cfg := Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		Buffer:       100 * time.Millisecond,
		MinGap:       60 * time.Millisecond,
	}
	for c := range cfg.Volumes {
		cfg.Volumes[c] = 0.8
	}
	cfg.Volumes[CueShot] = 0.25
	cfg.Volumes[CuePickup] = 0.4
	cfg.Volumes[CueBoss] = 1.0
	cfg.Volumes[CueGameOver] = 1.0
	return cfg
}

// LoadConfig starts from DefaultConfig and applies environment overrides
// Unparseable values are ignored
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvAudio); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}

	// 0-100 → 0.0-1.0
	if v := os.Getenv(EnvVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MasterVolume = percent(n)
		}
	}

	if v := os.Getenv(EnvSampleRate); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRate = n
		}
	}

	if v := os.Getenv(EnvCueVolumes); v != "" {
		for _, pair := range strings.Split(v, ",") {
			name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				continue
			}
			c, ok := ParseCue(name)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(val); err == nil {
				cfg.Volumes[c] = percent(n)
			}
		}
	}
	return cfg
}

func percent(n int) float64 {
	return float64(max(0, min(100, n))) / 100
}
