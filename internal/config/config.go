// Package config provides configuration helpers for go-kaleido commands.
//
// Runtime settings come from two places: a small set of environment
// variables for deployment concerns (port, log level, config path) and an
// optional YAML file carrying the tunable parameters of the signal engines
// and the compositor. Missing file or missing keys fall back to package
// defaults; out-of-range values are clamped by each consuming package, never
// rejected, because a live visual should degrade rather than go blank.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default deployment configuration.
const (
	DefaultPort       = "8089"
	DefaultConfigPath = "kaleido.yaml"
)

// Port returns the dashboard port from KALEIDO_PORT, or the default.
func Port() string {
	if p := os.Getenv("KALEIDO_PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from KALEIDO_LOG, or "info".
func LogLevel() string {
	if l := os.Getenv("KALEIDO_LOG"); l != "" {
		return l
	}
	return "info"
}

// Path returns the config file path from KALEIDO_CONFIG, or the default.
func Path() string {
	if p := os.Getenv("KALEIDO_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// File is the YAML shape of the tunables file. Zero values mean
// "use the package default" for every field.
type File struct {
	Audio struct {
		Smoothing       float64 `yaml:"smoothing"`
		BeatThreshold   float64 `yaml:"beat_threshold"`
		MinBeatInterval string  `yaml:"min_beat_interval"`
		HistorySize     int     `yaml:"history_size"`
		BPM             float64 `yaml:"bpm"`
		SampleRate      float64 `yaml:"sample_rate"`
		FFTSize         int     `yaml:"fft_size"`
	} `yaml:"audio"`

	Gesture struct {
		Sensitivity          float64 `yaml:"sensitivity"`
		ClickThreshold       float64 `yaml:"click_threshold"`
		Smoothing            float64 `yaml:"smoothing"`
		StillnessThreshold   float64 `yaml:"stillness_threshold"`
		SlowMotionThreshold  float64 `yaml:"slow_motion_threshold"`
		QuickMotionThreshold float64 `yaml:"quick_motion_threshold"`
		StillnessDuration    string  `yaml:"stillness_duration"`
		ClickCooldown        string  `yaml:"click_cooldown"`
		FrameSkip            int     `yaml:"frame_skip"`
		CameraIndex          int     `yaml:"camera_index"`
	} `yaml:"gesture"`

	Compositor struct {
		MaxLayers       int    `yaml:"max_layers"`
		LayerDuration   string `yaml:"layer_duration"`
		SpawnInterval   string `yaml:"spawn_interval"`
		FadeInDuration  string `yaml:"fade_in_duration"`
		FadeOutDuration string `yaml:"fade_out_duration"`
	} `yaml:"compositor"`
}

// Load reads the YAML tunables file at path. A missing file is not an
// error; it returns an empty File so callers apply defaults everywhere.
func Load(path string) (*File, error) {
	var f File

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &f, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Duration parses a YAML duration string, returning fallback when the
// field is empty or malformed.
func Duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
