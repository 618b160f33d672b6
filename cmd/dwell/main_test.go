package main

import (
	"errors"
	"testing"

	"github.com/teslashibe/go-dwell/pkg/tracking"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"github.com/teslashibe/go-dwell/pkg/tracking/nose"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if opts.Video != "mouse_video_cropped.mp4" {
		t.Errorf("Video = %q", opts.Video)
	}
	if opts.Tracking != tracking.DefaultConfig() {
		t.Errorf("Tracking = %+v, want defaults", opts.Tracking)
	}
	if opts.Detection != detection.DefaultConfig() {
		t.Errorf("Detection = %+v, want defaults", opts.Detection)
	}
	if opts.Preview || opts.WebPort != "" {
		t.Error("preview and dashboard should be off by default")
	}
	if opts.LogLevel != "info" {
		t.Errorf("LogLevel = %q", opts.LogLevel)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"-video", "rat.mp4",
		"-extractor", "background",
		"-strategy", "box",
		"-zone-x", "10", "-zone-y", "20", "-zone-radius", "5",
		"-min-area", "800", "-max-area", "2500",
		"-min-distance", "40", "-max-distance", "80",
		"-per-frame",
		"-web-port", "8181",
		"-debug",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if opts.Video != "rat.mp4" {
		t.Errorf("Video = %q", opts.Video)
	}
	if opts.Detection.Kind != detection.KindBackground {
		t.Errorf("Kind = %q", opts.Detection.Kind)
	}
	tc := opts.Tracking
	if tc.Strategy != nose.StrategyBox || !tc.DwellPerFrame {
		t.Errorf("Tracking = %+v", tc)
	}
	if tc.Zone.Center.X != 10 || tc.Zone.Center.Y != 20 || tc.Zone.Radius != 5 {
		t.Errorf("Zone = %+v", tc.Zone)
	}
	if tc.MinArea != 800 || tc.MaxArea != 2500 || tc.MinDistance != 40 || tc.MaxDistance != 80 {
		t.Errorf("Tracking = %+v", tc)
	}
	if opts.WebPort != "8181" || opts.LogLevel != "debug" {
		t.Errorf("WebPort = %q LogLevel = %q", opts.WebPort, opts.LogLevel)
	}
}

func TestParseFlags_Environment(t *testing.T) {
	t.Setenv("DWELL_VIDEO", "env.mp4")
	t.Setenv("DWELL_ZONE_RADIUS", "33")
	t.Setenv("DWELL_STRATEGY", "box")

	opts, err := parseFlags([]string{"-strategy", "extremum"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.Video != "env.mp4" {
		t.Errorf("Video = %q, want env.mp4", opts.Video)
	}
	if opts.Tracking.Zone.Radius != 33 {
		t.Errorf("Radius = %v, want 33", opts.Tracking.Zone.Radius)
	}
	if opts.Tracking.Strategy != nose.StrategyExtremum {
		t.Errorf("flag should beat environment, got %q", opts.Tracking.Strategy)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown extractor", []string{"-extractor", "yolo"}, detection.ErrUnknownExtractor},
		{"inverted area", []string{"-min-area", "600"}, tracking.ErrInvalidConfig},
		{"zero radius", []string{"-zone-radius", "0"}, tracking.ErrInvalidConfig},
		{"unknown strategy", []string{"-strategy", "pose"}, nose.ErrUnknownStrategy},
		{"unknown preset", []string{"-preset", "hamster"}, errUnknownPreset},
		{"zero kernel", []string{"-kernel", "0"}, detection.ErrInvalidConfig},
		{"negative progress", []string{"-progress-every", "-1"}, tracking.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("parseFlags(%v) error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}

func TestParseFlags_LargePreset(t *testing.T) {
	opts, err := parseFlags([]string{"-preset", "large"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.Tracking != tracking.LargeAnimalConfig() {
		t.Errorf("Tracking = %+v, want LargeAnimalConfig", opts.Tracking)
	}
}

func TestParseFlags_PresetWithOverride(t *testing.T) {
	opts, err := parseFlags([]string{"-preset", "large", "-zone-radius", "12", "-kernel", "7", "-progress-every", "0"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	want := tracking.LargeAnimalConfig()
	want.Zone.Radius = 12
	want.ProgressEvery = 0
	if opts.Tracking != want {
		t.Errorf("Tracking = %+v, want %+v", opts.Tracking, want)
	}
	if opts.Detection.KernelSize != 7 {
		t.Errorf("KernelSize = %d, want 7", opts.Detection.KernelSize)
	}
}

func TestParseFlags_PresetWithEnvironment(t *testing.T) {
	t.Setenv("DWELL_PRESET", "large")
	t.Setenv("DWELL_MIN_AREA", "900")

	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.Tracking.MinArea != 900 {
		t.Errorf("MinArea = %v, want 900 from environment", opts.Tracking.MinArea)
	}
	if opts.Tracking.MaxArea != tracking.LargeAnimalConfig().MaxArea {
		t.Errorf("MaxArea = %v, want preset value", opts.Tracking.MaxArea)
	}
}
