// Package config provides environment-variable defaults for go-dwell commands.
// Flags parsed in cmd/ take precedence over anything read here.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Prefix is prepended to every variable name looked up by this package.
const Prefix = "DWELL_"

// Default video used when neither -video nor DWELL_VIDEO is given.
const DefaultVideo = "mouse_video_cropped.mp4"

// Video returns the video path from DWELL_VIDEO.
// Falls back to DefaultVideo if not set.
func Video() string {
	return String("VIDEO", DefaultVideo)
}

// String returns DWELL_<key>, or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(Prefix + key)); v != "" {
		return v
	}
	return def
}

// Float returns DWELL_<key> parsed as a float, or def when unset or malformed.
func Float(key string, def float64) float64 {
	if v := String(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Int returns DWELL_<key> parsed as an int, or def when unset or malformed.
func Int(key string, def int) int {
	if v := String(key, ""); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Bool returns DWELL_<key> parsed as a bool, or def when unset or malformed.
func Bool(key string, def bool) bool {
	if v := String(key, ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
