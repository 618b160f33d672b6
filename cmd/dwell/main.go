// Dwell measures how long a mouse's nose spends inside a zone of interest
// in an enclosure video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/teslashibe/go-dwell/internal/config"
	"github.com/teslashibe/go-dwell/internal/log"
	"github.com/teslashibe/go-dwell/pkg/preview"
	"github.com/teslashibe/go-dwell/pkg/tracking"
	"github.com/teslashibe/go-dwell/pkg/tracking/detection"
	"github.com/teslashibe/go-dwell/pkg/tracking/nose"
	"github.com/teslashibe/go-dwell/pkg/tracking/segment"
	"github.com/teslashibe/go-dwell/pkg/video"
	"github.com/teslashibe/go-dwell/pkg/web"
)

// options is everything the command needs for one run.
type options struct {
	Video     string
	Detection detection.Config
	Tracking  tracking.Config
	Preview   bool
	WebPort   string // Empty disables the dashboard
	LogLevel  string
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Init(opts.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := run(ctx, opts)
	if err != nil {
		log.Error("run failed", "error", err, "frames", result.Frames, "dwell_count", result.DwellCount)
		os.Exit(1)
	}

	fmt.Printf("Time Spent Smelling: %.2f seconds\n", result.Seconds)
}

// parseFlags parses command line flags on top of DWELL_* environment defaults.
// A preset supplies the baseline tracking values; explicit flags and
// environment variables override it field by field.
func parseFlags(args []string) (options, error) {
	tc := tracking.DefaultConfig()
	dc := detection.DefaultConfig()

	fs := flag.NewFlagSet("dwell", flag.ContinueOnError)
	videoPath := fs.String("video", config.Video(), "Video file, or camera number")
	preset := fs.String("preset", config.String("PRESET", presetDefault), "Tracking preset: default (mouse), large (rat or close camera)")
	extractor := fs.String("extractor", config.String("EXTRACTOR", string(dc.Kind)), "Region extractor: threshold, background")
	threshold := fs.Float64("threshold", config.Float("THRESHOLD", float64(dc.Threshold)), "Gray level below which pixels belong to the animal")
	kernel := fs.Int("kernel", config.Int("KERNEL", dc.KernelSize), "Opening kernel diameter (pixels)")
	strategy := fs.String("strategy", config.String("STRATEGY", tc.Strategy), "Nose strategy: extremum, box")
	zoneX := fs.Float64("zone-x", config.Float("ZONE_X", tc.Zone.Center.X), "Zone center x (pixels)")
	zoneY := fs.Float64("zone-y", config.Float("ZONE_Y", tc.Zone.Center.Y), "Zone center y (pixels)")
	zoneR := fs.Float64("zone-radius", config.Float("ZONE_RADIUS", tc.Zone.Radius), "Zone radius (pixels)")
	minArea := fs.Float64("min-area", config.Float("MIN_AREA", tc.MinArea), "Smallest region area kept (exclusive)")
	maxArea := fs.Float64("max-area", config.Float("MAX_AREA", tc.MaxArea), "Largest region area kept (exclusive)")
	minDist := fs.Float64("min-distance", config.Float("MIN_DISTANCE", tc.MinDistance), "Smoother band lower edge (pixels)")
	maxDist := fs.Float64("max-distance", config.Float("MAX_DISTANCE", tc.MaxDistance), "Smoother band upper edge (pixels)")
	perFrame := fs.Bool("per-frame", config.Bool("PER_FRAME", false), "Count each frame at most once")
	progress := fs.Int("progress-every", config.Int("PROGRESS_EVERY", tc.ProgressEvery), "Log progress every N frames (0 disables)")
	show := fs.Bool("preview", config.Bool("PREVIEW", false), "Show an annotated preview window (q quits)")
	webPort := fs.String("web-port", config.String("WEB_PORT", ""), "Serve a live dashboard on this port")
	logLevel := fs.String("log-level", config.String("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	debug := fs.Bool("debug", false, "Shorthand for -log-level debug")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	kind, err := detection.ParseKind(*extractor)
	if err != nil {
		return options{}, err
	}
	dc.Kind = kind
	dc.Threshold = float32(*threshold)
	dc.KernelSize = *kernel
	if err := dc.Validate(); err != nil {
		return options{}, err
	}

	tc, err = presetConfig(*preset)
	if err != nil {
		return options{}, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	overrides := []struct {
		flag, env string
		dst       *float64
		val       float64
	}{
		{"zone-x", "ZONE_X", &tc.Zone.Center.X, *zoneX},
		{"zone-y", "ZONE_Y", &tc.Zone.Center.Y, *zoneY},
		{"zone-radius", "ZONE_RADIUS", &tc.Zone.Radius, *zoneR},
		{"min-area", "MIN_AREA", &tc.MinArea, *minArea},
		{"max-area", "MAX_AREA", &tc.MaxArea, *maxArea},
		{"min-distance", "MIN_DISTANCE", &tc.MinDistance, *minDist},
		{"max-distance", "MAX_DISTANCE", &tc.MaxDistance, *maxDist},
	}
	for _, o := range overrides {
		if explicit[o.flag] || config.String(o.env, "") != "" {
			*o.dst = o.val
		}
	}
	tc.Strategy = *strategy
	tc.DwellPerFrame = *perFrame
	tc.ProgressEvery = *progress

	if err := tc.Validate(); err != nil {
		return options{}, err
	}
	if _, err := nose.New(tc.Strategy); err != nil {
		return options{}, err
	}

	opts := options{
		Video:     *videoPath,
		Detection: dc,
		Tracking:  tc,
		Preview:   *show,
		WebPort:   *webPort,
		LogLevel:  *logLevel,
	}
	if *debug {
		opts.LogLevel = "debug"
	}
	return opts, nil
}

const (
	presetDefault = "default"
	presetLarge   = "large"
)

var errUnknownPreset = errors.New("unknown preset")

func presetConfig(name string) (tracking.Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case presetDefault, "":
		return tracking.DefaultConfig(), nil
	case presetLarge:
		return tracking.LargeAnimalConfig(), nil
	default:
		return tracking.Config{}, fmt.Errorf("%w: %q", errUnknownPreset, name)
	}
}

// run wires the extractor, video source, session and observers together
// and processes the whole video.
func run(ctx context.Context, opts options) (tracking.Result, error) {
	extractor, err := segment.New(opts.Detection)
	if err != nil {
		return tracking.Result{}, err
	}
	defer extractor.Close()

	src, err := video.Open(opts.Video, extractor)
	if err != nil {
		return tracking.Result{}, err
	}
	defer src.Close()

	sess, err := tracking.NewSession(opts.Tracking, src.FPS())
	if err != nil {
		return tracking.Result{}, err
	}

	overlay := preview.Overlay{Zone: opts.Tracking.Zone, Contours: true}
	var runOpts []tracking.RunOption

	if opts.Preview {
		win := preview.NewWindow("Detected Figure", src, overlay)
		defer win.Close()
		runOpts = append(runOpts, tracking.WithObserver(win))
	}

	var dash *web.Server
	if opts.WebPort != "" {
		dash = web.NewServer(opts.WebPort, web.RunInfo{
			Video:       opts.Video,
			Extractor:   string(opts.Detection.Kind),
			Config:      opts.Tracking,
			FPS:         src.FPS(),
			FramesTotal: src.FrameCount(),
		})
		dash.StartAsync(ctx)
		defer dash.Shutdown()

		pub := preview.NewPublisher(src, dash, overlay, 2)
		defer pub.Close()
		runOpts = append(runOpts, tracking.WithObserver(dash), tracking.WithObserver(pub))
	}

	log.Info("tracking started",
		"video", opts.Video,
		"extractor", opts.Detection.Kind,
		"strategy", opts.Tracking.Strategy,
		"fps", src.FPS(),
	)

	result, err := tracking.Run(ctx, src, sess, runOpts...)
	if dash != nil {
		dash.Finish(result, err)
	}
	if err != nil {
		return result, err
	}

	log.Info("tracking finished", "frames", result.Frames, "dwell_count", result.DwellCount, "seconds", result.Seconds)
	return result, nil
}
