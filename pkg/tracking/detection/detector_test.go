package detection

import (
	"errors"
	"testing"

	"github.com/teslashibe/go-dwell/pkg/geometry"
)

func TestAreaFilter_Accept(t *testing.T) {
	f := AreaFilter{Min: DefaultMinArea, Max: DefaultMaxArea}

	tests := []struct {
		name   string
		area   float64
		expect bool
	}{
		{name: "noise", area: 12, expect: false},
		{name: "lower bound is exclusive", area: 200, expect: false},
		{name: "just above lower bound", area: 200.5, expect: true},
		{name: "typical mouse", area: 350, expect: true},
		{name: "upper bound is exclusive", area: 500, expect: false},
		{name: "merged blobs", area: 1200, expect: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Accept(Region{Area: tc.area}); got != tc.expect {
				t.Errorf("Accept(%v) = %v, want %v", tc.area, got, tc.expect)
			}
		})
	}
}

func TestRegion_Bounds(t *testing.T) {
	r := Region{Contour: []geometry.Point{
		geometry.Pt(5, 8), geometry.Pt(24, 8), geometry.Pt(24, 17), geometry.Pt(5, 17),
	}}

	want := geometry.Rect{X: 5, Y: 8, W: 20, H: 10}
	if got := r.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
	if got := r.Moments().Area(); got != 171 {
		t.Errorf("moment area = %v, want 171", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "threshold", want: KindThreshold},
		{input: " Background ", want: KindBackground},
		{input: "yolo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseKind(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownExtractor) {
					t.Errorf("ParseKind(%q) err = %v, want ErrUnknownExtractor", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	cfg := DefaultConfig()
	cfg.KernelSize = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero kernel: err = %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Kind = "optical-flow"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownExtractor) {
		t.Errorf("unknown kind: err = %v, want ErrUnknownExtractor", err)
	}
}
