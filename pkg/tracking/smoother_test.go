package tracking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/teslashibe/go-dwell/pkg/geometry"
)

func TestSmoother_FirstUpdateAccepted(t *testing.T) {
	s := NewSmoother(20, 40)

	if _, ok := s.Last(); ok {
		t.Fatal("new smoother should have no point")
	}

	// Even a mid-band value is accepted when nothing is tracked yet
	got := s.Update(geometry.Pt(30, 0))
	if !got.Eq(geometry.Pt(30, 0)) || !s.Accepted() {
		t.Errorf("first update = %v (accepted=%v), want (30, 0) accepted", got, s.Accepted())
	}
	if last, ok := s.Last(); !ok || !last.Eq(got) {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestSmoother_Band(t *testing.T) {
	tests := []struct {
		name      string
		candidate geometry.Point
		want      geometry.Point
		accepted  bool
	}{
		{name: "stationary", candidate: geometry.Pt(10, 0), want: geometry.Pt(10, 0), accepted: true},
		{name: "just below band", candidate: geometry.Pt(19.99, 0), want: geometry.Pt(19.99, 0), accepted: true},
		{name: "lower edge suppressed", candidate: geometry.Pt(20, 0), want: geometry.Pt(0, 0), accepted: false},
		{name: "mid band suppressed", candidate: geometry.Pt(0, 30), want: geometry.Pt(0, 0), accepted: false},
		{name: "upper edge suppressed", candidate: geometry.Pt(24, 32), want: geometry.Pt(0, 0), accepted: false},
		{name: "jump", candidate: geometry.Pt(30, 40), want: geometry.Pt(30, 40), accepted: true},
		{name: "far jump", candidate: geometry.Pt(-50, 0), want: geometry.Pt(-50, 0), accepted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(20, 40)
			s.Update(geometry.Pt(0, 0))

			got := s.Update(tt.candidate)
			if !got.Eq(tt.want) {
				t.Errorf("Update(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
			if s.Accepted() != tt.accepted {
				t.Errorf("Accepted() = %v, want %v", s.Accepted(), tt.accepted)
			}
			if last, _ := s.Last(); !last.Eq(tt.want) {
				t.Errorf("stored point = %v, want %v", last, tt.want)
			}
		})
	}
}

func TestSmoother_RejectionDoesNotDrift(t *testing.T) {
	s := NewSmoother(20, 40)
	s.Update(geometry.Pt(100, 100))

	// A sequence of mid-band candidates never moves the stored point,
	// even though each is near the previous candidate.
	for _, c := range []geometry.Point{
		geometry.Pt(125, 100), geometry.Pt(130, 100), geometry.Pt(135, 100),
	} {
		if got := s.Update(c); !got.Eq(geometry.Pt(100, 100)) {
			t.Fatalf("Update(%v) = %v, want (100, 100)", c, got)
		}
	}
}

func TestSmoother_Deterministic(t *testing.T) {
	seq := []geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(5, 5), geometry.Pt(30, 5), geometry.Pt(60, 60),
		geometry.Pt(61, 62), geometry.Pt(90, 62), geometry.Pt(10, 10), geometry.Pt(12, 9),
	}

	replay := func() []geometry.Point {
		s := NewSmoother(20, 40)
		out := make([]geometry.Point, len(seq))
		for i, c := range seq {
			out[i] = s.Update(c)
		}
		return out
	}

	first, second := replay(), replay()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay differs (-first +second):\n%s", diff)
	}

	want := []geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(5, 5), geometry.Pt(30, 5), geometry.Pt(60, 60),
		geometry.Pt(61, 62), geometry.Pt(90, 62), geometry.Pt(10, 10), geometry.Pt(12, 9),
	}
	// (30,5) is 25 from (5,5): suppressed. (60,60) is 62 from (5,5): accepted.
	// (90,62) is 29 from (61,62): suppressed.
	want[2] = geometry.Pt(5, 5)
	want[5] = geometry.Pt(61, 62)
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("stabilised sequence mismatch (-want +got):\n%s", diff)
	}
}
