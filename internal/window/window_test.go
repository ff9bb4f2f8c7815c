package window

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/memsim/internal/dynamo"
)

func TestJoglekarBoundaries(t *testing.T) {
	for _, p := range []float64{1, 2, 7, 10.5} {
		w, err := New(Joglekar, p, 1)
		if err != nil {
			t.Fatalf("New(joglekar, %v): %v", p, err)
		}
		if got := w(0, 1); got != 0 {
			t.Errorf("p=%v: F(0) = %v, want 0", p, got)
		}
		if got := w(1, 1); got != 0 {
			t.Errorf("p=%v: F(1) = %v, want 0", p, got)
		}
		if got := w(0.5, 1); got != 1 {
			t.Errorf("p=%v: F(0.5) = %v, want 1", p, got)
		}
	}
}

func TestJoglekarFlattensWithP(t *testing.T) {
	low, _ := New(Joglekar, 1, 1)
	high, _ := New(Joglekar, 10, 1)

	if high(0.8, 0) <= low(0.8, 0) {
		t.Errorf("larger p should give a flatter center: p=10 %v, p=1 %v", high(0.8, 0), low(0.8, 0))
	}
}

func TestBiolekDependsOnCurrentDirection(t *testing.T) {
	w, _ := New(Biolek, 1, 1)

	tests := []struct {
		name string
		x, i float64
		want float64
	}{
		{"positive current at x=1", 1, 1e-3, 0},
		{"positive current at x=0", 0, 1e-3, 1},
		{"negative current at x=0", 0, -1e-3, 0},
		{"negative current at x=1", 1, -1e-3, 1},
		{"zero current uses H(0)=0", 0.5, 0, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w(tt.x, tt.i); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("F(%v, %v) = %v, want %v", tt.x, tt.i, got, tt.want)
			}
		})
	}
}

func TestAnusudha(t *testing.T) {
	w, _ := New(Anusudha, 1, 2)

	// x³ - x + 1 = 1 at x = 0 and x = 1
	if got := w(0, 0); math.Abs(got-(-2)) > 1e-12 {
		t.Errorf("F(0) = %v, want -2", got)
	}
	x := 0.5
	want := 2 * (1 - 2*(x*x*x-x+1))
	if got := w(x, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("F(0.5) = %v, want %v", got, want)
	}
}

func TestNoneIsConstant(t *testing.T) {
	w, _ := New(None, 3, 3)
	for _, x := range []float64{-1, 0, 0.5, 1, 2} {
		if got := w(x, -5); got != 1 {
			t.Errorf("F(%v) = %v, want 1", x, got)
		}
	}
}

func TestFiniteOverDomain(t *testing.T) {
	params := [][2]float64{{1, 1}, {0.5, 1}, {1.25, 0.3}, {7, 1}, {20, 5}}

	for _, typ := range Types() {
		for _, pj := range params {
			w, err := New(typ, pj[0], pj[1])
			if err != nil {
				t.Fatalf("New(%s): %v", typ, err)
			}
			for k := 0; k <= 100; k++ {
				x := float64(k) / 100
				for _, i := range []float64{-1, 0, 1} {
					if v := w(x, i); !dynamo.IsFinite(v) {
						t.Errorf("%s p=%v j=%v: F(%v, %v) = %v", typ, pj[0], pj[1], x, i, v)
					}
				}
			}
		}
	}
}

func TestUnknownType(t *testing.T) {
	_, err := New("hann", 1, 1)
	if !errors.Is(err, dynamo.ErrUnknownWindow) {
		t.Errorf("expected ErrUnknownWindow, got %v", err)
	}
}
