// Copyright 2025 Sonic Labs
// This file is part of Simtrial, a time-to-event simulation toolkit
//
// Simtrial is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Simtrial is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Simtrial. If not, see <http://www.gnu.org/licenses/>.

package piecewise

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func almostEqual(a, b float64) bool {
	const eps = 1e-12
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	return diff <= eps*math.Max(math.Abs(a), math.Abs(b))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		breakpoints []float64
		rates       []float64
		wantErr     error
	}{
		{"plain exponential", nil, []float64{1.0}, nil},
		{"two intervals", []float64{5.0}, []float64{1.0, 2.0}, nil},
		{"three intervals", []float64{0.5, 1.0}, []float64{1.0, 3.0, 10.0}, nil},
		{"no rates", nil, nil, ErrEmptyRates},
		{"missing tail rate", []float64{5.0}, []float64{1.0}, ErrLengthMismatch},
		{"too many rates", []float64{5.0}, []float64{1.0, 1.0, 1.0}, ErrLengthMismatch},
		{"negative rate", []float64{5.0}, []float64{1.0, -2.0}, ErrNonPositiveRate},
		{"zero rate", []float64{5.0}, []float64{0.0, 1.0}, ErrNonPositiveRate},
		{"infinite rate", []float64{5.0}, []float64{1.0, math.Inf(1)}, ErrNonPositiveRate},
		{"NaN rate", []float64{5.0}, []float64{math.NaN(), 1.0}, ErrNonPositiveRate},
		{"decreasing breakpoints", []float64{5.0, 3.0}, []float64{1.0, 1.0, 1.0}, ErrNonIncreasingBreakpoints},
		{"duplicate breakpoints", []float64{5.0, 5.0}, []float64{1.0, 1.0, 1.0}, ErrNonIncreasingBreakpoints},
		{"zero breakpoint", []float64{0.0}, []float64{1.0, 1.0}, ErrNonIncreasingBreakpoints},
		{"negative breakpoint", []float64{-1.0}, []float64{1.0, 1.0}, ErrNonIncreasingBreakpoints},
		{"infinite breakpoint", []float64{math.Inf(1)}, []float64{1.0, 1.0}, ErrNonIncreasingBreakpoints},
	}
	for _, test := range tests {
		d, err := New(test.breakpoints, test.rates)
		if test.wantErr == nil {
			if err != nil {
				t.Fatalf("%v: unexpected construction error: %v", test.name, err)
			}
			if d.Intervals() != len(test.rates) {
				t.Fatalf("%v: want %v intervals, got %v", test.name, len(test.rates), d.Intervals())
			}
			continue
		}
		if !errors.Is(err, test.wantErr) {
			t.Fatalf("%v: want error %v, got %v", test.name, test.wantErr, err)
		}
	}
}

func TestNewFromDurations_Validation(t *testing.T) {
	tests := []struct {
		name      string
		durations []float64
		rates     []float64
		wantErr   error
	}{
		{"single finite interval", []float64{1.0}, []float64{2.0}, nil},
		{"infinite tail", []float64{0.5, math.Inf(1)}, []float64{0.25, 1.0}, nil},
		{"finite tail", []float64{0.5, 0.5, 1.0}, []float64{1.0, 3.0, 10.0}, nil},
		{"no intervals", nil, nil, ErrEmptyRates},
		{"length mismatch", []float64{1.0, 2.0}, []float64{1.0}, ErrLengthMismatch},
		{"zero duration", []float64{0.0, 1.0}, []float64{1.0, 1.0}, ErrNonPositiveDuration},
		{"negative duration", []float64{-1.0, 1.0}, []float64{1.0, 1.0}, ErrNonPositiveDuration},
		{"infinite inner duration", []float64{math.Inf(1), 1.0}, []float64{1.0, 1.0}, ErrNonPositiveDuration},
		{"NaN duration", []float64{math.NaN()}, []float64{1.0}, ErrNonPositiveDuration},
	}
	for _, test := range tests {
		_, err := NewFromDurations(test.durations, test.rates)
		if test.wantErr == nil {
			if err != nil {
				t.Fatalf("%v: unexpected construction error: %v", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.wantErr) {
			t.Fatalf("%v: want error %v, got %v", test.name, test.wantErr, err)
		}
	}
}

func TestNewFromDurations_MatchesBreakpointForm(t *testing.T) {
	fromDurations, err := NewFromDurations([]float64{1.0, math.Inf(1)}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	fromBreakpoints, err := New([]float64{1.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	for _, u := range []float64{0.01, 0.05, 0.3, 0.5, 0.9, 0.999} {
		a, err := fromDurations.InverseCDF(u)
		if err != nil {
			t.Fatalf("InverseCDF(%v): %v", u, err)
		}
		b, err := fromBreakpoints.InverseCDF(u)
		if err != nil {
			t.Fatalf("InverseCDF(%v): %v", u, err)
		}
		if a != b {
			t.Fatalf("duration and breakpoint forms disagree at u=%v: %g vs %g", u, a, b)
		}
	}
}

func TestCumulativeHazard_TwoIntervals(t *testing.T) {
	d, err := New([]float64{5.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	if h := d.CumulativeHazard(0.0); h != 0.0 {
		t.Fatalf("H(0): want 0, got %g", h)
	}
	if h := d.CumulativeHazard(-1.0); h != 0.0 {
		t.Fatalf("H(-1): want 0, got %g", h)
	}
	if h := d.CumulativeHazard(3.0); !almostEqual(h, 3.0) {
		t.Fatalf("H(3): want 3, got %g", h)
	}
	if h := d.CumulativeHazard(5.0); !almostEqual(h, 5.0) {
		t.Fatalf("H(5): want 5, got %g", h)
	}
	if h := d.CumulativeHazard(7.0); !almostEqual(h, 9.0) {
		t.Fatalf("H(7): want 9, got %g", h)
	}
}

func TestSurvival_Boundaries(t *testing.T) {
	d, err := New([]float64{0.5, 1.0}, []float64{1.0, 3.0, 10.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	if s := d.Survival(0.0); s != 1.0 {
		t.Fatalf("S(0): want 1, got %g", s)
	}
	if s := d.Survival(1000.0); s != 0.0 {
		t.Fatalf("S(1000): want underflow to 0, got %g", s)
	}
	prev := 1.0
	for x := 0.1; x <= 5.0; x += 0.1 {
		s := d.Survival(x)
		if s > prev {
			t.Fatalf("S not monotonically non-increasing at t=%v: %g > %g", x, s, prev)
		}
		prev = s
	}
}

func TestInverseCDF_ScenarioTwoIntervalEarlyRoot(t *testing.T) {
	d, err := New([]float64{5.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	v, err := d.InverseCDF(0.5)
	if err != nil {
		t.Fatalf("InverseCDF(0.5): %v", err)
	}
	if !almostEqual(v, math.Ln2) {
		t.Fatalf("InverseCDF(0.5): want ln(2)=%g, got %g", math.Ln2, v)
	}
}

func TestInverseCDF_ScenarioTwoIntervalLateRoot(t *testing.T) {
	d, err := New([]float64{1.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	v, err := d.InverseCDF(0.05)
	if err != nil {
		t.Fatalf("InverseCDF(0.05): %v", err)
	}
	// target hazard -ln(0.05); interval one consumes 1.0, the rest is
	// inverted at rate 2 past t=1.
	want := 1.0 + (-math.Log(0.05)-1.0)/2.0
	if !almostEqual(v, want) {
		t.Fatalf("InverseCDF(0.05): want %g, got %g", want, v)
	}
}

func TestInverseCDF_BoundaryHazard(t *testing.T) {
	d, err := New([]float64{5.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	// u = exp(-5) targets the hazard accumulated exactly at the breakpoint.
	v, err := d.InverseCDF(math.Exp(-5.0))
	if err != nil {
		t.Fatalf("InverseCDF(exp(-5)): %v", err)
	}
	if !almostEqual(v, 5.0) {
		t.Fatalf("InverseCDF(exp(-5)): want 5, got %g", v)
	}
}

func TestInverseCDF_DomainPolicy(t *testing.T) {
	d, err := New([]float64{1.0}, []float64{1.0, 2.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	v, err := d.InverseCDF(0.0)
	if err != nil || v != 0.0 {
		t.Fatalf("InverseCDF(0): want (0, nil), got (%g, %v)", v, err)
	}
	for _, u := range []float64{1.0, 1.5, -0.5, math.NaN(), math.Inf(1)} {
		if _, err := d.InverseCDF(u); !errors.Is(err, ErrUniformOutOfRange) {
			t.Fatalf("InverseCDF(%v): want ErrUniformOutOfRange, got %v", u, err)
		}
	}
	// a tiny draw targets a huge hazard and a correspondingly large time
	v, err = d.InverseCDF(1e-300)
	if err != nil {
		t.Fatalf("InverseCDF(1e-300): %v", err)
	}
	if v < 100.0 || math.IsInf(v, 1) {
		t.Fatalf("InverseCDF(1e-300): want large finite time, got %g", v)
	}
}

func TestInverseCDF_RoundTrip(t *testing.T) {
	d, err := New([]float64{0.5, 1.0, 4.0}, []float64{0.2, 1.0, 3.0, 0.7})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	for u := 0.001; u < 1.0; u += 0.001 {
		v, err := d.InverseCDF(u)
		if err != nil {
			t.Fatalf("InverseCDF(%v): %v", u, err)
		}
		s := d.Survival(v)
		if diff := math.Abs(s - u); diff > 1e-9*u {
			t.Fatalf("round trip at u=%v: survival %g differs by %g", u, s, diff)
		}
	}
}

func TestInverseCDF_Monotonicity(t *testing.T) {
	d, err := New([]float64{0.5, 1.0}, []float64{1.0, 3.0, 10.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	// smaller survival targets must map to strictly larger event times
	prev := math.Inf(1)
	for u := 0.01; u < 1.0; u += 0.01 {
		v, err := d.InverseCDF(u)
		if err != nil {
			t.Fatalf("InverseCDF(%v): %v", u, err)
		}
		if v >= prev {
			t.Fatalf("inversion not strictly decreasing in u at u=%v: %g >= %g", u, v, prev)
		}
		prev = v
	}
}

func TestInverseCDF_SingleRateReduction(t *testing.T) {
	const rate = 2.5
	d, err := New(nil, []float64{rate})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	oracle := distuv.Exponential{Rate: rate}
	for _, u := range []float64{0.001, 0.05, 0.25, 0.5, 0.75, 0.99} {
		v, err := d.InverseCDF(u)
		if err != nil {
			t.Fatalf("InverseCDF(%v): %v", u, err)
		}
		if want := -math.Log(u) / rate; v != want {
			t.Fatalf("InverseCDF(%v): want exact %g, got %g", u, want, v)
		}
		// gonum's quantile inverts the CDF, so the survival draw u
		// corresponds to the probability 1-u.
		if want := oracle.Quantile(1.0 - u); math.Abs(v-want) > 1e-9 {
			t.Fatalf("InverseCDF(%v): deviates from gonum oracle %g, got %g", u, want, v)
		}
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	d, err := New([]float64{1.0, 2.0}, []float64{1.0, 2.0, 3.0})
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	bp := d.Breakpoints()
	bp[0] = 99.0
	rates := d.Rates()
	rates[0] = 99.0
	if got := d.Breakpoints(); got[0] != 1.0 {
		t.Fatalf("breakpoints not immutable: got %v", got)
	}
	if got := d.Rates(); got[0] != 1.0 {
		t.Fatalf("rates not immutable: got %v", got)
	}
}
