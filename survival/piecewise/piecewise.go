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

// Package piecewise implements the piecewise exponential distribution, i.e.
// a time-to-event distribution whose hazard rate is constant within each of
// several contiguous time intervals. Event times are sampled via the
// inverse cumulative distribution.
package piecewise

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Construction and sampling errors.
var (
	ErrEmptyRates               = errors.New("rates must contain at least one element")
	ErrLengthMismatch           = errors.New("rates must have exactly one more element than breakpoints")
	ErrNonPositiveRate          = errors.New("rates must be strictly positive and finite")
	ErrNonIncreasingBreakpoints = errors.New("breakpoints must be positive and strictly increasing")
	ErrNonPositiveDuration      = errors.New("durations must be strictly positive; only the final duration may be infinite")
	ErrUniformOutOfRange        = errors.New("uniform draw must lie within the interval [0,1)")
)

// Distribution is an immutable piecewise-constant hazard function. The
// hazard rate is rates[i] on the interval [start[i], start[i+1]) with
// start[0] = 0; the last interval is unbounded. Cumulative hazards at the
// interval starts are precomputed so that inversion reduces to a search
// over the hazard table and a single division.
type Distribution struct {
	rates  []float64 // per-interval hazard rates
	start  []float64 // interval start times; start[0] == 0
	hazard []float64 // cumulative hazard at each interval start; hazard[0] == 0
}

// New builds a distribution from interval breakpoints and hazard rates.
// The breakpoints are the upper boundaries of the bounded intervals and
// must be positive and strictly increasing; rates carries one rate per
// interval including the unbounded tail, i.e. len(rates) must equal
// len(breakpoints)+1. An empty breakpoint list with a single rate yields a
// plain exponential distribution.
func New(breakpoints, rates []float64) (*Distribution, error) {
	if len(rates) == 0 {
		return nil, ErrEmptyRates
	}
	if len(rates) != len(breakpoints)+1 {
		return nil, fmt.Errorf("%w; got %v rates for %v breakpoints", ErrLengthMismatch, len(rates), len(breakpoints))
	}
	for i, r := range rates {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return nil, fmt.Errorf("%w; rate %v at index %v", ErrNonPositiveRate, r, i)
		}
	}
	prev := 0.0
	for i, b := range breakpoints {
		if math.IsNaN(b) || math.IsInf(b, 0) || b <= prev {
			return nil, fmt.Errorf("%w; breakpoint %v at index %v", ErrNonIncreasingBreakpoints, b, i)
		}
		prev = b
	}

	n := len(rates)
	d := &Distribution{
		rates:  append([]float64(nil), rates...),
		start:  make([]float64, n),
		hazard: make([]float64, n),
	}
	for i := 1; i < n; i++ {
		d.start[i] = breakpoints[i-1]
		d.hazard[i] = d.hazard[i-1] + rates[i-1]*(d.start[i]-d.start[i-1])
	}
	return d, nil
}

// NewFromDurations builds a distribution from interval lengths instead of
// boundaries. Durations and rates must have the same length; all durations
// must be strictly positive and, except for the last one, finite. The final
// duration may be +Inf to mark the open-ended tail explicitly; a finite
// final duration is also accepted, in which case the final rate extends
// beyond it.
func NewFromDurations(durations, rates []float64) (*Distribution, error) {
	if len(durations) == 0 {
		return nil, ErrEmptyRates
	}
	if len(durations) != len(rates) {
		return nil, fmt.Errorf("%w; got %v rates for %v durations", ErrLengthMismatch, len(rates), len(durations))
	}
	last := len(durations) - 1
	for i, w := range durations {
		if math.IsNaN(w) || w <= 0 || (math.IsInf(w, 1) && i < last) {
			return nil, fmt.Errorf("%w; duration %v at index %v", ErrNonPositiveDuration, w, i)
		}
	}

	breakpoints := make([]float64, 0, last)
	acc := 0.0
	for _, w := range durations[:last] {
		acc += w
		breakpoints = append(breakpoints, acc)
	}
	return New(breakpoints, rates)
}

// Intervals returns the number of constant-rate intervals including the
// unbounded tail.
func (d *Distribution) Intervals() int {
	return len(d.rates)
}

// Rates returns a copy of the per-interval hazard rates.
func (d *Distribution) Rates() []float64 {
	return append([]float64(nil), d.rates...)
}

// Breakpoints returns a copy of the interval boundaries.
func (d *Distribution) Breakpoints() []float64 {
	return append([]float64(nil), d.start[1:]...)
}

// CumulativeHazard computes H(t), the integral of the hazard rate over
// [0,t]. The function is monotonically non-decreasing with H(0) = 0.
func (d *Distribution) CumulativeHazard(t float64) float64 {
	if t <= 0 {
		return 0
	}
	// start[0] == 0 < t, so the search never returns index 0.
	i := sort.SearchFloat64s(d.start, t) - 1
	return d.hazard[i] + d.rates[i]*(t-d.start[i])
}

// Survival computes S(t) = exp(-H(t)), the probability that the event time
// exceeds t. S(0) = 1 and S(t) tends to zero for large t since the tail
// rate is strictly positive.
func (d *Distribution) Survival(t float64) float64 {
	return math.Exp(-d.CumulativeHazard(t))
}

// InverseCDF maps a uniform draw u in [0,1) to an event time. The draw is
// interpreted as the survival-probability target: the returned t satisfies
// Survival(t) == u, i.e. the cumulative-hazard target is -ln(u). A draw of
// exactly 0 returns t = 0 without walking the intervals; a draw of 1 maps
// to an infinite hazard target and is rejected, as is anything outside
// [0,1].
func (d *Distribution) InverseCDF(u float64) (float64, error) {
	if math.IsNaN(u) || u < 0 || u >= 1 {
		return 0, fmt.Errorf("%w; got %v", ErrUniformOutOfRange, u)
	}
	if u == 0 {
		return 0, nil
	}
	return d.fromHazard(-math.Log(u)), nil
}

// fromHazard locates the interval whose cumulative-hazard range contains
// the target and inverts the linear segment. The target is strictly
// positive and the tail rate is strictly positive over an unbounded width,
// so the result is always finite.
func (d *Distribution) fromHazard(target float64) float64 {
	i := sort.Search(len(d.hazard), func(i int) bool { return d.hazard[i] > target }) - 1
	return d.start[i] + (target-d.hazard[i])/d.rates[i]
}
