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

// Package sampler draws event times from a piecewise exponential
// distribution using an injected source of uniform randomness.
package sampler

//go:generate mockgen -source sampler.go -destination uniform_source_mock.go -package sampler

import (
	"math/rand"

	"github.com/0xsoniclabs/simtrial/survival/piecewise"
)

// UniformSource produces one uniform draw in the open interval (0,1) per
// call. A fixed seed and a fixed call sequence must reproduce the same draw
// sequence. Implementations are not safe for concurrent use unless stated
// otherwise; give each worker its own source.
type UniformSource interface {
	Uniform() float64
}

// randSource adapts a math/rand generator to the UniformSource capability.
type randSource struct {
	rg *rand.Rand
}

// NewRandSource wraps rg as a uniform source. Draws of exactly zero are
// re-drawn so that the source honours the open interval.
func NewRandSource(rg *rand.Rand) UniformSource {
	return &randSource{rg: rg}
}

func (s *randSource) Uniform() float64 {
	for {
		if u := s.rg.Float64(); u > 0 {
			return u
		}
	}
}

// fixedSource replays a recorded sequence of uniforms, wrapping around at
// the end; used to verify sampled event times against reference fixtures.
type fixedSource struct {
	draws []float64
	next  int
}

// NewFixedSource returns a source replaying the given draws in order.
func NewFixedSource(draws []float64) UniformSource {
	return &fixedSource{draws: append([]float64(nil), draws...)}
}

func (s *fixedSource) Uniform() float64 {
	if len(s.draws) == 0 {
		return 0.5
	}
	u := s.draws[s.next]
	s.next = (s.next + 1) % len(s.draws)
	return u
}

// Sample draws a single event time from d, consuming exactly one uniform
// from src.
func Sample(d *piecewise.Distribution, src UniformSource) (float64, error) {
	return d.InverseCDF(src.Uniform())
}

// SampleN draws n independent event times. The output order matches the
// draw order of the source, so a seeded source makes runs reproducible.
func SampleN(d *piecewise.Distribution, src UniformSource, n int) ([]float64, error) {
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		t, err := Sample(d, src)
		if err != nil {
			return nil, err
		}
		samples[i] = t
	}
	return samples, nil
}
