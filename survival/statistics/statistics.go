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

// Package statistics summarizes batches of sampled event times.
package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a batch of sampled event times.
type Summary struct {
	Count    int
	Mean     float64
	Variance float64
	StdDev   float64
	Min      float64
	Max      float64
	P50      float64
	P90      float64
	P99      float64
}

// Summarize computes moments and quantiles of the sampled event times. An
// empty batch yields a zero summary.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	mean, variance := stat.MeanVariance(sorted, nil)
	return Summary{
		Count:    len(sorted),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		P50:      stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:      stat.Quantile(0.90, stat.Empirical, sorted, nil),
		P99:      stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}

// EmpiricalSurvival evaluates the fraction of samples exceeding t on an
// equidistant grid of n segments between zero and the largest sample. The
// curve is returned as (t, S(t)) points in the piecewise-linear
// representation used by the visualizer.
func EmpiricalSurvival(samples []float64, n int) [][2]float64 {
	if len(samples) == 0 || n <= 0 {
		return nil
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	max := sorted[len(sorted)-1]
	fn := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := max * float64(i) / float64(n)
		// number of samples strictly greater than t
		j := sort.Search(len(sorted), func(k int) bool { return sorted[k] > t })
		fn = append(fn, [2]float64{t, float64(len(sorted)-j) / float64(len(sorted))})
	}
	return fn
}
