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

// Package recorder persists distribution models and captures regression
// fixtures for the piecewise exponential sampler.
package recorder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xsoniclabs/simtrial/survival/piecewise"
	"github.com/0xsoniclabs/simtrial/survival/sampler"
)

// distributionFileId tags model files so that foreign JSON is rejected.
const distributionFileId = "distribution"

// DistributionJSON is the JSON file format for a piecewise exponential model.
type DistributionJSON struct {
	FileId      string    `json:"FileId"`      // file identification
	Breakpoints []float64 `json:"breakpoints"` // interval boundaries
	Rates       []float64 `json:"rates"`       // per-interval hazard rates
}

// NewDistributionJSON produces the JSON struct for a distribution.
func NewDistributionJSON(d *piecewise.Distribution) DistributionJSON {
	return DistributionJSON{
		FileId:      distributionFileId,
		Breakpoints: d.Breakpoints(),
		Rates:       d.Rates(),
	}
}

// ReadDistribution reads a model file in JSON format and validates it into
// a distribution.
func ReadDistribution(filename string) (*piecewise.Distribution, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening distribution file %v; %v", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading distribution file; %v", err)
	}
	var model DistributionJSON
	if err := json.Unmarshal(contents, &model); err != nil {
		return nil, fmt.Errorf("cannot unmarshal distribution; %v", err)
	}
	if model.FileId != distributionFileId {
		return nil, fmt.Errorf("file %v is not a distribution file", filename)
	}
	return piecewise.New(model.Breakpoints, model.Rates)
}

// Write stores the model in JSON format.
func (j *DistributionJSON) Write(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot create distribution file; %v", fErr)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	jOut, jErr := json.MarshalIndent(j, "", "    ")
	if jErr != nil {
		return fmt.Errorf("failed to convert JSON distribution; %v", jErr)
	}
	if _, wErr := f.Write(jOut); wErr != nil {
		return fmt.Errorf("failed to write distribution file; %v", wErr)
	}
	return nil
}

// FixturePair couples a uniform draw with the event time it maps to.
type FixturePair struct {
	Uniform   float64
	EventTime float64
}

// RecordFixture draws n uniforms from src, maps each through the inverse
// CDF of d and returns the resulting pairs for fixture capture.
func RecordFixture(d *piecewise.Distribution, src sampler.UniformSource, n int) ([]FixturePair, error) {
	pairs := make([]FixturePair, n)
	for i := 0; i < n; i++ {
		u := src.Uniform()
		v, err := d.InverseCDF(u)
		if err != nil {
			return nil, fmt.Errorf("fixture draw %v failed; %w", i, err)
		}
		pairs[i] = FixturePair{Uniform: u, EventTime: v}
	}
	return pairs, nil
}

// WriteFixture stores pairs as two-column whitespace-separated text, the
// format consumed by the replayer. Full float64 precision is preserved so
// that a replay reproduces the recorded times bit for bit.
func WriteFixture(filename string, pairs []FixturePair) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot create fixture file; %v", fErr)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	w := bufio.NewWriter(f)
	for _, p := range pairs {
		if _, wErr := fmt.Fprintf(w, "%.17g %.17g\n", p.Uniform, p.EventTime); wErr != nil {
			return fmt.Errorf("failed to write fixture file; %v", wErr)
		}
	}
	if fErr := w.Flush(); fErr != nil {
		return fmt.Errorf("failed to flush fixture file; %v", fErr)
	}
	return nil
}
