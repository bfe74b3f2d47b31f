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

// Package replayer cross-checks the inverse-CDF sampler against reference
// fixtures recorded from a trusted implementation.
package replayer

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/simtrial/logger"
	"github.com/0xsoniclabs/simtrial/survival/piecewise"
)

// Tolerances for comparing replayed event times with the reference column.
const (
	absTol = 1e-14
	relTol = 1e-12
)

// Result summarizes one replay run.
type Result struct {
	Draws       int     // number of replayed uniforms
	Mismatches  int     // draws outside the comparison tolerance
	MaxRelError float64 // largest observed relative error
}

// LoadColumns parses a whitespace-separated numeric table from a fixture
// file. Blank lines are skipped; every remaining line must carry the same
// number of columns.
func LoadColumns(filename string) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening fixture file %v; %v", filename, err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	var columns [][]float64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if columns == nil {
			columns = make([][]float64, len(fields))
		} else if len(fields) != len(columns) {
			return nil, fmt.Errorf("line %v of %v has %v columns; expected %v", line, filename, len(fields), len(columns))
		}
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse float on line %v of %v; %v", line, filename, err)
			}
			columns[i] = append(columns[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading fixture file %v; %v", filename, err)
	}
	if columns == nil {
		return nil, fmt.Errorf("fixture file %v is empty", filename)
	}
	return columns, nil
}

// Replay pushes the uniform column of a fixture file through the inverse
// CDF of d and compares the results with the reference column.
func Replay(d *piecewise.Distribution, filename string, log logger.Logger) (Result, error) {
	columns, err := LoadColumns(filename)
	if err != nil {
		return Result{}, err
	}
	if len(columns) != 2 {
		return Result{}, fmt.Errorf("fixture file %v must have two columns; got %v", filename, len(columns))
	}

	uniforms, expected := columns[0], columns[1]
	res := Result{Draws: len(uniforms)}
	for i, u := range uniforms {
		v, err := d.InverseCDF(u)
		if err != nil {
			return Result{}, fmt.Errorf("replaying draw %v failed; %w", i, err)
		}
		if rel := relError(v, expected[i]); rel > res.MaxRelError {
			res.MaxRelError = rel
		}
		if !closeEnough(v, expected[i]) {
			res.Mismatches++
			log.Debugf("draw %v: uniform %v maps to %v; reference %v", i, u, v, expected[i])
		}
	}
	log.Infof("replayed %v draws; %v mismatches; max relative error %v", res.Draws, res.Mismatches, res.MaxRelError)
	return res, nil
}

// closeEnough reports whether two event times agree within the combined absolute
// and relative tolerance.
func closeEnough(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= absTol {
		return true
	}
	return diff <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

// relError computes the relative deviation of a from the reference b.
func relError(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff == 0 {
		return 0
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return math.Inf(1)
	}
	return diff / scale
}
