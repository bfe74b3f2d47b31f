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

// Package utils provides the command-line configuration layer shared by the
// simtrial apps.
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/0xsoniclabs/simtrial/logger"
	"github.com/urfave/cli/v2"
)

// Command-line flags of the simtrial apps.
var (
	RatesFlag = cli.StringFlag{
		Name:  "rates",
		Usage: "comma-separated hazard rates, one per interval including the unbounded tail",
		Value: "1.0",
	}
	BreakpointsFlag = cli.StringFlag{
		Name:  "breakpoints",
		Usage: "comma-separated interval boundaries; empty for a plain exponential",
	}
	DistributionFileFlag = cli.StringFlag{
		Name:  "distribution-file",
		Usage: "read the distribution from a JSON model file instead of flags",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "set the seed of the random generator; a negative value derives the seed from the current time",
		Value: -1,
	}
	SamplesFlag = cli.IntFlag{
		Name:    "samples",
		Aliases: []string{"n"},
		Usage:   "number of event times to draw",
		Value:   1000,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port for the visualization web-server",
		Value: "8080",
	}
)

// ArgumentMode determines the expected positional arguments of a command.
type ArgumentMode int

// ArgumentMode for commands without and with a single file argument.
const (
	NoArgs ArgumentMode = iota
	OneFileArg
)

// Config carries the parsed command-line configuration.
type Config struct {
	LogLevel         string    // level of the logging
	Rates            []float64 // per-interval hazard rates
	Breakpoints      []float64 // interval boundaries
	DistributionFile string    // JSON model file, overrides rates/breakpoints
	RandomSeed       int64     // seed for the random generator
	Samples          int       // number of draws
	Output           string    // output file
	Port             string    // web-server port
	Args             []string  // positional arguments
}

// NewConfig parses the command-line context into a configuration and checks
// the number of positional arguments against the mode.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	switch mode {
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return nil, fmt.Errorf("command expects no positional arguments; got %v", ctx.Args().Len())
		}
	case OneFileArg:
		if ctx.Args().Len() != 1 {
			return nil, fmt.Errorf("command expects one file argument; got %v", ctx.Args().Len())
		}
	default:
		return nil, fmt.Errorf("unknown argument mode %v", mode)
	}

	rates, err := ParseFloatList(ctx.String(RatesFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid rates flag; %v", err)
	}
	breakpoints, err := ParseFloatList(ctx.String(BreakpointsFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid breakpoints flag; %v", err)
	}

	seed := ctx.Int64(RandomSeedFlag.Name)
	if seed < 0 {
		seed = time.Now().UnixNano()
	}

	return &Config{
		LogLevel:         ctx.String(logger.LogLevelFlag.Name),
		Rates:            rates,
		Breakpoints:      breakpoints,
		DistributionFile: ctx.String(DistributionFileFlag.Name),
		RandomSeed:       seed,
		Samples:          ctx.Int(SamplesFlag.Name),
		Output:           ctx.String(OutputFlag.Name),
		Port:             ctx.String(PortFlag.Name),
		Args:             ctx.Args().Slice(),
	}, nil
}

// ParseFloatList parses a comma-separated list of floating-point numbers.
// An empty string yields an empty list.
func ParseFloatList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a number; %v", field, err)
		}
		values = append(values, v)
	}
	return values, nil
}
