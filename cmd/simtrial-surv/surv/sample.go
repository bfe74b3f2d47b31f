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

package surv

import (
	"fmt"
	"math/rand"

	"github.com/0xsoniclabs/simtrial/logger"
	"github.com/0xsoniclabs/simtrial/survival/sampler"
	"github.com/0xsoniclabs/simtrial/survival/statistics"
	"github.com/0xsoniclabs/simtrial/utils"
	"github.com/urfave/cli/v2"
)

// SampleCommand draws event times from a piecewise-exponential distribution
// and reports summary statistics.
var SampleCommand = cli.Command{
	Action: sampleAction,
	Name:   "sample",
	Usage:  "draws event times and reports summary statistics",
	Flags: []cli.Flag{
		&utils.RatesFlag,
		&utils.BreakpointsFlag,
		&utils.DistributionFileFlag,
		&utils.RandomSeedFlag,
		&utils.SamplesFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simtrial-surv sample command draws event times from the configured
distribution using inverse-CDF sampling and prints their summary statistics.`,
}

// sampleAction draws samples and logs their summary.
func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Surv Sample")

	dist, err := buildDistribution(cfg)
	if err != nil {
		return fmt.Errorf("cannot construct distribution; %v", err)
	}

	log.Noticef("Drawing %v event times (seed: %v)", cfg.Samples, cfg.RandomSeed)
	src := sampler.NewRandSource(rand.New(rand.NewSource(cfg.RandomSeed)))
	samples, err := sampler.SampleN(dist, src, cfg.Samples)
	if err != nil {
		return fmt.Errorf("sampling failed; %v", err)
	}

	summary := statistics.Summarize(samples)
	log.Noticef("Count:     %v", summary.Count)
	log.Noticef("Mean:      %v", summary.Mean)
	log.Noticef("Std. dev.: %v", summary.StdDev)
	log.Noticef("Min / Max: %v / %v", summary.Min, summary.Max)
	log.Noticef("P50:       %v", summary.P50)
	log.Noticef("P90:       %v", summary.P90)
	log.Noticef("P99:       %v", summary.P99)
	return nil
}
