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
	"github.com/0xsoniclabs/simtrial/visualizer"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand starts a web-server rendering the survival and cumulative
// hazard curves of the distribution.
var VisualizeCommand = cli.Command{
	Action: visualizeAction,
	Name:   "visualize",
	Usage:  "renders the survival and cumulative hazard curves in a web-browser",
	Flags: []cli.Flag{
		&utils.RatesFlag,
		&utils.BreakpointsFlag,
		&utils.DistributionFileFlag,
		&utils.RandomSeedFlag,
		&utils.SamplesFlag,
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simtrial-surv visualize command starts a web-server rendering the
analytic survival curve, an empirical curve estimated from sampled event
times, and the cumulative hazard function.`,
}

// visualizeAction samples an empirical curve and fires up the web-server.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Surv Visualize")

	dist, err := buildDistribution(cfg)
	if err != nil {
		return fmt.Errorf("cannot construct distribution; %v", err)
	}

	src := sampler.NewRandSource(rand.New(rand.NewSource(cfg.RandomSeed)))
	samples, err := sampler.SampleN(dist, src, cfg.Samples)
	if err != nil {
		return fmt.Errorf("sampling for the empirical curve failed; %v", err)
	}
	empirical := statistics.EmpiricalSurvival(samples, len(samples))

	log.Noticef("Open web-browser on localhost:%v", cfg.Port)
	log.Notice("Cancel visualize with Ctrl+C")
	return visualizer.FireUpWeb(dist, empirical, cfg.Port)
}
