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

	"github.com/0xsoniclabs/simtrial/logger"
	"github.com/0xsoniclabs/simtrial/replayer"
	"github.com/0xsoniclabs/simtrial/utils"
	"github.com/urfave/cli/v2"
)

// ReplayCommand replays a recorded fixture file against the distribution and
// checks the event times within tolerance.
var ReplayCommand = cli.Command{
	Action:    replayAction,
	Name:      "replay",
	Usage:     "replays a recorded fixture file and verifies the event times",
	ArgsUsage: "<fixture-file>",
	Flags: []cli.Flag{
		&utils.RatesFlag,
		&utils.BreakpointsFlag,
		&utils.DistributionFileFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simtrial-surv replay command reads a two-column fixture file of uniform
draws and reference event times, re-evaluates the inverse CDF for each draw,
and fails when any event time deviates beyond tolerance.`,
}

// replayAction replays the fixture file given as argument.
func replayAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.OneFileArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Surv Replay")

	dist, err := buildDistribution(cfg)
	if err != nil {
		return fmt.Errorf("cannot construct distribution; %v", err)
	}

	result, err := replayer.Replay(dist, cfg.Args[0], log)
	if err != nil {
		return fmt.Errorf("replay failed; %v", err)
	}
	if result.Mismatches > 0 {
		return fmt.Errorf("replay found %v mismatched event times out of %v draws (max. relative error: %v)",
			result.Mismatches, result.Draws, result.MaxRelError)
	}
	log.Noticef("All %v event times match", result.Draws)
	return nil
}
