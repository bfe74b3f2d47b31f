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
	"github.com/0xsoniclabs/simtrial/recorder"
	"github.com/0xsoniclabs/simtrial/survival/sampler"
	"github.com/0xsoniclabs/simtrial/utils"
	"github.com/urfave/cli/v2"
)

// RecordCommand records uniform draws and their event times to a fixture
// file, together with the distribution's JSON model.
var RecordCommand = cli.Command{
	Action: recordAction,
	Name:   "record",
	Usage:  "records a fixture of uniform draws and event times",
	Flags: []cli.Flag{
		&utils.RatesFlag,
		&utils.BreakpointsFlag,
		&utils.DistributionFileFlag,
		&utils.RandomSeedFlag,
		&utils.SamplesFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The simtrial-surv record command writes a two-column fixture file of uniform
draws and the event times they map to, and stores the distribution model next
to it as <output>.json. The fixture can later be checked with the replay
command.`,
}

// recordAction records a fixture file and the distribution model.
func recordAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Surv Record")

	dist, err := buildDistribution(cfg)
	if err != nil {
		return fmt.Errorf("cannot construct distribution; %v", err)
	}

	output := cfg.Output
	if output == "" {
		output = "./fixture.txt"
	}

	log.Noticef("Recording %v draws (seed: %v)", cfg.Samples, cfg.RandomSeed)
	src := sampler.NewRandSource(rand.New(rand.NewSource(cfg.RandomSeed)))
	pairs, err := recorder.RecordFixture(dist, src, cfg.Samples)
	if err != nil {
		return fmt.Errorf("recording failed; %v", err)
	}
	if err := recorder.WriteFixture(output, pairs); err != nil {
		return fmt.Errorf("cannot write fixture file; %v", err)
	}
	log.Noticef("Fixture written to %v", output)

	model := recorder.NewDistributionJSON(dist)
	if err := model.Write(output + ".json"); err != nil {
		return fmt.Errorf("cannot write distribution model; %v", err)
	}
	log.Noticef("Distribution model written to %v.json", output)
	return nil
}
