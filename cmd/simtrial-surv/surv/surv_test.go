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
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/simtrial/recorder"
	"github.com/0xsoniclabs/simtrial/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// newTestApp wires the commands into an app for driving them in tests.
func newTestApp() *cli.App {
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		&SampleCommand,
		&RecordCommand,
		&ReplayCommand,
		&VisualizeCommand,
	}
	return app
}

func TestSurvSample_RunsWithDefaultFlags(t *testing.T) {
	args := utils.NewArgs("simtrial-surv").
		Arg("sample").
		Flag(utils.RatesFlag.Name, "1.0,2.0").
		Flag(utils.BreakpointsFlag.Name, "5.0").
		Flag(utils.RandomSeedFlag.Name, int64(42)).
		Flag(utils.SamplesFlag.Name, 100).
		Flag("log", "CRITICAL").
		Build()

	err := newTestApp().Run(args)
	assert.NoError(t, err)
}

func TestSurvSample_FailsOnInvalidDistribution(t *testing.T) {
	args := utils.NewArgs("simtrial-surv").
		Arg("sample").
		Flag(utils.RatesFlag.Name, "1.0").
		Flag(utils.BreakpointsFlag.Name, "5.0").
		Flag("log", "CRITICAL").
		Build()

	err := newTestApp().Run(args)
	assert.ErrorContains(t, err, "cannot construct distribution")
}

func TestSurvRecord_WritesFixtureAndModel(t *testing.T) {
	output := filepath.Join(t.TempDir(), "fixture.txt")
	args := utils.NewArgs("simtrial-surv").
		Arg("record").
		Flag(utils.RatesFlag.Name, "1.0,2.0").
		Flag(utils.BreakpointsFlag.Name, "5.0").
		Flag(utils.RandomSeedFlag.Name, int64(7)).
		Flag(utils.SamplesFlag.Name, 25).
		Flag(utils.OutputFlag.Name, output).
		Flag("log", "CRITICAL").
		Build()

	require.NoError(t, newTestApp().Run(args))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	dist, err := recorder.ReadDistribution(output + ".json")
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0}, dist.Breakpoints())
	assert.Equal(t, []float64{1.0, 2.0}, dist.Rates())
}

func TestSurvReplay_AcceptsRecordedFixture(t *testing.T) {
	output := filepath.Join(t.TempDir(), "fixture.txt")
	record := utils.NewArgs("simtrial-surv").
		Arg("record").
		Flag(utils.RatesFlag.Name, "1.0,2.0").
		Flag(utils.BreakpointsFlag.Name, "5.0").
		Flag(utils.RandomSeedFlag.Name, int64(123)).
		Flag(utils.SamplesFlag.Name, 50).
		Flag(utils.OutputFlag.Name, output).
		Flag("log", "CRITICAL").
		Build()
	require.NoError(t, newTestApp().Run(record))

	replay := utils.NewArgs("simtrial-surv").
		Arg("replay").
		Flag(utils.DistributionFileFlag.Name, output+".json").
		Flag("log", "CRITICAL").
		Arg(output).
		Build()
	assert.NoError(t, newTestApp().Run(replay))
}

func TestSurvReplay_RejectsCorruptedFixture(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "fixture.txt")
	require.NoError(t, os.WriteFile(fixture, []byte("0.5 99.0\n"), 0644))

	args := utils.NewArgs("simtrial-surv").
		Arg("replay").
		Flag(utils.RatesFlag.Name, "1.0").
		Flag("log", "CRITICAL").
		Arg(fixture).
		Build()
	err := newTestApp().Run(args)
	assert.ErrorContains(t, err, "mismatched event times")
}

func TestSurvReplay_RequiresFixtureArgument(t *testing.T) {
	args := utils.NewArgs("simtrial-surv").
		Arg("replay").
		Flag("log", "CRITICAL").
		Build()
	err := newTestApp().Run(args)
	assert.ErrorContains(t, err, "one file argument")
}

func TestSurvBuildDistribution_ModelFileTakesPrecedence(t *testing.T) {
	model := recorder.DistributionJSON{
		FileId:      "distribution",
		Breakpoints: []float64{1.0},
		Rates:       []float64{2.0, 3.0},
	}
	filename := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, model.Write(filename))

	cfg := &utils.Config{
		DistributionFile: filename,
		Rates:            []float64{1.0},
	}
	dist, err := buildDistribution(cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 3.0}, dist.Rates())

	cfg = &utils.Config{Rates: []float64{1.0}}
	dist, err = buildDistribution(cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, dist.Rates())
	assert.Empty(t, dist.Breakpoints())
}
