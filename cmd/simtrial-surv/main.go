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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/simtrial/cmd/simtrial-surv/surv"
	"github.com/urfave/cli/v2"
)

var survApp = &cli.App{
	Name:      "Piecewise-exponential survival sampling tool",
	HelpName:  "simtrial-surv",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&surv.SampleCommand,
		&surv.RecordCommand,
		&surv.ReplayCommand,
		&surv.VisualizeCommand,
	},
}

func main() {
	if err := survApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
