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
	"github.com/0xsoniclabs/simtrial/recorder"
	"github.com/0xsoniclabs/simtrial/survival/piecewise"
	"github.com/0xsoniclabs/simtrial/utils"
)

// buildDistribution constructs the distribution from the configuration. A
// model file takes precedence over the rates/breakpoints flags.
func buildDistribution(cfg *utils.Config) (*piecewise.Distribution, error) {
	if cfg.DistributionFile != "" {
		return recorder.ReadDistribution(cfg.DistributionFile)
	}
	return piecewise.New(cfg.Breakpoints, cfg.Rates)
}
