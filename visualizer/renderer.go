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

// Package visualizer renders the survival and hazard curves of a piecewise
// exponential distribution with a local web-server.
package visualizer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/0xsoniclabs/simtrial/survival/piecewise"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const survivalRef = "survival-curve"
const hazardRef = "cumulative-hazard"

// number of grid segments for curve evaluation
const curveSegments = 200

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Simtrial: Piecewise Exponential Distribution</title>
  </head>
  <body>
    <h1>Simtrial: Piecewise Exponential Distribution</h1>
    <ul>
    <li> <h3> <a href="/` + survivalRef + `"> Survival Curve </a> </h3> </li>
    <li> <h3> <a href="/` + hazardRef + `"> Cumulative Hazard </a> </h3> </li>
    </ul>
</body>
</html>
`

// viewState keeps the distribution under display and its plotting horizon.
type viewState struct {
	dist      *piecewise.Distribution
	empirical [][2]float64 // optional empirical survival overlay
	horizon   float64      // time at which the survival probability drops to 0.1%
}

// state of the visualizer for the web server
var theViewState *viewState

// setViewState populates the visualizer state for the render handlers.
func setViewState(d *piecewise.Distribution, empirical [][2]float64) error {
	if d == nil {
		return errors.New("no distribution provided")
	}
	horizon, err := d.InverseCDF(0.001)
	if err != nil {
		return err
	}
	theViewState = &viewState{
		dist:      d,
		empirical: empirical,
		horizon:   horizon,
	}
	return nil
}

// currentView fetches the populated visualizer state.
func currentView() (*viewState, error) {
	if theViewState == nil {
		return nil, errors.New("visualizer state is not set")
	}
	return theViewState, nil
}

// curvePoints evaluates fn on an equidistant grid of n segments over
// [0, horizon].
func curvePoints(n int, horizon float64, fn func(float64) float64) [][2]float64 {
	points := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x := horizon * float64(i) / float64(n)
		points = append(points, [2]float64{x, fn(x)})
	}
	return points
}

// convertCurveData converts curve points to chart points.
func convertCurveData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// newCurveChart creates a line chart with the standard options.
func newCurveChart(title string) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}))
	return chart
}

// newSurvivalChart creates a line chart for the survival function with an
// optional empirical overlay.
func newSurvivalChart(view *viewState) *charts.Line {
	chart := newCurveChart("Survival Curve")
	analytic := curvePoints(curveSegments, view.horizon, view.dist.Survival)
	chart.AddSeries("Analytic", convertCurveData(analytic))
	if len(view.empirical) > 0 {
		chart.AddSeries("Empirical", convertCurveData(view.empirical))
	}
	return chart
}

// newHazardChart creates a line chart for the cumulative hazard function.
func newHazardChart(view *viewState) *charts.Line {
	chart := newCurveChart("Cumulative Hazard")
	hazard := curvePoints(curveSegments, view.horizon, view.dist.CumulativeHazard)
	chart.AddSeries("H(t)", convertCurveData(hazard))
	return chart
}

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// renderSurvival renders the survival curve.
func renderSurvival(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newSurvivalChart(view).Render(w)
}

// renderHazard renders the cumulative hazard curve.
func renderHazard(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	_ = newHazardChart(view).Render(w)
}

// FireUpWeb produces a data model for the distribution and visualizes it
// with a local web-server.
func FireUpWeb(d *piecewise.Distribution, empirical [][2]float64, addr string) error {
	if err := setViewState(d, empirical); err != nil {
		return err
	}

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+survivalRef, renderSurvival)
	http.HandleFunc("/"+hazardRef, renderHazard)
	return http.ListenAndServe(":"+addr, nil)
}
