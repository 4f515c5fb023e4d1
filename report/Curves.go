// Package report renders the learning curves of a training run, either
// as PNG images or as an interactive HTML page
package report

import (
	"fmt"

	"github.com/samuelfneumann/treasurehunt/experiment"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Image dimensions of saved curves
const (
	width  = 10 * vg.Inch
	height = 4 * vg.Inch
)

// RewardPlot plots the reward of each episode along with its rolling
// mean over window episodes
func RewardPlot(stats experiment.Statistics, window int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Episode Reward"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Reward"

	if err := addLine(p, 0, "reward", stats.Rewards()); err != nil {
		return nil, fmt.Errorf("rewardPlot: %w", err)
	}
	name := fmt.Sprintf("mean over %d episodes", window)
	if err := addLine(p, 1, name, stats.RollingRewards(window)); err != nil {
		return nil, fmt.Errorf("rewardPlot: %w", err)
	}
	return p, nil
}

// SuccessPlot plots the success rate (%) over a rolling window of
// episodes
func SuccessPlot(stats experiment.Statistics, window int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Success Rate (%d episode window)", window)
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Success Rate (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	rates := stats.RollingSuccessRates(window)
	if err := addLine(p, 2, "success rate", rates); err != nil {
		return nil, fmt.Errorf("successPlot: %w", err)
	}
	return p, nil
}

// SaveCurves saves the reward and success-rate plots of a run as
// prefix_reward.png and prefix_success.png and returns the names of the
// files written
func SaveCurves(prefix string, stats experiment.Statistics,
	window int) ([]string, error) {
	if len(stats.History) == 0 {
		return nil, fmt.Errorf("saveCurves: no episodes to plot")
	}

	reward, err := RewardPlot(stats, window)
	if err != nil {
		return nil, err
	}
	success, err := SuccessPlot(stats, window)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, out := range []struct {
		suffix string
		p      *plot.Plot
	}{
		{"_reward.png", reward},
		{"_success.png", success},
	} {
		filename := prefix + out.suffix
		if err := out.p.Save(width, height, filename); err != nil {
			return files, fmt.Errorf("saveCurves: could not save %s: %w",
				filename, err)
		}
		files = append(files, filename)
	}
	return files, nil
}

// addLine adds a line through ys at episodes 1, 2, ... to p using the
// i-th default colour
func addLine(p *plot.Plot, i int, name string, ys []float64) error {
	pts := make(plotter.XYs, len(ys))
	for j, y := range ys {
		pts[j] = plotter.XY{X: float64(j + 1), Y: y}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("addLine: %w", err)
	}
	line.Color = plotutil.Color(i)
	line.Width = vg.Points(1)

	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}
