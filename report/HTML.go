package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/treasurehunt/experiment"
)

// WriteHTML writes an HTML page with interactive charts of the reward,
// episode length and rolling success rate of a run to w
func WriteHTML(w io.Writer, title string, stats experiment.Statistics,
	window int) error {
	if len(stats.History) == 0 {
		return fmt.Errorf("writeHTML: no episodes to chart")
	}

	episodes := make([]int, len(stats.History))
	for i, ep := range stats.History {
		episodes[i] = ep.Episode
	}
	final := stats.Final
	subtitle := fmt.Sprintf("success %.1f%% | traps %.1f%% | "+
		"avg reward %.1f | avg steps %.1f", final.SuccessRate,
		final.TrapRate, final.MeanReward, final.MeanSteps)

	reward := lineChart("Episode Reward", subtitle, "Reward", episodes)
	reward.AddSeries("reward", lineData(stats.Rewards())).
		AddSeries(fmt.Sprintf("mean over %d", window),
			lineData(stats.RollingRewards(window)))

	steps := lineChart("Episode Length", "", "Steps", episodes)
	steps.AddSeries("steps", lineData(stats.Steps()))

	success := lineChart("Success Rate", fmt.Sprintf("%d episode window",
		window), "Success Rate (%)", episodes)
	success.AddSeries("success rate",
		lineData(stats.RollingSuccessRates(window)))

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(reward, steps, success)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("writeHTML: render error: %w", err)
	}
	return nil
}

// SaveHTML writes the page of WriteHTML to filename
func SaveHTML(filename, title string, stats experiment.Statistics,
	window int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveHTML: %w", err)
	}
	if err := WriteHTML(file, title, stats, window); err != nil {
		file.Close()
		return fmt.Errorf("saveHTML: %w", err)
	}
	return file.Close()
}

func lineChart(title, subtitle, yName string, episodes []int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px",
			Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode", NameLocation: "middle",
			NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	line.SetXAxis(episodes)
	return line
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
