// Package charts renders metagame report data as interactive HTML
// charts for the offline analyzer.
package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pdelgado/mtg-metagame/internal/analyzer"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string // Chart title
	Subtitle   string // Chart subtitle
	Width      string // Chart width (e.g., "900px")
	Height     string // Chart height (e.g., "500px")
	Theme      string // Chart theme
	ShowLegend bool   // Show legend
	Colors     []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// RenderBarChart creates an interactive bar chart HTML file.
func RenderBarChart(data []DataPoint, seriesName string, config ChartConfig, outputPath string) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45},
		}),
	)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// chartLimit caps how many bars a distribution chart shows; beyond
// this the labels become unreadable.
const chartLimit = 25

// RenderReport writes the report's distributions as bar charts into
// dir and returns the paths written.
func RenderReport(report *analyzer.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	valueLabel := "Decks"
	if report.PlacementWeighted {
		valueLabel = "Weighted share"
	}

	var written []string
	render := func(name, title string, data []DataPoint) error {
		if len(data) == 0 {
			return nil
		}
		if len(data) > chartLimit {
			data = data[:chartLimit]
		}
		cfg := DefaultChartConfig()
		cfg.Title = title
		path := filepath.Join(dir, name)
		if err := RenderBarChart(data, valueLabel, cfg, path); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	commanders := make([]DataPoint, len(report.CommanderDistribution))
	for i, c := range report.CommanderDistribution {
		commanders[i] = DataPoint{Label: c.Commander, Value: c.Count}
	}
	if err := render("commander_distribution.html", "Commander Distribution", commanders); err != nil {
		return written, err
	}

	archetypes := make([]DataPoint, len(report.ArchetypeDistribution))
	for i, a := range report.ArchetypeDistribution {
		archetypes[i] = DataPoint{Label: a.Archetype, Value: a.Count}
	}
	if err := render("archetype_distribution.html", "Archetype Distribution", archetypes); err != nil {
		return written, err
	}

	topCards := make([]DataPoint, len(report.TopCardsMain))
	for i, c := range report.TopCardsMain {
		topCards[i] = DataPoint{Label: c.Card, Value: float64(c.Decks)}
	}
	if err := render("top_cards_main.html", "Most Played Cards (Mainboard)", topCards); err != nil {
		return written, err
	}

	return written, nil
}
