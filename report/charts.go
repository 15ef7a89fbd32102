package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/beastmaster-org/beastmaster/engine"
	"github.com/beastmaster-org/beastmaster/schema"
)

// ============================================================================
// CHART BUILDERS — Produce ChartConfig specification objects
// ============================================================================
// Each builder is an independent pure transformation of the full
// (unfiltered) view into one render-ready chart specification. The
// renderer decides how to draw it; no builder performs I/O.
// ============================================================================

// Chart types produced by the builders.
const (
	ChartBar     = "bar"
	ChartRadar   = "radar"
	ChartViolin  = "violin"
	ChartDonut   = "donut"
	ChartBox     = "box"
	ChartHeatmap = "heatmap"
)

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string   `json:"chartType"`
	Title      string   `json:"title"`
	XAxis      string   `json:"xAxis,omitempty"`
	YAxis      string   `json:"yAxis,omitempty"`
	Hole       float64  `json:"hole,omitempty"` // donut hole radius fraction
	Series     []Series `json:"series,omitempty"`
	Matrix     *Matrix  `json:"matrix,omitempty"` // heatmaps only
	Colors     []string `json:"colors,omitempty"`
	ShowLegend bool     `json:"showLegend"`
}

// Series is one data series. Aggregated charts carry Points;
// distribution charts (violin, box) carry raw per-group value arrays.
type Series struct {
	Name          string         `json:"name"`
	Color         string         `json:"color,omitempty"`
	Points        []Point        `json:"points,omitempty"`
	Distributions []Distribution `json:"distributions,omitempty"`
}

// Point is a single labeled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Distribution is the raw sample set for one group of a violin/box plot.
type Distribution struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Matrix holds an annotated heatmap. Cells rows follow YLabels,
// columns follow XLabels.
type Matrix struct {
	XLabels    []string    `json:"xLabels"`
	YLabels    []string    `json:"yLabels"`
	Cells      [][]float64 `json:"cells"`
	CellFormat string      `json:"cellFormat"` // e.g. "%.0f" for counts, "%.2f" for correlations
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// abilityKeys are the six ability-score measures, in display order.
var abilityKeys = []string{"str", "dex", "con", "int", "wis", "cha"}

// ============================================================================
// CHAPTER I — Survivability by type
// ============================================================================

// SurvivabilityByType charts the mean survivability (AC × HP) per
// creature type, sorted descending, as a bar chart.
func SurvivabilityByType(view engine.View, sch schema.Config) *ChartConfig {
	groups := engine.GroupAndAggregate(view, []string{"type"}, "survivability", engine.AggMean, engine.SortValueDesc, 0)
	if len(groups) == 0 {
		return nil
	}

	return &ChartConfig{
		ChartType: ChartBar,
		Title:     "Average Survivability (AC × HP) by Type",
		XAxis:     sch.Label("type"),
		YAxis:     "Avg. Survivability",
		Series:    []Series{{Name: "Avg. Survivability", Points: groupPoints(groups)}},
		Colors:    assignColors(1),
	}
}

// ============================================================================
// CHAPTER II — Ability profile by size
// ============================================================================

// AbilityProfileBySize charts the mean of each ability score per size
// category as a closed radar chart — one line per size, one axis per stat.
// Rows missing any ability score are dropped first.
func AbilityProfileBySize(view engine.View, sch schema.Config) *ChartConfig {
	complete := engine.DropMissing(view, abilityKeys...)
	groups := engine.GroupBy(complete, "size")
	if len(groups) == 0 {
		return nil
	}

	series := make([]Series, 0, len(groups))
	for i, g := range groups {
		points := make([]Point, 0, len(abilityKeys))
		for _, stat := range abilityKeys {
			mean, _ := engine.MeanMeasure(g.View, stat)
			points = append(points, Point{Label: sch.Label(stat), Value: engine.RoundTo2(mean)})
		}
		series = append(series, Series{
			Name:   g.Label,
			Color:  defaultColors[i%len(defaultColors)],
			Points: points,
		})
	}

	return &ChartConfig{
		ChartType:  ChartRadar,
		Title:      "Average Ability Scores by Size Category",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
	}
}

// ============================================================================
// CHAPTER III — CR by alignment
// ============================================================================

// CRByAlignment charts the distribution of numeric challenge ratings per
// alignment as a violin plot. Rows missing align or cr_num are dropped.
func CRByAlignment(view engine.View, sch schema.Config) *ChartConfig {
	complete := engine.DropMissing(engine.DropEmpty(view, "align"), "cr_num")
	groups := engine.GroupBy(complete, "align")
	if len(groups) == 0 {
		return nil
	}

	dists := lo.Map(groups, func(g engine.Group, _ int) Distribution {
		return Distribution{Label: g.Label, Values: engine.Values(g.View, "cr_num")}
	})

	return &ChartConfig{
		ChartType: ChartViolin,
		Title:     "Challenge Rating by Alignment",
		XAxis:     sch.Label("align"),
		YAxis:     sch.Label("cr_num"),
		Series:    []Series{{Name: sch.Label("cr_num"), Distributions: dists}},
		Colors:    assignColors(1),
	}
}

// ============================================================================
// CHAPTER IV — Source distribution
// ============================================================================

// SourceDistribution charts the record count per sourcebook as a donut
// chart (hole 0.4). Missing sources count under "Unknown".
func SourceDistribution(view engine.View, sch schema.Config) *ChartConfig {
	filled := engine.NewFillView(view, "source", "Unknown")
	groups := engine.GroupAndAggregate(filled, []string{"source"}, "", engine.AggCount, engine.SortValueDesc, 0)
	if len(groups) == 0 {
		return nil
	}

	return &ChartConfig{
		ChartType:  ChartDonut,
		Title:      "Distribution of Monsters Across Sourcebooks",
		Hole:       0.4,
		Series:     []Series{{Name: sch.Label("source"), Points: groupPoints(groups)}},
		Colors:     assignColors(len(groups)),
		ShowLegend: true,
	}
}

// ============================================================================
// CHAPTER V — Legendary vs Common
// ============================================================================

// LegendaryVersusCommon charts paired box plots of hp and ac grouped by
// the legendary mark, with missing marks counted as "Common".
func LegendaryVersusCommon(view engine.View, sch schema.Config) *ChartConfig {
	filled := engine.NewFillView(view, "legendary", "Common")
	groups := engine.GroupBy(filled, "legendary")
	if len(groups) == 0 {
		return nil
	}

	series := make([]Series, 0, 2)
	for i, measure := range []string{"hp", "ac"} {
		dists := lo.Map(groups, func(g engine.Group, _ int) Distribution {
			return Distribution{Label: g.Label, Values: engine.Values(g.View, measure)}
		})
		series = append(series, Series{
			Name:          sch.Label(measure),
			Color:         defaultColors[i%len(defaultColors)],
			Distributions: dists,
		})
	}

	return &ChartConfig{
		ChartType:  ChartBox,
		Title:      "HP & AC: Legendary vs. Common Creatures",
		XAxis:      "Category",
		YAxis:      "Stat Value",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
	}
}

// ============================================================================
// CHAPTER VI — Type frequency heatmap
// ============================================================================

// TypeFrequencyHeatmap counts records per (size, type) pair for the 10
// most frequent types, absent combinations as 0, as an annotated heatmap.
func TypeFrequencyHeatmap(view engine.View, sch schema.Config) *ChartConfig {
	topTypes := engine.GroupAndAggregate(view, []string{"type"}, "", engine.AggCount, engine.SortValueDesc, 10)
	if len(topTypes) == 0 {
		return nil
	}
	typeKeys := lo.Map(topTypes, func(g engine.Group, _ int) string { return g.Key })

	restricted := engine.Apply(view, engine.Filter{
		Ins: []engine.In{{Dimension: "type", Values: typeKeys}},
	})

	// Pivot into a size×type count matrix, axes sorted alphabetically.
	xLabels := sortedCopy(typeKeys)
	yLabels := sortedCopy(engine.UniqueValues(restricted, "size"))

	counts := make(map[string]map[string]float64, len(yLabels))
	for _, sizeGroup := range engine.GroupBy(restricted, "size") {
		row := make(map[string]float64)
		for _, typeGroup := range engine.GroupBy(sizeGroup.View, "type") {
			row[typeGroup.Key] = float64(typeGroup.View.Len())
		}
		counts[sizeGroup.Key] = row
	}

	cells := make([][]float64, len(yLabels))
	for i, size := range yLabels {
		cells[i] = make([]float64, len(xLabels))
		for j, typ := range xLabels {
			cells[i][j] = counts[size][typ] // absent pairs stay 0
		}
	}

	return &ChartConfig{
		ChartType: ChartHeatmap,
		Title:     "Heatmap of Top 10 Types Across Sizes",
		XAxis:     sch.Label("type"),
		YAxis:     sch.Label("size"),
		Matrix: &Matrix{
			XLabels:    xLabels,
			YLabels:    yLabels,
			Cells:      cells,
			CellFormat: "%.0f",
		},
	}
}

// ============================================================================
// CHAPTER VII — Correlation matrix
// ============================================================================

// corrKeys are the numeric columns of the correlation matrix, in order.
var corrKeys = []string{"cr_num", "ac", "hp", "str", "dex", "con", "int", "wis", "cha"}

// CorrelationMatrix charts the pairwise Pearson correlation over the
// numeric columns as an annotated heatmap with 2-decimal labels.
// Each pair uses pairwise-complete rows; undefined cells render as 0.
func CorrelationMatrix(view engine.View, sch schema.Config) *ChartConfig {
	if view.Len() == 0 {
		return nil
	}

	labels := lo.Map(corrKeys, func(k string, _ int) string { return sch.Label(k) })

	cells := make([][]float64, len(corrKeys))
	for i, ki := range corrKeys {
		cells[i] = make([]float64, len(corrKeys))
		for j, kj := range corrKeys {
			if i == j {
				cells[i][j] = 1
				continue
			}
			if r, ok := engine.Pearson(view, ki, kj); ok {
				cells[i][j] = engine.RoundTo2(r)
			}
		}
	}

	return &ChartConfig{
		ChartType: ChartHeatmap,
		Title:     "Correlation Matrix of CR, AC, HP and Abilities",
		Matrix: &Matrix{
			XLabels:    labels,
			YLabels:    labels,
			Cells:      cells,
			CellFormat: "%.2f",
		},
	}
}

// ============================================================================
// SHARED HELPERS
// ============================================================================

func groupPoints(groups []engine.Group) []Point {
	points := make([]Point, 0, len(groups))
	for _, g := range groups {
		points = append(points, Point{Label: g.Label, Value: engine.RoundTo2(g.Value)})
	}
	return points
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func sortedCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Strings(out)
	return out
}
