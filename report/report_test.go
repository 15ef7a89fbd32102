package report_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/report"
	"github.com/beastmaster-org/beastmaster/schema"
)

func stat(v float64) bestiary.Stat { return bestiary.StatOf(v) }

func testCodex(t *testing.T) *bestiary.Codex {
	t.Helper()
	abilities := func(m *bestiary.Monster, v float64) {
		m.Str, m.Dex, m.Con, m.Int, m.Wis, m.Cha =
			stat(v), stat(v), stat(v), stat(v), stat(v), stat(v)
	}

	monsters := []bestiary.Monster{
		{Name: "Goblin", CR: "1/4", Type: "humanoid", Size: "Small", AC: stat(15), HP: stat(7), Align: "neutral evil", Source: "MM"},
		{Name: "Ogre", CR: "2", Type: "giant", Size: "Large", AC: stat(11), HP: stat(59), Align: "chaotic evil", Source: "MM"},
		{Name: "Dragon", CR: "24", Type: "dragon", Size: "Gargantuan", AC: stat(22), HP: stat(546), Align: "chaotic evil", Legendary: "Legendary", Source: "MM"},
		{Name: "Lich", CR: "21", Type: "undead", Size: "Medium", AC: stat(17), HP: stat(135), Legendary: "Legendary"},
		{Name: "Cube", CR: "2", Type: "ooze", Size: "Large", AC: stat(6), HP: stat(84), Align: "unaligned", Source: "ToH"},
		{Name: "Wisp", CR: "???", Type: "aberration", Size: "Medium", AC: stat(10), HP: stat(10), Align: "neutral"},
	}
	for i := range monsters {
		abilities(&monsters[i], float64(8+i))
	}
	// Lich is missing one ability score — must be dropped from the radar.
	monsters[3].Cha = bestiary.Stat{}

	return bestiary.NewCodex(monsters)
}

func TestBuildAssemblesAllSections(t *testing.T) {
	codex := testCodex(t)
	d := report.Build(codex, codex.DefaultCriteria())

	require.Len(t, d.Sections, 8)
	assert.Equal(t, "Beastmaster's Ledge", d.Title)
	assert.False(t, d.NoMatches)
	require.NotNil(t, d.Bestiary)

	// Chart sections carry charts; the final section carries the two tables.
	for _, s := range d.Sections[:7] {
		assert.NotNil(t, s.Chart, "section %s should have a chart", s.Slug)
		assert.Nil(t, s.Tables)
	}
	last := d.Sections[7]
	assert.Nil(t, last.Chart)
	require.Len(t, last.Tables, 2)
	assert.Equal(t, "Top 10 Survivors", last.Tables[0].Title)
	assert.Equal(t, "Bottom 10 Survivors", last.Tables[1].Title)
}

func TestBuildIsPure(t *testing.T) {
	codex := testCodex(t)
	crit := codex.DefaultCriteria()

	first := report.Build(codex, crit)
	second := report.Build(codex, crit)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Bestiary, second.Bestiary)
	assert.Equal(t, first.Sections, second.Sections)
}

func TestBuildNoMatches(t *testing.T) {
	codex := testCodex(t)
	crit := codex.DefaultCriteria()
	crit.MinAC, crit.MaxAC = 1000, 2000

	d := report.Build(codex, crit)
	assert.True(t, d.NoMatches)
	assert.Nil(t, d.Bestiary)
	// Charts still render from the full table.
	assert.NotNil(t, d.Sections[0].Chart)
}

func TestBuildWidgetsReflectDataAndCriteria(t *testing.T) {
	codex := testCodex(t)
	crit := codex.DefaultCriteria()
	crit.MinHP = 50

	d := report.Build(codex, crit)
	require.Len(t, d.Widgets, 6)

	var minHP report.Widget
	for _, w := range d.Widgets {
		if w.Key == "min_hp" {
			minHP = w
		}
	}
	assert.Equal(t, 7.0, minHP.Min, "widget bounds come from the data")
	assert.Equal(t, 546.0, minHP.Max)
	assert.Equal(t, 50.0, minHP.Value, "widget value comes from the criteria")
}

func TestSurvivabilityByTypeSortedDescending(t *testing.T) {
	codex := testCodex(t)
	cfg := report.SurvivabilityByType(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartBar, cfg.ChartType)
	require.Len(t, cfg.Series, 1)

	points := cfg.Series[0].Points
	require.Len(t, points, 6)
	assert.Equal(t, "dragon", points[0].Label)
	assert.Equal(t, 12012.0, points[0].Value) // 22*546
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i-1].Value, points[i].Value)
	}
}

func TestAbilityProfileBySizeDropsIncompleteRows(t *testing.T) {
	codex := testCodex(t)
	cfg := report.AbilityProfileBySize(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartRadar, cfg.ChartType)

	names := make([]string, 0, len(cfg.Series))
	for _, s := range cfg.Series {
		names = append(names, s.Name)
		require.Len(t, s.Points, 6, "one axis per ability score")
	}
	// Lich (Medium) misses CHA; Wisp (Medium) is complete, so Medium stays.
	assert.Equal(t, []string{"Small", "Large", "Gargantuan", "Medium"}, names)

	// The Medium line is built from Wisp alone (13s across the board).
	medium := cfg.Series[3]
	for _, p := range medium.Points {
		assert.Equal(t, 13.0, p.Value)
	}
}

func TestCRByAlignmentDropsMissing(t *testing.T) {
	codex := testCodex(t)
	cfg := report.CRByAlignment(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartViolin, cfg.ChartType)
	require.Len(t, cfg.Series, 1)

	labels := make([]string, 0)
	total := 0
	for _, dist := range cfg.Series[0].Distributions {
		labels = append(labels, dist.Label)
		total += len(dist.Values)
	}
	// Lich (no align) and Wisp (no cr_num) are excluded.
	assert.Equal(t, []string{"neutral evil", "chaotic evil", "unaligned"}, labels)
	assert.Equal(t, 4, total)
}

func TestSourceDistributionCountsSumToTotal(t *testing.T) {
	codex := testCodex(t)
	cfg := report.SourceDistribution(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartDonut, cfg.ChartType)
	assert.Equal(t, 0.4, cfg.Hole)

	var sum float64
	byLabel := map[string]float64{}
	for _, p := range cfg.Series[0].Points {
		sum += p.Value
		byLabel[p.Label] = p.Value
	}
	assert.Equal(t, float64(codex.Len()), sum)
	assert.Equal(t, 2.0, byLabel["Unknown"], "empty sources count under Unknown")
	assert.Equal(t, 3.0, byLabel["MM"])
}

func TestLegendaryVersusCommonPairedBoxes(t *testing.T) {
	codex := testCodex(t)
	cfg := report.LegendaryVersusCommon(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartBox, cfg.ChartType)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "Hit Points", cfg.Series[0].Name)
	assert.Equal(t, "Armor Class", cfg.Series[1].Name)

	for _, s := range cfg.Series {
		require.Len(t, s.Distributions, 2)
		byLabel := map[string]int{}
		for _, d := range s.Distributions {
			byLabel[d.Label] = len(d.Values)
		}
		assert.Equal(t, 4, byLabel["Common"])
		assert.Equal(t, 2, byLabel["Legendary"])
	}
}

func TestTypeFrequencyHeatmapZeroFill(t *testing.T) {
	codex := testCodex(t)
	cfg := report.TypeFrequencyHeatmap(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	assert.Equal(t, report.ChartHeatmap, cfg.ChartType)
	require.NotNil(t, cfg.Matrix)

	m := cfg.Matrix
	assert.Len(t, m.XLabels, 6) // six distinct types, all within the top 10
	assert.Len(t, m.YLabels, 4)
	assert.Equal(t, "%.0f", m.CellFormat)

	var sum float64
	for _, row := range m.Cells {
		require.Len(t, row, len(m.XLabels))
		for _, c := range row {
			sum += c
		}
	}
	assert.Equal(t, float64(codex.Len()), sum, "cells must count every record of the top types")

	// Absent (size, type) combinations are zero, e.g. Small×dragon.
	cell := findCell(t, m, "Small", "dragon")
	assert.Equal(t, 0.0, cell)
}

func findCell(t *testing.T, m *report.Matrix, yLabel, xLabel string) float64 {
	t.Helper()
	yi, xi := -1, -1
	for i, y := range m.YLabels {
		if y == yLabel {
			yi = i
		}
	}
	for j, x := range m.XLabels {
		if x == xLabel {
			xi = j
		}
	}
	require.GreaterOrEqual(t, yi, 0, "missing y label %s", yLabel)
	require.GreaterOrEqual(t, xi, 0, "missing x label %s", xLabel)
	return m.Cells[yi][xi]
}

func TestCorrelationMatrixDiagonalAndSymmetry(t *testing.T) {
	codex := testCodex(t)
	cfg := report.CorrelationMatrix(codex.View(), schema.Monsters())

	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Matrix)
	m := cfg.Matrix

	require.Len(t, m.YLabels, 9)
	assert.Equal(t, "%.2f", m.CellFormat)
	for i := range m.Cells {
		assert.Equal(t, 1.0, m.Cells[i][i], "diagonal must be 1")
		for j := range m.Cells[i] {
			assert.InDelta(t, m.Cells[j][i], m.Cells[i][j], 1e-9, "matrix must be symmetric")
			assert.LessOrEqual(t, m.Cells[i][j], 1.0)
			assert.GreaterOrEqual(t, m.Cells[i][j], -1.0)
		}
	}
}

func TestTopAndBottomSurvivorTables(t *testing.T) {
	codex := testCodex(t)
	sch := schema.Monsters()

	top := report.TopSurvivors(codex.View(), 3, sch)
	bottom := report.BottomSurvivors(codex.View(), 3, sch)

	require.Len(t, top.Rows, 3)
	require.Len(t, bottom.Rows, 3)
	require.Len(t, top.Columns, 10)
	assert.Equal(t, "survivability", top.Columns[9].Key)

	assert.Equal(t, "Dragon", top.Rows[0][0])
	assert.Equal(t, "12012", top.Rows[0][9])
	assert.Equal(t, "Wisp", bottom.Rows[0][0]) // 10*10 = 100

	// With 6 records and n=3, top and bottom are disjoint and cover all.
	seen := map[string]bool{}
	for _, r := range top.Rows {
		seen[r[0]] = true
	}
	for _, r := range bottom.Rows {
		assert.False(t, seen[r[0]], "rankings must be disjoint")
		seen[r[0]] = true
	}
	assert.Len(t, seen, 6)
}

func TestBestiaryTableEmptyViewIsNil(t *testing.T) {
	codex := testCodex(t)
	crit := codex.DefaultCriteria()
	crit.MinHP, crit.MaxHP = 9999, 10000

	assert.Nil(t, report.BestiaryTable(codex.Filter(crit), schema.Monsters()))
}

func TestWithTopN(t *testing.T) {
	codex := testCodex(t)
	d := report.Build(codex, codex.DefaultCriteria(), report.WithTopN(2))

	last := d.Sections[len(d.Sections)-1]
	require.Len(t, last.Tables, 2)
	assert.Equal(t, fmt.Sprintf("Top %d Survivors", 2), last.Tables[0].Title)
	assert.Len(t, last.Tables[0].Rows, 2)
}
