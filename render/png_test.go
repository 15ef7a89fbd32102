package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beastmaster-org/beastmaster/render"
	"github.com/beastmaster-org/beastmaster/report"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func barConfig() *report.ChartConfig {
	return &report.ChartConfig{
		ChartType: report.ChartBar,
		Title:     "Average Survivability",
		Series: []report.Series{{
			Name: "Avg. Survivability",
			Points: []report.Point{
				{Label: "dragon", Value: 12012},
				{Label: "giant", Value: 649},
				{Label: "ooze", Value: 504},
			},
		}},
	}
}

func TestRenderPNGBar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.RenderPNG(barConfig(), &buf))
	require.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRenderPNGDonut(t *testing.T) {
	cfg := &report.ChartConfig{
		ChartType: report.ChartDonut,
		Title:     "Sources",
		Hole:      0.4,
		Series: []report.Series{{
			Name: "Sourcebook",
			Points: []report.Point{
				{Label: "MM", Value: 3},
				{Label: "Unknown", Value: 2},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, render.RenderPNG(cfg, &buf))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRenderPNGUnsupportedTypes(t *testing.T) {
	for _, typ := range []string{report.ChartRadar, report.ChartViolin, report.ChartBox, report.ChartHeatmap} {
		var buf bytes.Buffer
		err := render.RenderPNG(&report.ChartConfig{ChartType: typ}, &buf)
		assert.ErrorIs(t, err, render.ErrUnsupportedChart, "type %s", typ)
		assert.Zero(t, buf.Len())
	}
}

func TestExportPNGsSkipsUnsupported(t *testing.T) {
	dir := t.TempDir()
	d := testDashboard(t)

	written, err := render.ExportPNGs(dir, d)
	require.NoError(t, err)

	// Bar and donut sections export; distribution/matrix charts are skipped.
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dir, "survivability-by-type.png"), written[0])
	assert.Equal(t, filepath.Join(dir, "source-distribution.png"), written[1])

	for _, p := range written {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, pngMagic, data[:len(pngMagic)])
	}
}
