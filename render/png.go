package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/beastmaster-org/beastmaster/report"
)

// ============================================================================
// PNG EXPORT — Static chart rendering via go-chart
// ============================================================================
// Only aggregate charts with a single labeled series translate to
// go-chart primitives; distribution and matrix charts are web-only.
// ============================================================================

// ErrUnsupportedChart marks chart types that have no static PNG form.
var ErrUnsupportedChart = errors.New("render: chart type has no PNG export")

// RenderPNG writes a chart as a PNG image. Bar and donut charts are
// supported; other types return ErrUnsupportedChart.
func RenderPNG(cfg *report.ChartConfig, w io.Writer) error {
	switch cfg.ChartType {
	case report.ChartBar:
		return renderBarPNG(cfg, w)
	case report.ChartDonut:
		return renderDonutPNG(cfg, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedChart, cfg.ChartType)
	}
}

// ExportPNGs writes a PNG per exportable section chart into dir,
// named after the section slug. Unsupported chart types are skipped.
// Returns the paths written.
func ExportPNGs(dir string, d *report.Dashboard) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var written []string
	for _, sec := range d.Sections {
		if sec.Chart == nil {
			continue
		}
		path := filepath.Join(dir, sec.Slug+".png")
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", path, err)
		}
		err = RenderPNG(sec.Chart, f)
		f.Close()
		if err != nil {
			os.Remove(path)
			if errors.Is(err, ErrUnsupportedChart) {
				continue
			}
			return written, fmt.Errorf("render %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func renderBarPNG(cfg *report.ChartConfig, w io.Writer) error {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Points) == 0 {
		return fmt.Errorf("render bar chart: no data")
	}

	bars := make([]chart.Value, 0, len(cfg.Series[0].Points))
	for _, p := range cfg.Series[0].Points {
		bars = append(bars, chart.Value{Label: p.Label, Value: p.Value})
	}

	graph := chart.BarChart{
		Title:      cfg.Title,
		Width:      1024,
		Height:     512,
		BarWidth:   36,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24}},
		Bars:       bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderDonutPNG(cfg *report.ChartConfig, w io.Writer) error {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Points) == 0 {
		return fmt.Errorf("render donut chart: no data")
	}

	values := make([]chart.Value, 0, len(cfg.Series[0].Points))
	for _, p := range cfg.Series[0].Points {
		values = append(values, chart.Value{Label: p.Label, Value: p.Value})
	}

	graph := chart.DonutChart{
		Title:  cfg.Title,
		Width:  640,
		Height: 640,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}
