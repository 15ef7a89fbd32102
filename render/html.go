package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/beastmaster-org/beastmaster/report"
)

// ============================================================================
// HTML RENDERER — Self-contained dashboard page
// ============================================================================
// Tables and prose render server-side; charts render client-side from
// the embedded ChartConfig JSON (plotly.js from CDN). The sidebar form
// submits back to the same page, which is how the host re-runs the
// whole pipeline per interaction.
// ============================================================================

type htmlData struct {
	*report.Dashboard
	ChartsJSON template.JS
}

// RenderHTML writes the dashboard as a complete HTML page.
func RenderHTML(w io.Writer, d *report.Dashboard) error {
	type chartEntry struct {
		Slug  string              `json:"slug"`
		Chart *report.ChartConfig `json:"chart"`
	}
	var entries []chartEntry
	for _, s := range d.Sections {
		if s.Chart != nil {
			entries = append(entries, chartEntry{Slug: s.Slug, Chart: s.Chart})
		}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal chart configs: %w", err)
	}

	data := htmlData{Dashboard: d, ChartsJSON: template.JS(b)}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
body { font-family: Georgia, serif; margin: 0; display: flex; background: #faf7f0; color: #2b2620; }
aside { width: 240px; padding: 1.2rem; background: #efe8d8; min-height: 100vh; }
aside label { display: block; margin-top: .8rem; font-size: .85rem; }
aside input[type=number] { width: 100%; }
main { flex: 1; padding: 1.5rem 2.5rem; max-width: 1100px; }
h1 { font-variant: small-caps; }
h2 { margin-top: 2.5rem; border-bottom: 1px solid #d8cdb4; padding-bottom: .3rem; }
.prose { font-style: italic; color: #5a5244; }
table { border-collapse: collapse; margin: 1rem 0; font-size: .85rem; }
th, td { border: 1px solid #d8cdb4; padding: .25rem .6rem; }
th { background: #efe8d8; }
td.right { text-align: right; }
.chart { width: 100%; height: 430px; margin: 1rem 0; }
.no-matches { font-style: italic; color: #8a3324; }
</style>
</head>
<body>
<aside>
<form method="get" action="/">
{{range .Widgets}}<label>{{.Label}}
<input type="number" name="{{.Key}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}">
</label>
{{end}}<label><input type="checkbox" name="legendary" value="1"{{if .Criteria.LegendaryOnly}} checked{{end}}> Legendary Only</label>
<button type="submit">Consult the Ledger</button>
</form>
</aside>
<main>
<h1>{{.Title}} &#128220;</h1>
<p class="prose">{{.Summary}}</p>

<h2>Prologue: Scrying the Beast Scroll</h2>
{{if .NoMatches}}<p class="no-matches">No creatures match these arcane parameters&#8230;</p>
{{else}}{{template "table" .Bestiary}}{{end}}

{{range .Sections}}
<h2>{{.Title}}</h2>
{{if .Prose}}<p class="prose">{{.Prose}}</p>{{end}}
{{if .Chart}}<div class="chart" id="chart-{{.Slug}}"></div>{{end}}
{{range .Tables}}{{template "table" .}}{{end}}
{{end}}
</main>
<script>
const sections = {{.ChartsJSON}};
const layoutBase = { margin: {t: 48, r: 24, b: 72, l: 56}, paper_bgcolor: '#faf7f0', plot_bgcolor: '#faf7f0' };

function toPlot(cfg) {
  const layout = Object.assign({title: {text: cfg.title}}, layoutBase);
  let traces = [];
  switch (cfg.chartType) {
  case 'bar': {
    const s = cfg.series[0];
    traces = [{type: 'bar', x: s.points.map(p => p.label), y: s.points.map(p => p.value),
               marker: {color: (cfg.colors || [])[0]}}];
    layout.xaxis = {title: {text: cfg.xAxis}};
    layout.yaxis = {title: {text: cfg.yAxis}};
    break;
  }
  case 'radar': {
    traces = cfg.series.map(s => ({
      type: 'scatterpolar', mode: 'lines', name: s.name, line: {color: s.color},
      theta: s.points.map(p => p.label).concat([s.points[0].label]),
      r: s.points.map(p => p.value).concat([s.points[0].value])
    }));
    layout.showlegend = true;
    break;
  }
  case 'violin': {
    const s = cfg.series[0];
    traces = s.distributions.map(d => ({type: 'violin', name: d.label, y: d.values}));
    layout.xaxis = {title: {text: cfg.xAxis}};
    layout.yaxis = {title: {text: cfg.yAxis}};
    layout.showlegend = false;
    break;
  }
  case 'donut': {
    const s = cfg.series[0];
    traces = [{type: 'pie', hole: cfg.hole,
               labels: s.points.map(p => p.label), values: s.points.map(p => p.value)}];
    layout.showlegend = true;
    break;
  }
  case 'box': {
    cfg.series.forEach(s => {
      const xs = [], ys = [];
      s.distributions.forEach(d => d.values.forEach(v => { xs.push(d.label); ys.push(v); }));
      traces.push({type: 'box', name: s.name, x: xs, y: ys, marker: {color: s.color}});
    });
    layout.boxmode = 'group';
    layout.xaxis = {title: {text: cfg.xAxis}};
    layout.yaxis = {title: {text: cfg.yAxis}};
    layout.showlegend = true;
    break;
  }
  case 'heatmap': {
    const m = cfg.matrix;
    const digits = m.cellFormat === '%.2f' ? '.2f' : '.0f';
    traces = [{type: 'heatmap', x: m.xLabels, y: m.yLabels, z: m.cells,
               texttemplate: '%{z:' + digits + '}', colorscale: 'Viridis'}];
    layout.xaxis = {title: {text: cfg.xAxis}};
    layout.yaxis = {title: {text: cfg.yAxis}};
    break;
  }
  }
  return {traces, layout};
}

sections.forEach(sec => {
  const el = document.getElementById('chart-' + sec.slug);
  if (!el) return;
  const p = toPlot(sec.chart);
  Plotly.newPlot(el, p.traces, p.layout, {responsive: true, displayModeBar: false});
});
</script>
</body>
</html>
{{define "table"}}<h3>{{.Title}}</h3>
<table>
<thead><tr>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{$cols := .Columns}}{{range .Rows}}<tr>{{range $i, $cell := .}}<td class="{{(index $cols $i).Align}}">{{$cell}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}`))
