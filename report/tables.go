package report

import (
	"fmt"

	"github.com/beastmaster-org/beastmaster/engine"
	"github.com/beastmaster-org/beastmaster/schema"
)

// ============================================================================
// TABLE BUILDERS — Produce TableData from a View
// ============================================================================
// Column discovery and formatting come from the dataset schema.
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"` // "left", "right"
}

// showColumns is the bestiary listing column set, in display order.
var showColumns = []string{"name", "cr", "type", "size", "ac", "hp", "speed", "align", "legendary"}

// rankColumns extends the listing with the ranking measure.
var rankColumns = append(append([]string{}, showColumns...), "survivability")

// BestiaryTable renders the filtered listing. Returns nil when the view
// is empty — the caller must show a "no matches" message instead.
func BestiaryTable(view engine.View, sch schema.Config) *TableData {
	if view.Len() == 0 {
		return nil
	}
	return buildTable("Filtered Bestiary", view, showColumns, sch)
}

// TopSurvivors renders the n most durable creatures, descending by
// survivability. Ties keep original row order.
func TopSurvivors(view engine.View, n int, sch schema.Config) *TableData {
	ranked := engine.TopN(view, "survivability", n)
	return buildTable(fmt.Sprintf("Top %d Survivors", n), ranked, rankColumns, sch)
}

// BottomSurvivors renders the n least durable creatures, ascending.
func BottomSurvivors(view engine.View, n int, sch schema.Config) *TableData {
	ranked := engine.BottomN(view, "survivability", n)
	return buildTable(fmt.Sprintf("Bottom %d Survivors", n), ranked, rankColumns, sch)
}

func buildTable(title string, view engine.View, keys []string, sch schema.Config) *TableData {
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		align := "left"
		if sch.IsMeasure(key) {
			align = "right"
		}
		columns = append(columns, Column{Key: key, Label: sch.Label(key), Align: align})
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, 0, len(keys))
		for _, key := range keys {
			if sch.IsMeasure(key) {
				row = append(row, formatMeasure(view, i, key))
			} else {
				row = append(row, view.Dimension(i, key))
			}
		}
		rows = append(rows, row)
	}

	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// formatMeasure renders a cell value; missing values render empty.
// Whole numbers drop the decimals.
func formatMeasure(view engine.View, i int, key string) string {
	v, ok := view.Measure(i, key)
	if !ok {
		return ""
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
