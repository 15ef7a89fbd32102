package bestiary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beastmaster-org/beastmaster/engine"
)

// ============================================================================
// CODEX — The loaded bestiary
// ============================================================================
// The consumer reads the CSV from wherever it lives (file, S3, Sheets).
// Load converts the raw bytes into Monster records, derives cr_num and
// survivability once per row, and binds a zero-copy engine.View.
// The record set is immutable after load; filtering produces SubViews.
// ============================================================================

// Codex holds the immutable monster dataset and its engine view.
type Codex struct {
	monsters []Monster
	view     engine.View
}

// monsterAdapter binds Monster fields to engine dimension/measure keys.
// Declared once; Bind is zero-copy.
var monsterAdapter = engine.NewAdapter[Monster]().
	Dimension("name", func(m Monster) string { return m.Name }).
	Dimension("cr", func(m Monster) string { return m.CR }).
	Dimension("type", func(m Monster) string { return m.Type }).
	Dimension("size", func(m Monster) string { return m.Size }).
	Dimension("speed", func(m Monster) string { return m.Speed }).
	Dimension("align", func(m Monster) string { return m.Align }).
	Dimension("legendary", func(m Monster) string { return m.Legendary }).
	Dimension("source", func(m Monster) string { return m.Source }).
	Measure("ac", func(m Monster) (float64, bool) { return m.AC.Get() }).
	Measure("hp", func(m Monster) (float64, bool) { return m.HP.Get() }).
	Measure("str", func(m Monster) (float64, bool) { return m.Str.Get() }).
	Measure("dex", func(m Monster) (float64, bool) { return m.Dex.Get() }).
	Measure("con", func(m Monster) (float64, bool) { return m.Con.Get() }).
	Measure("int", func(m Monster) (float64, bool) { return m.Int.Get() }).
	Measure("wis", func(m Monster) (float64, bool) { return m.Wis.Get() }).
	Measure("cha", func(m Monster) (float64, bool) { return m.Cha.Get() }).
	Measure("cr_num", func(m Monster) (float64, bool) { return m.CRNum.Get() }).
	Measure("survivability", func(m Monster) (float64, bool) { return m.Survivability.Get() })

// Load parses CSV bytes into a Codex. Column order is free; headers are
// matched by snake-cased name. Malformed rows are skipped, and absent
// columns simply leave their fields empty/missing — the only value-level
// recovery is the CR parse.
func Load(data []byte) (*Codex, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
	}

	var monsters []Monster
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		var m Monster
		for i, val := range row {
			if i >= len(keys) {
				break
			}
			setField(&m, keys[i], strings.TrimSpace(val))
		}
		m.Derive()
		monsters = append(monsters, m)
	}

	return NewCodex(monsters), nil
}

// NewCodex builds a Codex from already-parsed records, deriving any
// fields that have not been derived yet.
func NewCodex(monsters []Monster) *Codex {
	for i := range monsters {
		if !monsters[i].CRNum.Valid && !monsters[i].Survivability.Valid {
			monsters[i].Derive()
		}
	}
	return &Codex{
		monsters: monsters,
		view:     monsterAdapter.Bind(monsters),
	}
}

// Len returns the number of records.
func (c *Codex) Len() int { return len(c.monsters) }

// View returns the zero-copy engine view over all records.
func (c *Codex) View() engine.View { return c.view }

// setField assigns one CSV cell onto a Monster field by column key.
func setField(m *Monster, key, val string) {
	switch key {
	case "name":
		m.Name = val
	case "cr":
		m.CR = val
	case "type":
		m.Type = val
	case "size":
		m.Size = val
	case "speed":
		m.Speed = val
	case "align":
		m.Align = val
	case "legendary":
		m.Legendary = val
	case "source":
		m.Source = val
	case "ac":
		m.AC = parseStat(val)
	case "hp":
		m.HP = parseStat(val)
	case "str":
		m.Str = parseStat(val)
	case "dex":
		m.Dex = parseStat(val)
	case "con":
		m.Con = parseStat(val)
	case "int":
		m.Int = parseStat(val)
	case "wis":
		m.Wis = parseStat(val)
	case "cha":
		m.Cha = parseStat(val)
	}
	// Unmapped columns are silently skipped
}

func parseStat(val string) Stat {
	if val == "" {
		return Stat{}
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Stat{}
	}
	return StatOf(f)
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// ============================================================================
// FILTER CRITERIA — the widget boundary
// ============================================================================

// Criteria holds the six range parameters and the legendary flag.
// Constructed fresh per interaction cycle; it has no persistence.
type Criteria struct {
	MinAC float64 `json:"minAC"`
	MaxAC float64 `json:"maxAC"`
	MinHP float64 `json:"minHP"`
	MaxHP float64 `json:"maxHP"`
	MinCR float64 `json:"minCR"`
	MaxCR float64 `json:"maxCR"`

	LegendaryOnly bool `json:"legendaryOnly"`
}

// DefaultCriteria spans the full observed data range, so filtering with
// it returns every record. The CR lower bound defaults to 0.
func (c *Codex) DefaultCriteria() Criteria {
	crit := Criteria{}
	if min, max, ok := engine.MinMax(c.view, "ac"); ok {
		crit.MinAC, crit.MaxAC = min, max
	}
	if min, max, ok := engine.MinMax(c.view, "hp"); ok {
		crit.MinHP, crit.MaxHP = min, max
	}
	if _, max, ok := engine.MinMax(c.view, "cr_num"); ok {
		crit.MaxCR = max
	}
	return crit
}

// Filter returns the subset of records satisfying all criteria: ac, hp
// and cr_num within their inclusive bounds, and — when LegendaryOnly is
// set — an exact "Legendary" mark. Records with a missing cr_num fail
// the CR bounds. The source records are never mutated.
func (c *Codex) Filter(crit Criteria) engine.View {
	f := engine.Filter{
		Ranges: []engine.Range{
			{Measure: "ac", Min: crit.MinAC, Max: crit.MaxAC},
			{Measure: "hp", Min: crit.MinHP, Max: crit.MaxHP},
			{Measure: "cr_num", Min: crit.MinCR, Max: crit.MaxCR},
		},
	}
	if crit.LegendaryOnly {
		f.Equals = append(f.Equals, engine.Equals{Dimension: "legendary", Value: LegendaryMark})
	}
	return engine.Apply(c.view, f)
}
