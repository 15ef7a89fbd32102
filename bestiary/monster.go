package bestiary

import (
	"strconv"
	"strings"
)

// ============================================================================
// MONSTER — One bestiary row plus its derived fields
// ============================================================================
// Numeric fields use Stat, an explicit optional value — never a sentinel
// float. Derived fields are computed exactly once at load and never
// mutated afterward.
// ============================================================================

// Stat is an optional numeric value. The zero value is "missing".
type Stat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// StatOf returns a present Stat.
func StatOf(v float64) Stat { return Stat{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (s Stat) Get() (float64, bool) { return s.Value, s.Valid }

// Monster is a single bestiary record. String fields use "" for
// absent/null values; numeric fields use Stat.
type Monster struct {
	Name      string `json:"name"`
	CR        string `json:"cr"` // raw value, possibly a fraction like "1/4"
	Type      string `json:"type"`
	Size      string `json:"size"`
	Speed     string `json:"speed"`
	Align     string `json:"align,omitempty"`
	Legendary string `json:"legendary,omitempty"` // "Legendary" or ""
	Source    string `json:"source,omitempty"`

	AC Stat `json:"ac"`
	HP Stat `json:"hp"`

	Str Stat `json:"str"`
	Dex Stat `json:"dex"`
	Con Stat `json:"con"`
	Int Stat `json:"int"`
	Wis Stat `json:"wis"`
	Cha Stat `json:"cha"`

	// Derived once at load.
	CRNum         Stat `json:"cr_num"`
	Survivability Stat `json:"survivability"`
}

// Derive computes the two derived fields from the source columns.
// Called once per record at load time.
func (m *Monster) Derive() {
	m.CRNum = ParseCR(m.CR)
	m.Survivability = mulStat(m.AC, m.HP)
}

// IsLegendary reports whether the record carries the exact "Legendary" mark.
const LegendaryMark = "Legendary"

func (m Monster) IsLegendary() bool { return m.Legendary == LegendaryMark }

// ============================================================================
// CHALLENGE-RATING PARSER
// ============================================================================

// ParseCR converts a raw challenge-rating value to a numeric Stat.
// Strings containing '/' parse as an integer fraction ("1/4" → 0.25);
// everything else attempts a direct numeric conversion. Any failure —
// malformed input, empty value, zero denominator — yields a missing
// Stat. ParseCR never panics and never returns an error.
func ParseCR(raw string) Stat {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Stat{}
	}

	if strings.Contains(raw, "/") {
		parts := strings.SplitN(raw, "/", 2)
		num, errN := strconv.Atoi(strings.TrimSpace(parts[0]))
		den, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errN != nil || errD != nil || den == 0 {
			return Stat{}
		}
		return StatOf(float64(num) / float64(den))
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Stat{}
	}
	return StatOf(f)
}

// mulStat multiplies two optional values; missing if either is missing.
func mulStat(a, b Stat) Stat {
	if !a.Valid || !b.Valid {
		return Stat{}
	}
	return StatOf(a.Value * b.Value)
}
