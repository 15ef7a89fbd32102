package schema

// ============================================================================
// SCHEMA — Describes the shape of the bestiary dataset
// ============================================================================
// The loader uses schema to map CSV headers onto record fields.
// The report builders use schema for column and axis labels.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name       string          `json:"name"`
	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	// Fallback is the label shown for empty values where a report step
	// explicitly fills them (e.g. source → "Unknown").
	Fallback string `json:"fallback,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Integer     bool   `json:"integer,omitempty"`
	// Derived marks fields computed at load time rather than read from
	// the source data.
	Derived bool `json:"derived,omitempty"`
}

// Monsters returns the canonical schema of the monsters dataset.
func Monsters() Config {
	return Config{
		Name: "monsters",
		Dimensions: []DimensionMeta{
			{Key: "name", DisplayName: "Name"},
			{Key: "cr", DisplayName: "CR"},
			{Key: "type", DisplayName: "Creature Type"},
			{Key: "size", DisplayName: "Size"},
			{Key: "speed", DisplayName: "Speed"},
			{Key: "align", DisplayName: "Alignment"},
			{Key: "legendary", DisplayName: "Legendary", Fallback: "Common"},
			{Key: "source", DisplayName: "Sourcebook", Fallback: "Unknown"},
		},
		Measures: []MeasureMeta{
			{Key: "ac", DisplayName: "Armor Class", Integer: true},
			{Key: "hp", DisplayName: "Hit Points", Integer: true},
			{Key: "str", DisplayName: "STR", Integer: true},
			{Key: "dex", DisplayName: "DEX", Integer: true},
			{Key: "con", DisplayName: "CON", Integer: true},
			{Key: "int", DisplayName: "INT", Integer: true},
			{Key: "wis", DisplayName: "WIS", Integer: true},
			{Key: "cha", DisplayName: "CHA", Integer: true},
			{Key: "cr_num", DisplayName: "Challenge Rating", Derived: true},
			{Key: "survivability", DisplayName: "Survivability", Integer: true, Derived: true},
		},
	}
}

// Label returns the display name for a dimension or measure key.
// Unknown keys are returned unchanged.
func (c Config) Label(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return key
}

// IsMeasure reports whether key names a measure.
func (c Config) IsMeasure(key string) bool {
	for _, m := range c.Measures {
		if m.Key == key {
			return true
		}
	}
	return false
}

// IsInteger reports whether a measure is integer-valued.
func (c Config) IsInteger(key string) bool {
	for _, m := range c.Measures {
		if m.Key == key {
			return m.Integer
		}
	}
	return false
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}
