package report

import (
	"fmt"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/schema"
)

// ============================================================================
// DASHBOARD — Assembles the full Beastmaster's Ledge
// ============================================================================
// Build is a pure function from (codex, criteria) to render-ready views.
// The host re-invokes it on every interaction cycle — there is no hidden
// state, so repeated calls with the same inputs yield the same output.
// Every chart consumes the full unfiltered codex; only the bestiary
// listing honors the criteria.
// ============================================================================

// Dashboard is the complete render-ready report.
type Dashboard struct {
	Title    string            `json:"title"`
	Summary  string            `json:"summary"`
	Criteria bestiary.Criteria `json:"criteria"`
	Widgets  []Widget          `json:"widgets"`

	// Filtered listing; nil with NoMatches set when nothing qualifies.
	Bestiary  *TableData `json:"bestiary,omitempty"`
	NoMatches bool       `json:"noMatches"`

	Sections []Section `json:"sections"`
}

// Section is one chapter of the ledger: a heading, its narrative
// preamble, and a chart and/or tables.
type Section struct {
	Slug   string       `json:"slug"`
	Title  string       `json:"title"`
	Prose  string       `json:"prose,omitempty"`
	Chart  *ChartConfig `json:"chart,omitempty"`
	Tables []*TableData `json:"tables,omitempty"`
}

// Widget describes one numeric range input: label, observed bounds,
// step, and the value currently applied.
type Widget struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
	Value float64 `json:"value"`
}

// NoMatchesMessage is shown in place of the bestiary listing when the
// criteria exclude every record.
const NoMatchesMessage = "No creatures match these arcane parameters…"

// Option configures Build via functional options.
type Option func(*buildConfig)

type buildConfig struct {
	topN int
}

// WithTopN overrides the ranking table depth (default 10).
func WithTopN(n int) Option {
	return func(c *buildConfig) {
		if n > 0 {
			c.topN = n
		}
	}
}

// Build assembles the dashboard from the codex and the current criteria.
func Build(codex *bestiary.Codex, crit bestiary.Criteria, opts ...Option) *Dashboard {
	cfg := &buildConfig{topN: 10}
	for _, opt := range opts {
		opt(cfg)
	}

	sch := schema.Monsters()
	full := codex.View()
	filtered := codex.Filter(crit)

	d := &Dashboard{
		Title:    "Beastmaster's Ledge",
		Summary:  fmt.Sprintf("%d creatures catalogued; %d match the current filters.", full.Len(), filtered.Len()),
		Criteria: crit,
		Widgets:  buildWidgets(codex, crit),
	}

	d.Bestiary = BestiaryTable(filtered, sch)
	d.NoMatches = d.Bestiary == nil

	d.Sections = []Section{
		{
			Slug:  "survivability-by-type",
			Title: "Chapter I: The Measure of Endurance",
			Prose: "Behold, gentle scholar, the hardy and the frail alike — here we quantify each creature's fortitude as the product of its defenses and vitality.",
			Chart: SurvivabilityByType(full, sch),
		},
		{
			Slug:  "ability-profile-by-size",
			Title: "Chapter II: The Stat Profiles by Size",
			Prose: "Next, we turn our gaze to the varied statures of these denizens, their abilities revealed in a radial tableau.",
			Chart: AbilityProfileBySize(full, sch),
		},
		{
			Slug:  "cr-by-alignment",
			Title: "Chapter III: Alignment & Challenge",
			Prose: "Let us peer into the hearts of beasts and note how their moral alignments correlate with the perils they pose.",
			Chart: CRByAlignment(full, sch),
		},
		{
			Slug:  "source-distribution",
			Title: "Chapter IV: Sourcebook Lore",
			Prose: "From tomes old and scrolls newly penned, behold which grimoire yields the greatest variety of horrors.",
			Chart: SourceDistribution(full, sch),
		},
		{
			Slug:  "legendary-vs-common",
			Title: "Chapter V: Legendary vs. Common",
			Prose: "Mark well the distinction betwixt those of famed legend and the common multitude, their might measured in wounds and resilience.",
			Chart: LegendaryVersusCommon(full, sch),
		},
		{
			Slug:  "type-frequency-by-size",
			Title: "Chapter VI: Type Frequency by Size",
			Prose: "Observe now how each size class harbors certain creatures most abundantly: a heatmap of form and function.",
			Chart: TypeFrequencyHeatmap(full, sch),
		},
		{
			Slug:  "correlations",
			Title: "Chapter VII: Correlations of Core Stats",
			Prose: "At last, we unveil the hidden bonds that tie a creature's form to its function: a matrix of mutual influence.",
			Chart: CorrelationMatrix(full, sch),
		},
		{
			Slug:  "top-bottom-survivors",
			Title: "Chapter VIII: Top & Bottom Survivors",
			Prose: "Finally, behold the mightiest of the mighty and the frailest of the frail, a roll call of triumph and tragedy.",
			Tables: []*TableData{
				TopSurvivors(full, cfg.topN, sch),
				BottomSurvivors(full, cfg.topN, sch),
			},
		},
	}

	return d
}

// buildWidgets derives the six range widget descriptors from the
// observed data ranges and the applied criteria. Widget bounds always
// reflect the data, not the criteria.
func buildWidgets(codex *bestiary.Codex, crit bestiary.Criteria) []Widget {
	def := codex.DefaultCriteria()
	return []Widget{
		{Key: "min_ac", Label: "Min AC", Min: def.MinAC, Max: def.MaxAC, Step: 1, Value: crit.MinAC},
		{Key: "max_ac", Label: "Max AC", Min: def.MinAC, Max: def.MaxAC, Step: 1, Value: crit.MaxAC},
		{Key: "min_hp", Label: "Min HP", Min: def.MinHP, Max: def.MaxHP, Step: 1, Value: crit.MinHP},
		{Key: "max_hp", Label: "Max HP", Min: def.MinHP, Max: def.MaxHP, Step: 1, Value: crit.MaxHP},
		{Key: "min_cr", Label: "Min CR", Min: 0, Max: def.MaxCR, Step: 0.5, Value: crit.MinCR},
		{Key: "max_cr", Label: "Max CR", Min: 0, Max: def.MaxCR, Step: 0.5, Value: crit.MaxCR},
	}
}

// Charts returns the non-nil chart configs of all sections, in order.
func (d *Dashboard) Charts() []*ChartConfig {
	var charts []*ChartConfig
	for _, s := range d.Sections {
		if s.Chart != nil {
			charts = append(charts, s.Chart)
		}
	}
	return charts
}
