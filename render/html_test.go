package render_test

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/render"
	"github.com/beastmaster-org/beastmaster/report"
)

func testDashboard(t *testing.T) *report.Dashboard {
	t.Helper()
	monsters := []bestiary.Monster{
		{Name: "Goblin", CR: "1/4", Type: "humanoid", Size: "Small", AC: bestiary.StatOf(15), HP: bestiary.StatOf(7), Align: "neutral evil", Source: "MM"},
		{Name: "Dragon", CR: "24", Type: "dragon", Size: "Gargantuan", AC: bestiary.StatOf(22), HP: bestiary.StatOf(546), Align: "chaotic evil", Legendary: "Legendary", Source: "MM"},
	}
	codex := bestiary.NewCodex(monsters)
	return report.Build(codex, codex.DefaultCriteria())
}

func TestRenderHTMLContainsSectionsAndWidgets(t *testing.T) {
	d := testDashboard(t)

	var buf bytes.Buffer
	require.NoError(t, render.RenderHTML(&buf, d))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Beastmaster&#39;s Ledge")
	// Titles render escaped, so "&" arrives as "&amp;".
	for _, s := range d.Sections {
		assert.Contains(t, html, template.HTMLEscapeString(s.Title))
	}
	assert.Contains(t, html, "Chapter III: Alignment &amp; Challenge")
	// Widget form fields
	for _, key := range []string{"min_ac", "max_ac", "min_hp", "max_hp", "min_cr", "max_cr"} {
		assert.Contains(t, html, `name="`+key+`"`)
	}
	assert.Contains(t, html, `name="legendary"`)
	// Chart mount points and embedded configs
	assert.Contains(t, html, `id="chart-survivability-by-type"`)
	assert.Contains(t, html, `"chartType":"bar"`)
	// Filtered bestiary table rows
	assert.Contains(t, html, "<td class=\"left\">Goblin</td>")
}

func TestRenderHTMLNoMatches(t *testing.T) {
	d := testDashboard(t)
	d.Bestiary = nil
	d.NoMatches = true

	var buf bytes.Buffer
	require.NoError(t, render.RenderHTML(&buf, d))
	html := buf.String()

	assert.Contains(t, html, "No creatures match these arcane parameters")
	assert.NotContains(t, html, "Filtered Bestiary")
}
