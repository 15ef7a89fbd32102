package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beastmaster-org/beastmaster/engine"
)

type row struct {
	Kind  string
	Mark  string
	AC    float64
	HasAC bool
}

var rowAdapter = engine.NewAdapter[row]().
	Dimension("kind", func(r row) string { return r.Kind }).
	Dimension("mark", func(r row) string { return r.Mark }).
	Measure("ac", func(r row) (float64, bool) { return r.AC, r.HasAC })

func filterView() engine.View {
	return rowAdapter.Bind([]row{
		{Kind: "dragon", Mark: "Legendary", AC: 22, HasAC: true},
		{Kind: "ooze", Mark: "", AC: 6, HasAC: true},
		{Kind: "giant", Mark: "", AC: 11, HasAC: true},
		{Kind: "ghost", Mark: "", HasAC: false},
		{Kind: "dragon", Mark: "", AC: 18, HasAC: true},
	})
}

func TestApplyEmptyFilterReturnsSameView(t *testing.T) {
	v := filterView()
	out := engine.Apply(v, engine.Filter{})
	assert.Equal(t, v.Len(), out.Len())
}

func TestRangeInclusiveBothEnds(t *testing.T) {
	v := filterView()
	out := engine.Apply(v, engine.Filter{
		Ranges: []engine.Range{{Measure: "ac", Min: 11, Max: 22}},
	})

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "dragon", out.Dimension(0, "kind"))
	assert.Equal(t, "giant", out.Dimension(1, "kind"))
	assert.Equal(t, "dragon", out.Dimension(2, "kind"))
}

func TestRangeExcludesMissing(t *testing.T) {
	v := filterView()
	// Full numeric range still excludes the row with a missing AC.
	out := engine.Apply(v, engine.Filter{
		Ranges: []engine.Range{{Measure: "ac", Min: 0, Max: 1000}},
	})
	assert.Equal(t, 4, out.Len())
}

func TestEqualsExactMatch(t *testing.T) {
	v := filterView()
	out := engine.Apply(v, engine.Filter{
		Equals: []engine.Equals{{Dimension: "mark", Value: "Legendary"}},
	})

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "dragon", out.Dimension(0, "kind"))
}

func TestInMembership(t *testing.T) {
	v := filterView()
	out := engine.Apply(v, engine.Filter{
		Ins: []engine.In{{Dimension: "kind", Values: []string{"ooze", "ghost"}}},
	})

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "ooze", out.Dimension(0, "kind"))
	assert.Equal(t, "ghost", out.Dimension(1, "kind"))
}

func TestApplyIsIdempotent(t *testing.T) {
	v := filterView()
	f := engine.Filter{
		Ranges: []engine.Range{{Measure: "ac", Min: 10, Max: 25}},
		Ins:    []engine.In{{Dimension: "kind", Values: []string{"dragon", "giant"}}},
	}

	once := engine.Apply(v, f)
	twice := engine.Apply(once, f)

	require.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		assert.Equal(t, once.Dimension(i, "kind"), twice.Dimension(i, "kind"))
	}
}

func TestDropMissing(t *testing.T) {
	v := filterView()
	out := engine.DropMissing(v, "ac")
	assert.Equal(t, 4, out.Len())
}

func TestDropEmpty(t *testing.T) {
	v := filterView()
	out := engine.DropEmpty(v, "mark")
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Legendary", out.Dimension(0, "mark"))
}
