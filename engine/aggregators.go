package engine

import (
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, Sorting, and Ranking via View
// ============================================================================
// All functions operate on View — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Missing measure values are skipped by every aggregation.
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key       string
	Label     string
	Value     float64
	Count     int
	SubGroups []Group
	View      View
}

// Aggregation modes understood by GroupAndAggregate.
const (
	AggMean  = "mean"
	AggCount = "count"
)

// Sort modes understood by SortGroups.
const (
	SortValueDesc = "value_desc"
	SortValueAsc  = "value_asc"
	SortLabelAsc  = "label_asc"
)

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit. Group order before sorting
// is first-seen row order.
func GroupAndAggregate(view View, groupBy []string, measure, aggregation, sortBy string, limit int) []Group {
	if view.Len() == 0 {
		return nil
	}

	var groups []Group
	switch len(groupBy) {
	case 0:
		groups = []Group{{Key: "all", Label: "Total", View: view}}
	case 1:
		groups = GroupBy(view, groupBy[0])
	default:
		groups = GroupBy(view, groupBy[0])
		for i := range groups {
			groups[i].SubGroups = GroupBy(groups[i].View, groupBy[1])
		}
	}

	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
		for j := range groups[i].SubGroups {
			aggregateGroup(&groups[i].SubGroups[j], measure, aggregation)
		}
	}

	SortGroups(groups, sortBy)

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// GroupBy splits a view into one group per distinct dimension value,
// in first-seen row order.
func GroupBy(view View, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  NewSubView(view, grouped[key]),
		})
	}
	return groups
}

func aggregateGroup(group *Group, measure, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case AggCount:
		group.Value = float64(group.Count)
	case AggMean:
		if mean, ok := MeanMeasure(group.View, measure); ok {
			group.Value = mean
		}
	default:
		if mean, ok := MeanMeasure(group.View, measure); ok {
			group.Value = mean
		}
	}
}

// ============================================================================
// MEASURE AGGREGATES
// ============================================================================

// MeanMeasure computes the mean of a measure, skipping missing values.
// ok is false when no row carries the measure.
func MeanMeasure(view View, measure string) (float64, bool) {
	var sum float64
	var n int
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// MinMax returns the observed [min, max] of a measure, skipping missing
// values. ok is false when no row carries the measure.
func MinMax(view View, measure string) (float64, float64, bool) {
	min, max := math.Inf(1), math.Inf(-1)
	found := false
	for i := 0; i < view.Len(); i++ {
		v, ok := view.Measure(i, measure)
		if !ok {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		found = true
	}
	if !found {
		return 0, 0, false
	}
	return min, max, true
}

// Values collects the present values of a measure, in row order.
func Values(view View, measure string) []float64 {
	out := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			out = append(out, v)
		}
	}
	return out
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// Sorting is stable: ties keep first-seen group order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key)
		})
	default:
		// preserve grouping order
	}
}

// ============================================================================
// RANKING
// ============================================================================

// TopN returns a view of the n records with the largest values of a
// measure, in descending order. Records missing the measure are
// excluded. The sort is stable: ties keep original row order.
func TopN(view View, measure string, n int) View {
	return rankN(view, measure, n, true)
}

// BottomN returns a view of the n records with the smallest values of a
// measure, in ascending order. Same missing/tie policy as TopN.
func BottomN(view View, measure string, n int) View {
	return rankN(view, measure, n, false)
}

func rankN(view View, measure string, n int, desc bool) View {
	type ranked struct {
		index int
		value float64
	}
	rows := make([]ranked, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			rows = append(rows, ranked{index: i, value: v})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return rows[i].value > rows[j].value
		}
		return rows[i].value < rows[j].value
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	indices := make([]int, len(rows))
	for i, r := range rows {
		indices[i] = r.index
	}
	return NewSubView(view, indices)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct values for a dimension across a view,
// in first-seen row order. Empty values are skipped.
func UniqueValues(view View, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}
