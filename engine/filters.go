package engine

// ============================================================================
// FILTERS — Range, Equality, and Membership Filtering via View
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// Constraints are AND-combined. A missing measure fails any range.
// ============================================================================

// Range keeps records whose measure lies in [Min, Max], inclusive on
// both ends. Records with a missing measure never pass.
type Range struct {
	Measure  string
	Min, Max float64
}

// Equals keeps records whose dimension matches Value exactly.
type Equals struct {
	Dimension string
	Value     string
}

// In keeps records whose dimension value is one of Values.
type In struct {
	Dimension string
	Values    []string
}

// Filter is a conjunction of range, equality, and membership constraints.
type Filter struct {
	Ranges []Range
	Equals []Equals
	Ins    []In
}

// IsEmpty reports whether no constraints are set.
func (f Filter) IsEmpty() bool {
	return len(f.Ranges) == 0 && len(f.Equals) == 0 && len(f.Ins) == 0
}

// Apply returns a view of records satisfying every constraint.
// Filtering an already-filtered view with the same filter yields the
// same record set — Apply is idempotent.
func Apply(view View, f Filter) View {
	if f.IsEmpty() {
		return view
	}

	// Pre-build lookup sets for membership constraints
	sets := make([]map[string]bool, len(f.Ins))
	for i, in := range f.Ins {
		set := make(map[string]bool, len(in.Values))
		for _, v := range in.Values {
			set[v] = true
		}
		sets[i] = set
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if matches(view, i, f, sets) {
			indices = append(indices, i)
		}
	}
	return NewSubView(view, indices)
}

func matches(view View, i int, f Filter, sets []map[string]bool) bool {
	for _, r := range f.Ranges {
		val, ok := view.Measure(i, r.Measure)
		if !ok || val < r.Min || val > r.Max {
			return false
		}
	}
	for _, eq := range f.Equals {
		if view.Dimension(i, eq.Dimension) != eq.Value {
			return false
		}
	}
	for j, in := range f.Ins {
		if !sets[j][view.Dimension(i, in.Dimension)] {
			return false
		}
	}
	return true
}

// ============================================================================
// ROW COMPLETENESS — drop rows with missing values
// ============================================================================

// DropMissing returns a view of rows where every listed measure is present.
func DropMissing(view View, measures ...string) View {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		complete := true
		for _, m := range measures {
			if _, ok := view.Measure(i, m); !ok {
				complete = false
				break
			}
		}
		if complete {
			indices = append(indices, i)
		}
	}
	return NewSubView(view, indices)
}

// DropEmpty returns a view of rows where every listed dimension is non-empty.
func DropEmpty(view View, dimensions ...string) View {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		complete := true
		for _, d := range dimensions {
			if view.Dimension(i, d) == "" {
				complete = false
				break
			}
		}
		if complete {
			indices = append(indices, i)
		}
	}
	return NewSubView(view, indices)
}
