package engine

// ============================================================================
// VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//   FillView       — wraps any view, substitutes a fallback label for
//                    empty dimension values on read
//
// Consumers register accessors once at init; the engine reads in tight
// loops. Measure returns (value, ok) — ok is false when the value is
// missing for that row. Every aggregation skips missing values.
// ============================================================================

// View provides indexed access to a dataset.
type View interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) (float64, bool)
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent View.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  View
	indices []int
}

// NewSubView creates a view over the given parent indices.
func NewSubView(parent View, indices []int) View {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// FILL VIEW — on-read fallback for empty dimension values (zero-copy)
// ============================================================================

// FillView wraps a View and substitutes a fallback label whenever one
// dimension reads as empty. No data copy — substitution happens per
// Dimension() call. Used for "source → Unknown" and "legendary → Common".
type FillView struct {
	parent    View
	dimension string
	fallback  string
}

// NewFillView wraps parent so that empty values of dimension read as fallback.
func NewFillView(parent View, dimension, fallback string) View {
	return &FillView{parent: parent, dimension: dimension, fallback: fallback}
}

func (v *FillView) Len() int { return v.parent.Len() }

func (v *FillView) Dimension(i int, key string) string {
	val := v.parent.Dimension(i, key)
	if key == v.dimension && val == "" {
		return v.fallback
	}
	return val
}

func (v *FillView) Measure(i int, key string) (float64, bool) {
	return v.parent.Measure(i, key)
}

func (v *FillView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *FillView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewAdapter[Monster]().
//	    Dimension("type", func(m Monster) string { return m.Type }).
//	    Measure("hp", func(m Monster) (float64, bool) { return m.HP.Value, m.HP.Valid })
//
//	view := adapter.Bind(monsters)
//
// ============================================================================

// Adapter builds a View from typed structs. Declare once, bind many times.
type Adapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) (float64, bool)
}

// NewAdapter creates a new adapter for type T.
func NewAdapter[T any]() *Adapter[T] {
	return &Adapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) (float64, bool)),
	}
}

// Dimension registers a dimension accessor.
func (a *Adapter[T]) Dimension(key string, fn func(T) string) *Adapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor. The accessor's second result is
// false when the value is missing for that row.
func (a *Adapter[T]) Measure(key string, fn func(T) (float64, bool)) *Adapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a View from a data slice. Zero-copy — holds a reference.
func (a *Adapter[T]) Bind(data []T) View {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) (float64, bool)
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0, false
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
