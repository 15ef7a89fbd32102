// Package beastmaster provides the Beastmaster's Ledge: an interactive
// bestiary exploration dashboard.
//
// Usage:
//
//	import (
//	    "github.com/beastmaster-org/beastmaster/bestiary"
//	    "github.com/beastmaster-org/beastmaster/report"
//	)
//
//	codex, err := bestiary.Load(csvBytes)
//	dashboard := report.Build(codex, codex.DefaultCriteria())
//
// The codex is immutable after load; report.Build is a pure function
// from (codex, criteria) to render-ready chart and table specifications,
// so the host may call it on every interaction cycle. Rendering —
// HTML, JSON, or PNG export — is handled by the render package and
// never feeds back into the pipeline.
package beastmaster
