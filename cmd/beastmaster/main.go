package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/config"
	"github.com/beastmaster-org/beastmaster/render"
	"github.com/beastmaster-org/beastmaster/report"
	"github.com/beastmaster-org/beastmaster/server"
)

// ============================================================================
// BEASTMASTER CLI — The Beastmaster's Ledge
// ============================================================================

const version = "0.1.0"

func main() {
	filePath := flag.String("file", "", "Path to the monsters CSV (or DATA_FILE env)")
	format := flag.String("format", "html", "Output format: html, json, pretty")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	exportDir := flag.String("export-dir", "", "Also export static PNGs of exportable charts into this directory")
	serve := flag.Bool("serve", false, "Serve the interactive dashboard over HTTP")
	addr := flag.String("addr", "", "Listen address for --serve (overrides ADDR env)")

	minAC := flag.Float64("min-ac", -1, "Min AC filter (default: observed minimum)")
	maxAC := flag.Float64("max-ac", -1, "Max AC filter (default: observed maximum)")
	minHP := flag.Float64("min-hp", -1, "Min HP filter (default: observed minimum)")
	maxHP := flag.Float64("max-hp", -1, "Max HP filter (default: observed maximum)")
	minCR := flag.Float64("min-cr", -1, "Min CR filter (default: 0)")
	maxCR := flag.Float64("max-cr", -1, "Max CR filter (default: observed maximum)")
	legendaryOnly := flag.Bool("legendary-only", false, "Keep only creatures marked Legendary")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Beastmaster — the Beastmaster's Ledge

Usage:
  beastmaster --file monsters.csv --format html --out ledger.html
  beastmaster --file monsters.csv --format json --min-cr 5 --legendary-only
  beastmaster --file monsters.csv --serve --addr :8080
  beastmaster --file monsters.csv --export-dir charts/

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  DATA_FILE    Monsters CSV path (flag --file wins)
  ADDR         Listen address for --serve (default :8080)
  LOG_LEVEL    debug, info, warn, error (default info)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("beastmaster %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)

	path := *filePath
	if path == "" {
		path = cfg.DataFile
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: --file (or DATA_FILE) is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("Failed to read file: %v", err)
	}

	codex, err := bestiary.Load(data)
	if err != nil {
		fatalf("Failed to parse bestiary CSV: %v", err)
	}
	log.Info("bestiary loaded", "file", path, "creatures", codex.Len())

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		srv := server.New(cfg, codex, log)
		if err := srv.Run(ctx); err != nil {
			fatalf("Server failed: %v", err)
		}
		log.Info("server stopped")
		return
	}

	// ── One-shot mode ─────────────────────────────────────────────────────
	crit := criteriaFromFlags(codex,
		*minAC, *maxAC, *minHP, *maxHP, *minCR, *maxCR, *legendaryOnly)
	dashboard := report.Build(codex, crit)
	log.Info("dashboard built", "sections", len(dashboard.Sections), "noMatches", dashboard.NoMatches)

	if *exportDir != "" {
		written, err := render.ExportPNGs(*exportDir, dashboard)
		if err != nil {
			fatalf("PNG export failed: %v", err)
		}
		for _, p := range written {
			log.Info("chart exported", "path", p)
		}
	}

	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	switch *format {
	case "html":
		if err := render.RenderHTML(writer, dashboard); err != nil {
			fatalf("HTML render failed: %v", err)
		}
	case "json", "pretty":
		enc := json.NewEncoder(writer)
		if *format == "pretty" {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(dashboard); err != nil {
			fatalf("Failed to marshal output: %v", err)
		}
	default:
		fatalf("Unknown format %q (want html, json, or pretty)", *format)
	}

	if *outFile != "" {
		log.Info("output written", "path", *outFile)
	}
}

// criteriaFromFlags overlays explicit filter flags onto the full-range
// defaults. Negative values mean "not set" — stats in this dataset are
// non-negative.
func criteriaFromFlags(codex *bestiary.Codex, minAC, maxAC, minHP, maxHP, minCR, maxCR float64, legendaryOnly bool) bestiary.Criteria {
	crit := codex.DefaultCriteria()
	if minAC >= 0 {
		crit.MinAC = minAC
	}
	if maxAC >= 0 {
		crit.MaxAC = maxAC
	}
	if minHP >= 0 {
		crit.MinHP = minHP
	}
	if maxHP >= 0 {
		crit.MaxHP = maxHP
	}
	if minCR >= 0 {
		crit.MinCR = minCR
	}
	if maxCR >= 0 {
		crit.MaxCR = maxCR
	}
	crit.LegendaryOnly = legendaryOnly
	return crit
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
