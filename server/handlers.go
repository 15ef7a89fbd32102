package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/beastmaster-org/beastmaster/bestiary"
	"github.com/beastmaster-org/beastmaster/render"
	"github.com/beastmaster-org/beastmaster/report"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	crit := criteriaFromQuery(r.URL.Query(), s.codex.DefaultCriteria())
	d := report.Build(s.codex, crit)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderHTML(w, d); err != nil {
		s.log.Error("render dashboard", "error", err)
	}
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	crit := criteriaFromQuery(r.URL.Query(), s.codex.DefaultCriteria())
	d := report.Build(s.codex, crit)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		s.log.Error("encode dashboard", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// criteriaFromQuery reads widget values from query parameters; absent or
// unparsable parameters keep their full-range defaults.
func criteriaFromQuery(q url.Values, def bestiary.Criteria) bestiary.Criteria {
	crit := def
	crit.MinAC = floatParam(q, "min_ac", def.MinAC)
	crit.MaxAC = floatParam(q, "max_ac", def.MaxAC)
	crit.MinHP = floatParam(q, "min_hp", def.MinHP)
	crit.MaxHP = floatParam(q, "max_hp", def.MaxHP)
	crit.MinCR = floatParam(q, "min_cr", def.MinCR)
	crit.MaxCR = floatParam(q, "max_cr", def.MaxCR)
	crit.LegendaryOnly = q.Get("legendary") == "1" || q.Get("legendary") == "true"
	return crit
}

func floatParam(q url.Values, key string, def float64) float64 {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}
