package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arclebanon/arccms/internal/report"
	"github.com/arclebanon/arccms/internal/resolver"
	"github.com/arclebanon/arccms/internal/section"
	"github.com/arclebanon/arccms/internal/wagtail"
)

// degradedHeader is set on section responses when a CMS request failed.
const degradedHeader = "X-Arc-Degraded"

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCMSHealth probes the CMS. It answers 503 while the CMS is down so
// load balancers and scripts can poll it.
func (s *Server) handleCMSHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeError(w, http.StatusNotFound, "cms health check not configured")
		return
	}

	status := s.health.CheckHealth(r.Context())
	body := struct {
		wagtail.HealthStatus
		Status string `json:"status"`
	}{HealthStatus: status, Status: status.String()}

	code := http.StatusOK
	if !status.OK() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, body)
}

// handleSections resolves every section, or those named in the
// comma-separated "only" query parameter.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	var names []string
	if only := r.URL.Query().Get("only"); only != "" {
		for _, name := range strings.Split(only, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	sections, err := section.Select(names, s.sectionOpts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pages := resolver.RecordPage(s.src)
	outcomes := resolver.ResolveAll(r.Context(), pages, sections,
		resolver.WithLogger(s.logger),
		resolver.WithConcurrency(s.concurrency),
	)
	s.record(r, outcomes)

	run := report.NewRunReport(s.baseURL, pages.Page(), outcomes)
	if run.Degraded() {
		w.Header().Set(degradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, run)
}

// handleSection resolves one section.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sec, err := section.New(name, s.sectionOpts)
	if errors.Is(err, section.ErrUnknownSection) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	outcome := sec.ResolveOutcome(r.Context(), s.src, resolver.WithLogger(s.logger))
	s.record(r, []resolver.Outcome{outcome})

	if !outcome.OK() && outcome.Reason != resolver.ReasonNoContent {
		w.Header().Set(degradedHeader, "true")
	}
	writeJSON(w, http.StatusOK, outcome)
}

// handlePage returns an inspection of the home page. Repeated "type" query
// parameters restrict the blocks shown.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.src.HomePage(r.Context())
	if err != nil {
		code := http.StatusBadGateway
		if wagtail.Classify(err) == wagtail.KindNotFound {
			code = http.StatusNotFound
		}
		writeError(w, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report.Inspect(s.baseURL, page, r.URL.Query()["type"]...))
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.src.Stats())
}

// handleRefresh drops cached documents so the next request refetches.
func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.src.Invalidate()
	s.logger.Info("page cache invalidated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

// record stores outcomes when a recorder is configured. Failures are
// logged; the preview still answers.
func (s *Server) record(r *http.Request, outcomes []resolver.Outcome) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveOutcomes(r.Context(), outcomes); err != nil {
		s.logger.Warn("failed to record outcomes", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v) //nolint:errcheck // the client may have gone away
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
