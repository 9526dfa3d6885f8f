// Package server exposes loaded metadata over HTTP: a query endpoint and
// Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vegasq/parqprof/query"
)

// Server serves queries over an immutable, already-loaded metadata set.
// The engine is read-only, so handlers need no locking.
type Server struct {
	engine *query.Engine
	log    zerolog.Logger
}

// New creates a server around a query engine.
func New(engine *query.Engine, log zerolog.Logger) *Server {
	return &Server{engine: engine, log: log}
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the successful response of POST /query.
type QueryResponse struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving the router on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("serving metadata queries")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	rs, err := s.engine.Execute(req.Query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrParse) || errors.Is(err, query.ErrUnknownTable) ||
			errors.Is(err, query.ErrQueryTooLong) || errors.Is(err, query.ErrTooManyConditions) {
			status = http.StatusBadRequest
		}
		s.log.Warn().Err(err).Str("query", req.Query).Msg("query rejected")
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	resp := QueryResponse{Columns: rs.Columns, Rows: make([]map[string]string, 0, len(rs.Records))}
	for _, rec := range rs.Records {
		row := make(map[string]string, len(rec.Fields))
		for _, f := range rec.Fields {
			row[f.Key] = f.Value
		}
		resp.Rows = append(resp.Rows, row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
