// Package api serves the network state and compute operations over HTTP.
// GET endpoints are public (read-only). POST endpoints require a bearer
// token and carry rate limits: recalculation is explicit, never implicit.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hydronet/internal/hydro"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/persistence"
	"github.com/talgya/hydronet/internal/units"
)

// Server serves one in-memory network over HTTP.
type Server struct {
	Engine   *hydro.Engine
	DB       *persistence.DB
	Port     int
	AdminKey string // bearer token for POST endpoints; empty = POST disabled

	mu  sync.RWMutex
	net *network.Network
}

// NewServer wires a server around a network.
func NewServer(eng *hydro.Engine, db *persistence.DB, net *network.Network, port int, adminKey string) *Server {
	return &Server{
		Engine:   eng,
		DB:       db,
		Port:     port,
		AdminKey: adminKey,
		net:      net,
	}
}

// Network returns the current network snapshot (deep copy).
func (s *Server) Network() *network.Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net.Clone()
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	computeLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	// Public, read-only.
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/network", s.handleNetwork)
	mux.HandleFunc("GET /api/v1/nodes/{id}", s.handleNode)
	mux.HandleFunc("GET /api/v1/pipes/{id}", s.handlePipe)
	mux.HandleFunc("GET /api/v1/pipes/{id}/results", s.handlePipeResults)
	mux.HandleFunc("GET /api/v1/convert", s.handleConvert)
	mux.HandleFunc("GET /api/v1/snapshots", s.handleSnapshots)

	// Admin control plane.
	mux.HandleFunc("POST /api/v1/recalc/{id}",
		s.requireAdmin(RateLimitMiddleware(computeLimiter, s.handleRecalc)))
	mux.HandleFunc("POST /api/v1/propagate/{source}",
		s.requireAdmin(RateLimitMiddleware(computeLimiter, s.handlePropagate)))
	mux.HandleFunc("POST /api/v1/snapshots",
		s.requireAdmin(s.handleSaveSnapshot))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	go func() {
		slog.Info("api server listening", "addr", addr)
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	nodes, pipes := len(s.net.Nodes), len(s.net.Pipes)
	computed := 0
	for _, p := range s.net.Pipes {
		if p.Results != nil {
			computed++
		}
	}
	s.mu.RUnlock()

	status := map[string]any{
		"name":           "hydronet",
		"nodes":          humanize.Comma(int64(nodes)),
		"pipes":          humanize.Comma(int64(pipes)),
		"computed_pipes": humanize.Comma(int64(computed)),
	}

	if s.DB != nil {
		if infos, err := s.DB.ListSnapshots(); err == nil {
			status["snapshots"] = len(infos)
			if len(infos) > 0 {
				status["last_snapshot"] = humanize.Time(infos[0].CreatedAt)
			}
		}
	}
	writeJSON(w, status)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Network())
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad node id", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.net.Node(network.NodeID(id))
	if !ok {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}
	writeJSON(w, node)
}

func (s *Server) handlePipe(w http.ResponseWriter, r *http.Request) {
	pipe, ok := s.lookupPipe(w, r)
	if !ok {
		return
	}
	writeJSON(w, pipe)
}

func (s *Server) handlePipeResults(w http.ResponseWriter, r *http.Request) {
	pipe, ok := s.lookupPipe(w, r)
	if !ok {
		return
	}
	if pipe.Results == nil {
		http.Error(w, "pipe has no results yet", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"results": pipe.Results,
		"summary": pipe.Summary,
	})
}

func (s *Server) lookupPipe(w http.ResponseWriter, r *http.Request) (*network.Pipe, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad pipe id", http.StatusBadRequest)
		return nil, false
	}

	s.mu.RLock()
	pipe, ok := s.net.Pipe(network.PipeID(id))
	var copied *network.Pipe
	if ok {
		copied = pipe.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "pipe not found", http.StatusNotFound)
		return nil, false
	}
	return copied, true
}

// handleConvert exposes the tolerant unit conversion used by display
// formatting: GET /api/v1/convert?value=50&from=mm&to=m&family=length.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil {
		http.Error(w, "bad value", http.StatusBadRequest)
		return
	}
	family, ok := units.FamilyByName(q.Get("family"))
	if !ok {
		http.Error(w, "unknown family", http.StatusBadRequest)
		return
	}

	converted, ok := units.ConvertScalar(value, units.Unit(q.Get("from")), units.Unit(q.Get("to")), family)
	if !ok {
		http.Error(w, "unsupported unit for family", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"value":  converted,
		"unit":   q.Get("to"),
		"family": family.String(),
	})
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no snapshot store", http.StatusNotFound)
		return
	}
	infos, err := s.DB.ListSnapshots()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, infos)
}

func (s *Server) handleRecalc(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad pipe id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pipe, ok := s.net.Pipe(network.PipeID(id))
	if !ok {
		http.Error(w, "pipe not found", http.StatusNotFound)
		return
	}
	boundary, _ := s.net.Node(pipe.Upstream())

	results, summary, err := s.Engine.RecalculateSegment(pipe, boundary)
	if err != nil {
		// Engine failures are structured results, not crashes: previous
		// results stay in place and the caller sees why.
		writeJSON(w, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, map[string]any{
		"results": results,
		"summary": summary,
	})
}

func (s *Server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	source, err := strconv.ParseUint(r.PathValue("source"), 10, 64)
	if err != nil {
		http.Error(w, "bad source node id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Engine.Propagate(s.net, network.NodeID(source))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Adopt the propagated snapshot as the live network.
	s.net = res.Network

	writeJSON(w, map[string]any{
		"updated_nodes": res.UpdatedNodes,
		"updated_pipes": res.UpdatedPipes,
		"warnings":      res.Warnings,
	})
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "no snapshot store", http.StatusNotFound)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "manual"
	}

	id, err := s.DB.SaveSnapshot(name, s.Network())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"id": id, "name": name})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
