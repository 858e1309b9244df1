package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/wricardo/gridpath/maze/config"
	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/puzzle"
	"github.com/wricardo/gridpath/maze/run"
	"github.com/wricardo/gridpath/maze/service"
	"github.com/wricardo/gridpath/transport/websocket"
)

// maxBodyBytes caps request bodies; puzzles are small text grids.
const maxBodyBytes = 4 << 20

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil to disable broadcasts.
func NewServer(solverService service.SolverService, hub *websocket.Hub) *Server {
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Solving
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")

	// Runs
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")
	api.HandleFunc("/runs/{id}/cells", s.handleRunCells).Methods("GET")
	api.HandleFunc("/runs/{id}/shortcuts", s.handleRunShortcuts).Methods("GET")

	// Puzzles
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles", s.handleCreatePuzzle).Methods("POST")
	api.HandleFunc("/puzzles/{name}", s.handleGetPuzzle).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{"error": message, "code": status})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrPuzzleNotFound), errors.Is(err, run.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, config.ErrInvalidPuzzle),
		errors.Is(err, puzzle.ErrInvalid),
		errors.Is(err, grid.ErrConfiguration),
		errors.Is(err, service.ErrBadFrontier),
		errors.Is(err, service.ErrPuzzleRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// Solve Handler

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Query parameters fill in what the body leaves out
	query := r.URL.Query()
	if req.PuzzleID == "" {
		req.PuzzleID = query.Get("puzzle")
	}
	if req.Frontier == "" {
		req.Frontier = query.Get("frontier")
	}
	if query.Get("render") == "true" {
		req.Render = true
	}

	report, err := s.service.Solve(r.Context(), &req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastRun(report)
	}
	respondJSON(w, http.StatusCreated, report)
}

// Run Handlers

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.ListRuns(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created" (default), "accessed"
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of runs to return
	puzzleID := query.Get("puzzle")

	if sortBy == "" {
		sortBy = "created"
	}
	if order == "" {
		order = "desc"
	}

	if puzzleID != "" {
		filtered := runs[:0]
		for _, info := range runs {
			if info.PuzzleID == puzzleID {
				filtered = append(filtered, info)
			}
		}
		runs = filtered
	}
	total := len(runs)

	sort.SliceStable(runs, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "accessed" {
			ti, tj = runs[i].LastAccessedAt, runs[j].LastAccessedAt
		} else {
			ti, tj = runs[i].CreatedAt, runs[j].CreatedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	// Apply limit if specified
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(runs) {
			runs = runs[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"total": total,
		"runs":  runs,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	info, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := s.service.DeleteRun(r.Context(), runID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(info.PuzzleID, websocket.EventRunDeleted, map[string]string{"run_id": info.ID})
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

func (s *Server) handleRunCells(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	report := info.Report

	response := map[string]interface{}{
		"run_id":    info.ID,
		"reachable": report.Reachable,
		"cost":      report.Cost,
		"count":     report.CellCount,
		"cells":     report.OptimalCells,
	}
	if r.URL.Query().Get("render") == "true" {
		p, err := s.service.LoadPuzzle(r.Context(), info.PuzzleID)
		if err == nil {
			if board, err := puzzle.Build(p); err == nil {
				marked := make(map[grid.Position]bool, len(report.OptimalCells))
				for _, c := range report.OptimalCells {
					marked[c] = true
				}
				response["rendered"] = grid.Render(board.Grid, grid.DefaultLegend, 'O', func(p grid.Position) bool {
					return marked[p]
				})
			}
		}
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleRunShortcuts(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if info.Report.Shortcuts == nil {
		respondError(w, http.StatusNotFound, "run has no shortcut analysis; solve with cheat_budget set")
		return
	}
	respondJSON(w, http.StatusOK, info.Report.Shortcuts)
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(puzzles),
		"puzzles": puzzles,
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.LoadPuzzle(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string         `json:"puzzle_id"`
		Puzzle   *puzzle.Puzzle `json:"puzzle"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.PuzzleID == "" || req.Puzzle == nil {
		respondError(w, http.StatusBadRequest, "puzzle_id and puzzle are required")
		return
	}

	if err := s.service.SavePuzzle(r.Context(), req.PuzzleID, req.Puzzle); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Puzzle saved successfully",
		"puzzle_id": req.PuzzleID,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket disabled", http.StatusServiceUnavailable)
		return
	}

	topic := r.URL.Query().Get("puzzle")
	if topic != "" && topic != websocket.AllTopics {
		// Verify puzzle exists
		if _, err := s.service.LoadPuzzle(r.Context(), topic); err != nil {
			http.Error(w, "unknown puzzle", http.StatusNotFound)
			return
		}
	}

	s.hub.ServeWS(w, r, topic)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
