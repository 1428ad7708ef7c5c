package rest

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/scoring"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db     *store.Database
	stats  *repository.StatsRepository
	games  *repository.GameRepository
	teams  *repository.TeamRepository
	cache  *cache.RedisCache
	writer *analysis.Writer
	rules  *scoring.Rules
	runner *analysis.Runner
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, c *cache.RedisCache, writer *analysis.Writer, rules *scoring.Rules, runner *analysis.Runner) *Handler {
	return &Handler{
		db:     db,
		stats:  repository.NewStatsRepository(db),
		games:  repository.NewGameRepository(db),
		teams:  repository.NewTeamRepository(db),
		cache:  c,
		writer: writer,
		rules:  rules,
		runner: runner,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "healthy",
		"service": "gridiron",
		"version": "1.0.0",
	}

	if err := h.db.HealthCheck(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		}
	}

	respondJSON(w, http.StatusOK, status)
}

// ListReports returns the names of every report artifact a run produces
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"reports": analysis.ArtifactNames,
		"count":   len(analysis.ArtifactNames),
	})
}

// GetReport serves one report artifact, preferring the cache over disk
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	if !validReportName(name) {
		respondError(w, http.StatusNotFound, "Unknown report", nil)
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetReport(r.Context(), name); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	data, err := os.ReadFile(h.writer.Path(name))
	if err != nil {
		respondError(w, http.StatusNotFound, "Report not generated yet", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetPlayerGameLog returns one player's scored game log for a season
func (h *Handler) GetPlayerGameLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := vars["playerID"]

	season := 0
	if s := r.URL.Query().Get("season"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid season", err)
			return
		}
		season = parsed
	}

	rows, err := h.stats.PlayerGameLog(r.Context(), playerID, season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game log", err)
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusNotFound, "No games found for player", nil)
		return
	}

	scored := scoring.Apply(rows, h.rules)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player_id": playerID,
		"games":     scored,
		"count":     len(scored),
	})
}

// GetTeams returns every franchise
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetUpcomingGames returns games not yet marked final for a season
func (h *Handler) GetUpcomingGames(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing season", err)
		return
	}

	games, err := h.games.UpcomingGames(r.Context(), season)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// previewRequest is the body of a scoring preview call
type previewRequest struct {
	Position string             `json:"position"`
	Stats    map[string]float64 `json:"stats"`
}

// PreviewScore scores a hypothetical stat line under the loaded rules
func (h *Handler) PreviewScore(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Position == "" {
		respondError(w, http.StatusBadRequest, "position is required", nil)
		return
	}

	row := store.StatRow{Position: req.Position, Stats: req.Stats}
	points := scoring.Score(row, req.Position, h.rules)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"position":       req.Position,
		"fantasy_points": points,
	})
}

// TriggerAnalysis kicks off a full analysis run
func (h *Handler) TriggerAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.runner == nil {
		respondError(w, http.StatusServiceUnavailable, "Analysis runner not configured", nil)
		return
	}

	manifest, err := h.runner.Run(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Analysis run failed", err)
		return
	}

	respondJSON(w, http.StatusOK, manifest)
}

func validReportName(name string) bool {
	if name == "manifest" || name == "status" {
		return true
	}
	for _, known := range analysis.ArtifactNames {
		if name == known {
			return true
		}
	}
	return false
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
