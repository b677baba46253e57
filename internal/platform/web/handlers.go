package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/poopy-snake/internal/registry"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type gameJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type scoreJSON struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type statsJSON struct {
	GameID     string     `json:"game_id"`
	Runs       int        `json:"runs"`
	Wins       int        `json:"wins"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	LongestRun int        `json:"longest_snake"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

type runJSON struct {
	RunID     string    `json:"run_id"`
	GameID    string    `json:"game_id"`
	Player    string    `json:"player,omitempty"`
	Points    int       `json:"points"`
	Length    int       `json:"length"`
	Steps     int       `json:"steps"`
	Outcome   string    `json:"outcome"`
	Width     int       `json:"width"`
	CreatedAt time.Time `json:"created_at"`
}

// requireGame rejects requests for variants that are not registered.
func requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chi.URLParam(r, "id"); !registry.Exists(id) {
			respondError(w, http.StatusNotFound, "unknown game "+strconv.Quote(id))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameJSON, len(games))
	for i, g := range games {
		out[i] = gameJSON{ID: g.ID, Title: g.Title}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) topScores(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	scores, err := s.board.TopScores(chi.URLParam(r, "id"), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]scoreJSON, len(scores))
	for i, e := range scores {
		out[i] = scoreJSON{Rank: i + 1, Score: e.Score, CreatedAt: e.CreatedAt}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) gameStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.board.GameStats(chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := statsJSON{
		GameID:     stats.GameID,
		Runs:       stats.RunCount,
		Wins:       stats.Wins,
		HighScore:  stats.HighScore,
		AvgScore:   stats.AvgScore,
		LongestRun: stats.LongestRun,
	}
	if !stats.LastPlayed.IsZero() {
		out.LastPlayed = &stats.LastPlayed
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) recentRuns(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	runs, err := s.board.RecentRuns(limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]runJSON, len(runs))
	for i, run := range runs {
		out[i] = runJSON{
			RunID:     run.RunID,
			GameID:    run.GameID,
			Player:    run.Player,
			Points:    run.Points,
			Length:    run.Length,
			Steps:     run.Steps,
			Outcome:   run.Outcome,
			Width:     run.Width,
			CreatedAt: run.CreatedAt,
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// parseLimit reads ?limit=, writing a 400 when it is not a positive
// integer. Large values are capped.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondError(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(n, maxLimit), true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}
