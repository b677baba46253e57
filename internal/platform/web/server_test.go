package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	_ "github.com/vovakirdan/poopy-snake/internal/games/snake"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewServer(store, log.New(io.Discard)).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, expected %d", url, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	getJSON(t, srv.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("healthz = %v", body)
	}
}

func TestListGames(t *testing.T) {
	srv, _ := newTestServer(t)

	var games []gameJSON
	getJSON(t, srv.URL+"/games", http.StatusOK, &games)
	if len(games) != 2 || games[0].ID != "snake" || games[1].ID != "snake_hard" {
		t.Errorf("games = %+v", games)
	}
}

func TestTopScores(t *testing.T) {
	srv, store := newTestServer(t)
	for _, s := range []int{3, 11, 7} {
		store.SaveScore("snake", s)
	}

	var scores []scoreJSON
	getJSON(t, srv.URL+"/games/snake/scores?limit=2", http.StatusOK, &scores)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0].Rank != 1 || scores[0].Score != 11 || scores[1].Score != 7 {
		t.Errorf("scores = %+v", scores)
	}
}

func TestScoresErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/games/tetris/scores", http.StatusNotFound},
		{"/games/tetris/stats", http.StatusNotFound},
		{"/games/snake/scores?limit=abc", http.StatusBadRequest},
		{"/games/snake/scores?limit=0", http.StatusBadRequest},
		{"/runs?limit=-3", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			var body map[string]string
			getJSON(t, srv.URL+tc.path, tc.status, &body)
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestStatsAndRuns(t *testing.T) {
	srv, store := newTestServer(t)
	store.SaveRun(storage.RunResult{GameID: "snake_hard", Player: "bob", Points: 4, Length: 7, Outcome: "lost", Width: 16})
	store.SaveRun(storage.RunResult{GameID: "snake_hard", Points: 24, Length: 25, Outcome: "won", Width: 5})

	var stats statsJSON
	getJSON(t, srv.URL+"/games/snake_hard/stats", http.StatusOK, &stats)
	if stats.Runs != 2 || stats.Wins != 1 || stats.HighScore != 24 || stats.LastPlayed == nil {
		t.Errorf("stats = %+v", stats)
	}

	var empty statsJSON
	getJSON(t, srv.URL+"/games/snake/stats", http.StatusOK, &empty)
	if empty.Runs != 0 || empty.LastPlayed != nil {
		t.Errorf("empty stats = %+v", empty)
	}

	var runs []runJSON
	getJSON(t, srv.URL+"/runs", http.StatusOK, &runs)
	if len(runs) != 2 || runs[0].Outcome != "won" || runs[1].Player != "bob" || runs[0].RunID == "" {
		t.Errorf("runs = %+v", runs)
	}
}

type brokenBoard struct{}

var errBroken = errors.New("disk on fire")

func (brokenBoard) TopScores(string, int) ([]storage.ScoreEntry, error) { return nil, errBroken }
func (brokenBoard) GameStats(string) (*storage.GameStats, error)        { return nil, errBroken }
func (brokenBoard) RecentRuns(int) ([]storage.RunResult, error)         { return nil, errBroken }

func TestStoreFailure(t *testing.T) {
	srv := httptest.NewServer(NewServer(brokenBoard{}, log.New(io.Discard)).Routes())
	defer srv.Close()

	for _, path := range []string{"/games/snake/scores", "/games/snake/stats", "/runs"} {
		var body map[string]string
		getJSON(t, srv.URL+path, http.StatusInternalServerError, &body)
		if body["error"] != "internal error" {
			t.Errorf("%s error = %q", path, body["error"])
		}
	}
}
