// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new         → start (or resume) today's game
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Daily games are ordinary sessions: moves go through /game/{id}/key and
// /game/{id}/guess, and the result is recorded when the game finishes.
// Each player can finish one daily game per date.

package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv    *Server
	store  *daily.Store
	source daily.Source
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		srv:    s,
		store:  daily.NewStore(s.db),
		source: daily.Source{List: s.words, Salt: s.opts.DailySalt, Now: s.opts.Now},
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.daily.handleNew)
		r.Get("/leaderboard", s.daily.handleLeaderboard)
	})
}

// newRes is returned by /daily/new.
type newRes struct {
	Date string `json:"date"`
	game.Snapshot
}

// handleNew resumes today's unfinished game or starts one.
// A player who already has a result for today gets 409 already_played.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.srv.playerID(w, r)
	date, idx, answer := d.source.Today()

	played, err := d.store.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if played {
		writeJSON(w, http.StatusConflict, errorRes{Error: "already_played", Message: date})
		return
	}

	if sess, err := d.resume(r.Context(), uid, date); err == nil {
		writeJSON(w, http.StatusOK, newRes{Date: date, Snapshot: sess.Snapshot()})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, r, err)
		return
	}

	sess, err := game.NewSession(answer, d.srv.words)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := d.srv.startGame(r.Context(), sess, uid, modeDaily, date, idx); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRes{Date: date, Snapshot: sess.Snapshot()})
}

// resume finds the player's in-progress daily session for date.
func (d *dailyServer) resume(ctx context.Context, uid, date string) (*game.Session, error) {
	var id string
	err := d.srv.db.QueryRowContext(ctx, `SELECT id FROM games
	                                      WHERE player_id=? AND mode=? AND daily_date=? AND status=?
	                                      ORDER BY started_at DESC LIMIT 1`,
		uid, modeDaily, date, string(game.StatusInProgress)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.srv.sessions.Get(ctx, id)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.source.Today()
	}
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	rows, err := d.store.Leaderboard(r.Context(), date, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
