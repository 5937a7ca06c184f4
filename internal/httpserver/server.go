// internal/httpserver/server.go
//
// HTTP server wiring for the wordle backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, GET /game/{id},
//     POST /game/{id}/key, POST /game/{id}/guess, GET /game/{id}/ws.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Bookkeeping when a game finishes: games row, player stats, daily result.
//
// Notes:
//   - Sessions live in a store.Store; the HTTP layer only loads, applies one
//     move through the game package, and saves.
//   - A session ID is a random UUID and is the capability to play it.
//   - Players are identified by JWT when signed in, else an anonymous cookie.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/stats"
	"github.com/robalobadob/wordle-engine/internal/store"
	"github.com/robalobadob/wordle-engine/internal/words"
)

const (
	modeNormal = "normal"
	modeDaily  = "daily"
)

// Deps are the collaborators the server needs.
type Deps struct {
	Sessions store.Store
	Stats    stats.Store
	DB       *sql.DB
	Words    *words.List
}

// Options tune cookies, CORS and auth.
type Options struct {
	ClientOrigin   string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	Production     bool
	DailySalt      string
	RequestTimeout time.Duration
	Now            func() time.Time // for the daily word; defaults to time.Now
}

// Server bundles router, stores and DB handle.
type Server struct {
	r        *chi.Mux
	sessions store.Store
	stats    stats.Store
	db       *sql.DB
	words    *words.List
	daily    *dailyServer
	opts     Options
	upgrader websocket.Upgrader

	mu sync.Mutex // serialises load → move → save
}

// New constructs a Server, installs middleware, and registers routes.
func New(deps Deps, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.CookieName == "" {
		opts.CookieName = "wordle_token"
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.JWTExpiresDays <= 0 {
		opts.JWTExpiresDays = 14
	}
	s := &Server{
		r:        chi.NewRouter(),
		sessions: deps.Sessions,
		stats:    deps.Stats,
		db:       deps.DB,
		words:    deps.Words,
		opts:     opts,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkWSOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // zerolog access log
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// WebSocket play is long-lived, so it sits outside the timeout group.
	s.r.Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
		r.Use(jsonContentType)                    // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "wordle-engine",
				"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/key", "POST /game/{id}/guess", "/daily/*", "/auth/*"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.words.Stats()
			writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
		})

		// Game endpoints: optional auth, guests can play
		r.Group(func(r chi.Router) {
			r.Use(s.withOptionalAuth())
			r.Post("/game/new", s.handleNewGame)
			r.Get("/game/{id}", s.handleGetGame)
			r.Post("/game/{id}/key", s.handleKey)
			r.Post("/game/{id}/guess", s.handleGuess)
			r.Get("/stats/me", s.handleMyStats)

			// Daily Challenge
			s.mountDaily(r)
		})

		// Auth + profile (require auth where needed)
		s.mountAuthRoutes(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorStatus maps domain errors onto HTTP status and a stable error code.
func errorStatus(err error) (int, errorRes) {
	switch {
	case errors.Is(err, game.ErrNotInWordList):
		return http.StatusUnprocessableEntity, errorRes{"not_in_word_list", err.Error()}
	case errors.Is(err, game.ErrIncompleteGuess):
		return http.StatusConflict, errorRes{"incomplete_guess", err.Error()}
	case errors.Is(err, game.ErrInvalidTransition):
		return http.StatusConflict, errorRes{"invalid_transition", err.Error()}
	case errors.Is(err, game.ErrInvalidInput):
		return http.StatusBadRequest, errorRes{"invalid_input", err.Error()}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorRes{Error: "not_found"}
	}
	return http.StatusInternalServerError, errorRes{Error: "internal"}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("req_id", chimw.GetReqID(r.Context())).Msg("request failed")
	}
	writeJSON(w, status, body)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the optional payload for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}

// moveRes is returned by every move: the new snapshot plus the scored row
// when a guess was accepted.
type moveRes struct {
	game.Snapshot
	Row *game.Row `json:"row,omitempty"`
}

// handleNewGame creates a session with a random (or requested) answer.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // body is optional

	target := req.Answer
	if target == "" {
		target = s.words.RandomWord()
	}
	sess, err := game.NewSession(target, s.words)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.startGame(r.Context(), sess, s.playerID(w, r), modeNormal, "", 0); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// startGame saves a new session and its owner row.
func (s *Server) startGame(ctx context.Context, sess *game.Session, playerID, mode, date string, wordIndex int) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	var dailyDate any
	if mode == modeDaily {
		dailyDate = date
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO games (id, player_id, mode, daily_date, word_index, status, started_at)
	                                 VALUES (?,?,?,?,?,?,?)`,
		sess.ID(), playerID, mode, dailyDate, wordIndex, string(sess.Status()), sess.StartedAt().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert game row: %w", err)
	}
	log.Info().Str("gameId", sess.ID()).Str("player", playerID).Str("mode", mode).Msg("game started")
	return nil
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type keyReq struct {
	Key string `json:"key"`
}

// handleKey applies one key press (letter, BACKSPACE or ENTER).
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	res, err := s.pressKey(r.Context(), chi.URLParam(r, "id"), req.Key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) pressKey(ctx context.Context, id, key string) (moveRes, error) {
	return s.apply(ctx, id, func(sess *game.Session) (*game.Session, *game.Row, error) {
		row, err := sess.HandleKey(key)
		return sess, row, err
	})
}

type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess replaces the pending row with a whole word and submits it.
// Any rejection leaves the stored session exactly as it was.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json"})
		return
	}
	guess := strings.TrimSpace(req.Guess)
	if len(guess) != game.WordLength {
		writeError(w, r, fmt.Errorf("%w: guess must be %d letters", game.ErrInvalidInput, game.WordLength))
		return
	}

	res, err := s.apply(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) (*game.Session, *game.Row, error) {
		work := sess.Clone()
		for work.Pending() != "" {
			if err := work.InputBackspace(); err != nil {
				return nil, nil, err
			}
		}
		for _, ch := range guess {
			if err := work.InputLetter(ch); err != nil {
				return nil, nil, err
			}
		}
		row, err := work.SubmitGuess()
		if err != nil {
			return nil, nil, err
		}
		return work, &row, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// apply loads a session, runs move, saves the session move returns and
// does the end-of-game bookkeeping on the transition to won/lost.
func (s *Server) apply(ctx context.Context, id string, move func(*game.Session) (*game.Session, *game.Row, error)) (moveRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return moveRes{}, err
	}
	wasOver := sess.Status().Terminal()

	next, row, err := move(sess)
	if err != nil {
		return moveRes{}, err
	}
	if err := s.sessions.Save(ctx, next); err != nil {
		return moveRes{}, fmt.Errorf("save session: %w", err)
	}
	if row != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE games SET guesses=? WHERE id=?`, len(next.Rows()), id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("update guesses")
		}
	}
	if !wasOver && next.Status().Terminal() {
		s.finish(ctx, next)
	}
	return moveRes{Snapshot: next.Snapshot(), Row: row}, nil
}

// finish records a finished game: games row, player stats and, for daily
// games, the daily result. Failures are logged; the move already counted.
func (s *Server) finish(ctx context.Context, sess *game.Session) {
	o, _ := sess.Outcome()
	l := log.With().Str("gameId", sess.ID()).Str("status", string(o.Status)).Logger()

	var playerID, mode, date string
	var wordIndex int
	err := s.db.QueryRowContext(ctx,
		`SELECT player_id, mode, COALESCE(daily_date,''), COALESCE(word_index,0) FROM games WHERE id=?`, sess.ID(),
	).Scan(&playerID, &mode, &date, &wordIndex)
	if err != nil {
		l.Warn().Err(err).Msg("finished game has no owner row")
		return
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE games SET status=?, guesses=?, finished_at=? WHERE id=?`,
		string(o.Status), len(sess.Rows()), time.Now().UTC().Format(time.RFC3339), sess.ID()); err != nil {
		l.Warn().Err(err).Msg("finish game row")
	}

	won, guesses := stats.FromOutcome(o)
	if _, err := s.stats.Record(ctx, playerID, won, guesses); err != nil {
		l.Warn().Err(err).Str("player", playerID).Msg("record stats")
	}

	if mode == modeDaily {
		res := daily.Result{
			PlayerID:  playerID,
			Date:      date,
			WordIndex: wordIndex,
			Guesses:   len(sess.Rows()),
			Won:       won,
			ElapsedMs: time.Since(sess.StartedAt()).Milliseconds(),
		}
		if err := s.daily.store.InsertResult(ctx, res); err != nil {
			l.Warn().Err(err).Msg("insert daily result")
		}
	}
	l.Info().Str("player", playerID).Int("rows", len(sess.Rows())).Msg("game finished")
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	stats.Record
	WinRate int `json:"winRate"`
}

// handleMyStats returns the caller's statistics (zero values for new players).
func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	rec, err := s.stats.Get(r.Context(), s.playerID(w, r))
	if err != nil && !errors.Is(err, stats.ErrNotFound) {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Record: rec, WinRate: rec.WinRate()})
}
