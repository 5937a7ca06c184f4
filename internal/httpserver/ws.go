// internal/httpserver/ws.go
//
// GET /game/{id}/ws plays a session over a WebSocket.
// The server sends the current snapshot on connect, then for every
// {"key": "..."} message it replies with the move result or {"error": ...}.
// Moves share the same load → move → save path as the REST routes.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsMoveTimeout = 5 * time.Second

// checkWSOrigin accepts non-browser clients, the configured client origin
// and same-host pages.
func (s *Server) checkWSOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.opts.ClientOrigin {
		return true
	}
	return strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://") == r.Host
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		log.Warn().Err(err).Str("gameId", id).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	l := log.With().Str("gameId", id).Str("req_id", chimw.GetReqID(r.Context())).Logger()
	l.Debug().Msg("websocket connected")

	if err := conn.WriteJSON(sess.Snapshot()); err != nil {
		return
	}

	base := context.WithoutCancel(r.Context())
	for {
		var msg keyReq
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		ctx, cancel := context.WithTimeout(base, wsMoveTimeout)
		res, err := s.pressKey(ctx, id, msg.Key)
		cancel()

		var out any = res
		if err != nil {
			_, body := errorStatus(err)
			out = body
			if errors.Is(err, context.DeadlineExceeded) {
				l.Warn().Err(err).Msg("websocket move timed out")
			}
		}
		if err := conn.WriteJSON(out); err != nil {
			l.Warn().Err(err).Msg("websocket write")
			return
		}
	}
}
