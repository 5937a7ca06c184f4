package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-engine/internal/game"
)

func (e *testEnv) dialWS(id string, header http.Header) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(e.http.URL, "http") + "/game/" + id + "/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

func TestWebSocketPlay(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame(e.client(), "CRATE")

	conn, _, err := e.dialWS(g.ID, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Given: the initial snapshot
	var snap moveBody
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, g.ID, snap.ID)
	assert.Equal(t, game.StatusInProgress, snap.Status)

	send := func(key string) moveBody {
		t.Helper()
		require.NoError(t, conn.WriteJSON(keyReq{Key: key}))
		var m moveBody
		require.NoError(t, conn.ReadJSON(&m))
		return m
	}

	// When: typing and submitting too early
	assert.Equal(t, "T", send("t").Pending)
	assert.Equal(t, "incomplete_guess", send("ENTER").Error)
	assert.Equal(t, "invalid_transition", send("F1").Error)

	// Then: a full row is scored
	for _, k := range "RACE" {
		send(string(k))
	}
	m := send("ENTER")
	require.NotNil(t, m.Row)
	assert.Equal(t, []game.LetterState{P, C, C, P, C}, m.Row.States)

	// And: moves are visible over REST
	var got moveBody
	require.Equal(t, http.StatusOK, e.do(e.client(), http.MethodGet, "/game/"+g.ID, nil, &got))
	assert.Len(t, got.Rows, 1)
}

func TestWebSocketUnknownGame(t *testing.T) {
	e := newTestEnv(t)

	_, res, err := e.dialWS("missing", nil)

	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestWebSocketOrigin(t *testing.T) {
	e := newTestEnv(t)
	g := e.newGame(e.client(), "CRATE")

	_, res, err := e.dialWS(g.ID, http.Header{"Origin": {"http://evil.example"}})

	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
