package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-room/server/ai"
	"holdem-room/server/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Router(game.NewRegistry(), nil, ai.DefaultProfiles))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["ok"])
}

func TestCreateAndFetchGame(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/poker/games", map[string]any{
		"user_id":   "u1",
		"user_name": "Ada",
		"ai_count":  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode(t, resp)

	id, _ := created["game_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "playing", created["status"])
	assert.Len(t, created["players"], 3)
	assert.Equal(t, float64(0), created["my_position"])

	get, err := http.Get(srv.URL + "/api/poker/games/" + id + "?viewer=u1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, get.StatusCode)
	state := decode(t, get)
	assert.Equal(t, id, state["game_id"])
	assert.Equal(t, float64(1), state["hand_number"])
}

func TestCreateRequiresUser(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/poker/games", map[string]any{"ai_count": 2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownGameIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/poker/games/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestActionFromStrangerIsForbidden(t *testing.T) {
	srv := newTestServer(t)

	created := decode(t, postJSON(t, srv.URL+"/api/poker/games", map[string]any{
		"user_id": "u1", "ai_count": 2,
	}))
	id := created["game_id"].(string)

	resp := postJSON(t, srv.URL+"/api/poker/games/"+id+"/action", map[string]any{
		"user_id": "intruder", "action": 0,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAIStepAdvancesOrNoops(t *testing.T) {
	srv := newTestServer(t)

	created := decode(t, postJSON(t, srv.URL+"/api/poker/games", map[string]any{
		"user_id": "u1", "ai_count": 3,
	}))
	id := created["game_id"].(string)

	resp := postJSON(t, srv.URL+"/api/poker/games/"+id+"/ai-step?viewer=u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode(t, resp)
	assert.Contains(t, []any{"playing", "hand_over", "game_over"}, snap["status"])
}
