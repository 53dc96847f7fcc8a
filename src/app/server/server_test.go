package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
	"hattournament/src/infra/config"
	"hattournament/src/infra/memstore"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newClient(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{
		Log:       config.LogConfig{Level: "error"},
		Auth:      config.AuthConfig{TokenLifetime: time.Hour, BcryptCost: 4},
		Admin:     config.AdminConfig{Secret: "wipe"},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	srv := New(cfg, slog.New(slog.DiscardHandler), memstore.New())
	return &client{t: t, router: srv.Router()}
}

// do sends a JSON request and decodes the "data" envelope into out.
func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		env := struct {
			Data json.RawMessage `json:"data"`
		}{}
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return w.Code
}

func (c *client) errorCode(method, path string, body any) (int, string) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env.Error.Code
}

func (c *client) login(username string) {
	c.t.Helper()
	creds := map[string]string{"username": username, "password": "secret-pw"}
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/v1/users/register", creds, nil))

	var tok struct {
		Token string `json:"token"`
	}
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/v1/users/login", creds, &tok))
	require.NotEmpty(c.t, tok.Token)
	c.token = tok.Token
}

func TestServer_RequiresToken(t *testing.T) {
	c := newClient(t)

	status, code := c.errorCode(http.MethodGet, "/v1/tournaments", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, domain.KindUnauthorized, code)

	c.token = "not-a-token"
	status, _ = c.errorCode(http.MethodGet, "/v1/tournaments", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_TournamentFlow(t *testing.T) {
	c := newClient(t)
	c.login("host")

	var tr domain.Tournament
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/v1/tournaments", map[string]string{"name": "Cup"}, &tr))

	pairs := make([]int64, 0, 4)
	for i := range 4 {
		var p domain.PlayerPair
		body := map[string]string{"first_player": fmt.Sprintf("a%d", i), "second_player": fmt.Sprintf("b%d", i)}
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/tournaments/%d/pairs", tr.ID), body, &p))
		pairs = append(pairs, p.ID)
	}
	for _, w := range []string{"apple", "river", "cloud", "stone"} {
		body := map[string]any{"text": w, "difficulty": 1}
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/tournaments/%d/words", tr.ID), body, nil))
	}

	var round domain.Round
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/tournaments/%d/rounds", tr.ID), map[string]string{"name": "R1"}, &round))
	var sub domain.Subround
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/rounds/%d/subrounds", round.ID), map[string]string{"name": "S1"}, &sub))

	for _, p := range pairs {
		require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, fmt.Sprintf("/v1/rounds/%d/pairs", round.ID), map[string]int64{"pair_id": p}, nil))
		require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/pairs", sub.ID), map[string]int64{"pair_id": p}, nil))
	}

	var words []domain.Word
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/words", sub.ID), map[string]int{"difficulty": 1, "amount": 3}, &words))
	assert.Len(t, words, 3)
	status, code := c.errorCode(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/words", sub.ID), map[string]int{"difficulty": 1, "amount": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, domain.KindInsufficientWords, code)

	status, code = c.errorCode(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/split", sub.ID), map[string]int{"games": 3})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, domain.KindInvalidGameSize, code)

	var split struct {
		Games []domain.Game `json:"games"`
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/split", sub.ID), map[string]int{"games": 2}, &split))
	require.Len(t, split.Games, 2)

	status, code = c.errorCode(http.MethodPost, fmt.Sprintf("/v1/subrounds/%d/split", sub.ID), map[string]int{"games": 2})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.KindAlreadyExists, code)

	game := split.Games[0]
	result := map[string]int{}
	for i, p := range game.Participants {
		result[fmt.Sprint(p)] = 10 - i
	}
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, fmt.Sprintf("/v1/games/%d/result", game.ID), map[string]any{"results": result}, nil))

	status, code = c.errorCode(http.MethodPost, fmt.Sprintf("/v1/games/%d/result", game.ID), map[string]any{"results": result})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.KindAlreadyExists, code)

	var standings struct {
		Standings []domain.Standing `json:"standings"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/v1/rounds/%d/results", round.ID), nil, &standings))
	require.Len(t, standings.Standings, 4)
	assert.Equal(t, game.Participants[0], standings.Standings[0].PairID)
	assert.Equal(t, 10, standings.Standings[0].Score)

	var top struct {
		Pairs []int64 `json:"pairs"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/v1/rounds/%d/top?n=1", round.ID), nil, &top))
	assert.Equal(t, []int64{game.Participants[0]}, top.Pairs)
	status, _ = c.errorCode(http.MethodGet, fmt.Sprintf("/v1/rounds/%d/top?n=0", round.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, fmt.Sprintf("/v1/games/%d/result", game.ID), nil, nil))
	status, code = c.errorCode(http.MethodGet, fmt.Sprintf("/v1/games/%d/result", game.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.KindNotFound, code)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/v1/rounds/%d/results", round.ID), nil, &standings))
	for _, st := range standings.Standings {
		assert.Zero(t, st.Score)
	}

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, fmt.Sprintf("/v1/subrounds/%d/split", sub.ID), nil, nil))
	var games []domain.Game
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, fmt.Sprintf("/v1/subrounds/%d/games", sub.ID), nil, &games))
	assert.Empty(t, games)
}

func TestServer_OtherUsersSeeNotFound(t *testing.T) {
	c := newClient(t)
	c.login("alice")
	var tr domain.Tournament
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/v1/tournaments", map[string]string{"name": "Cup"}, &tr))

	c.token = ""
	c.login("bob")
	status, code := c.errorCode(http.MethodGet, fmt.Sprintf("/v1/tournaments/%d", tr.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.KindNotFound, code)
}

func TestServer_Logout(t *testing.T) {
	c := newClient(t)
	c.login("host")

	require.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/v1/users/logout", nil, nil))
	status, _ := c.errorCode(http.MethodGet, "/v1/tournaments", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_BadPathAndPayload(t *testing.T) {
	c := newClient(t)
	c.login("host")

	status, code := c.errorCode(http.MethodGet, "/v1/rounds/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.KindValidation, code)

	status, _ = c.errorCode(http.MethodPost, "/v1/tournaments", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_AdminResetAndHealth(t *testing.T) {
	c := newClient(t)
	c.login("host")

	status, code := c.errorCode(http.MethodDelete, "/v1/admin/data", map[string]string{"secret": "nope"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, domain.KindForbidden, code)

	require.Equal(t, http.StatusOK, c.do(http.MethodDelete, "/v1/admin/data", map[string]string{"secret": "wipe"}, nil))
	status, _ = c.errorCode(http.MethodGet, "/v1/tournaments", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "tokens are wiped too")

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage"`)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	c := newClient(t)

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "hat_subround_splits_total"))
}

func TestServer_NoRoute(t *testing.T) {
	c := newClient(t)
	status, code := c.errorCode(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", code)
}
