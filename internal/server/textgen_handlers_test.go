package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePostText(t *testing.T) {
	cfg := testConfig(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "Plant a tree, grow a future."}]}}
			]
		}`))
	}))
	t.Cleanup(srv.Close)
	cfg.TextGenAPIURL = srv.URL

	s, app := setupTestServer(t, cfg)
	_, token := seedUser(t, s, 77)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/generate",
		map[string]string{"prompt": "caption for a tree planting event"}, token), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON[map[string]string](t, resp)
	assert.Equal(t, "Plant a tree, grow a future.", body["text"])
}

func TestGeneratePostText_EmptyPrompt(t *testing.T) {
	s, app := setupTestServer(t, testConfig(t))
	_, token := seedUser(t, s, 77)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/generate",
		map[string]string{"prompt": ""}, token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
