package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buybuddysave/config"
	"buybuddysave/database"
	"buybuddysave/handlers"
	"buybuddysave/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()
	database.Init()
	websocket.InitHub()

	srv := httptest.NewServer(handlers.NewRouter())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/buddy_requests/",
		"/api/chat/",
		"/api/stores/",
		"/api/stores/deal/",
		"/api/stores/shopping_list/",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/stores/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	srv := newTestServer(t)

	creds := map[string]string{"username": "dupe", "password": "secret123"}
	resp := postJSON(t, srv.URL+"/api/auth/register/", creds)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/auth/register/", creds)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/auth/register/", map[string]string{"username": "eve", "password": "secret123"})

	resp := postJSON(t, srv.URL+"/api/auth/login/", map[string]string{"username": "eve", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateUnknownBuddyRequestIs404(t *testing.T) {
	srv := newTestServer(t)

	var auth struct {
		Token string `json:"token"`
	}
	resp := postJSON(t, srv.URL+"/api/auth/register/", map[string]string{"username": "mia", "password": "secret123"})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))

	body, _ := json.Marshal(map[string]string{"status": "accepted"})
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/buddy_requests/missing/", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	req.Header.Set("Content-Type", "application/json")

	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer putResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, putResp.StatusCode)
}
