package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentCRUD(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	w := ts.do(http.MethodPost, "/admin/api/content/projects", gin.H{
		"title": "Portal", "description": "Customer portal", "status": "Planning",
		"technologies": []string{"Go"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	w = ts.do(http.MethodGet, "/admin/api/content/projects/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[map[string]any](t, w))

	w = ts.do(http.MethodPatch, "/admin/api/content/projects/"+id, gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Completed", decode[map[string]any](t, w)["status"])

	w = ts.do(http.MethodGet, "/admin/api/content/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = ts.do(http.MethodDelete, "/admin/api/content/projects/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(http.MethodDelete, "/admin/api/content/projects/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodGet, "/admin/api/content/projects/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodPatch, "/admin/api/content/projects/"+id, gin.H{})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	cases := []struct {
		method, path string
		body         any
		want         int
	}{
		{http.MethodGet, "/admin/api/content/widgets", nil, http.StatusNotFound},
		{http.MethodGet, "/admin/api/content/faq/not-a-valid-id", nil, http.StatusBadRequest},
		{http.MethodDelete, "/admin/api/content/faq/123", nil, http.StatusBadRequest},
		{http.MethodPost, "/admin/api/content/messages", gin.H{"name": "n", "email": "n@example.com", "message": "m", "status": "Bogus"}, http.StatusBadRequest},
		{http.MethodPost, "/admin/api/content/faq", "[1,2]", http.StatusBadRequest},
		{http.MethodGet, "/admin/api/config/faq", nil, http.StatusNotFound},
		{http.MethodPut, "/admin/api/config/stats", gin.H{"happyClients": -1}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s", tc.method, tc.path), func(t *testing.T) {
			w := ts.do(tc.method, tc.path, tc.body)
			require.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}

	w := ts.do(http.MethodPost, "/admin/api/content/messages", gin.H{"name": "n", "email": "n@example.com", "message": "m", "status": "Bogus"})
	assert.Contains(t, decode[map[string]any](t, w)["reason"], "status")
}

func TestContentStorageUnavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)
	ts.backend.SetFailure(errors.New("server selection timeout"))

	w := ts.do(http.MethodGet, "/admin/api/content/team", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "server selection")

	w = ts.do(http.MethodGet, "/admin/api/config/home", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestConfigGetAndPut(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	w := ts.do(http.MethodGet, "/admin/api/config/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[map[string]any](t, w)
	assert.Equal(t, "BrightPath IT", first["siteName"])

	w = ts.do(http.MethodPut, "/admin/api/config/settings", gin.H{"siteName": "BrightPath", "maintenanceMode": true})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, first["id"], updated["id"])
	assert.Equal(t, true, updated["maintenanceMode"])

	w = ts.do(http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BrightPath", decode[map[string]any](t, w)["siteName"])
}
