package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pevans/newscards/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Test helper: create a router over a reloaded session
func setupTestRouter(t *testing.T) (*gin.Engine, *Session) {
	session := NewSession(newTestFetcher(), scraper.NewSourceConfig())
	session.Reload(context.Background())
	router := NewAPIServer(session).SetupRouter()
	return router, session
}

// Test helper: perform a request against the router
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHandleListItems verifies the current feed is listed with indices
func TestHandleListItems(t *testing.T) {
	router, session := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, session.State().Feed.Generation, resp.Generation)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, ListedItem{Index: 0, Title: "First story", URL: scraper.DefaultBaseOrigin + "/gundem/first"}, resp.Items[0])
	assert.Equal(t, 1, resp.Items[1].Index)
}

// TestHandleReload verifies reload mints a new generation
func TestHandleReload(t *testing.T) {
	router, session := setupTestRouter(t)
	before := session.State().Feed.Generation

	w := doRequest(router, http.MethodPost, "/api/v1/items/reload", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, before, resp.Generation)
	assert.Equal(t, 2, resp.Total)
}

// TestHandleGetDetail verifies detail retrieval with and without a
// generation
func TestHandleGetDetail(t *testing.T) {
	router, session := setupTestRouter(t)
	generation := session.State().Feed.Generation

	for _, path := range []string{
		"/api/v1/items/0/detail",
		fmt.Sprintf("/api/v1/items/0/detail?generation=%s", generation),
	} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)

		var detail Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, "First story", detail.Title)
		assert.Equal(t, "Paragraph one.\n\nParagraph two.", detail.Text)
	}
}

// TestHandleGetDetail_Errors verifies status codes for bad lookups
func TestHandleGetDetail_Errors(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name string
		path string
		code int
		err  string
	}{
		{name: "non-numeric index", path: "/api/v1/items/abc/detail", code: http.StatusBadRequest, err: "invalid_index"},
		{name: "bad generation", path: "/api/v1/items/0/detail?generation=nope", code: http.StatusBadRequest, err: "invalid_generation"},
		{name: "out of range", path: "/api/v1/items/9/detail", code: http.StatusNotFound, err: "not_found"},
		{name: "negative", path: "/api/v1/items/-1/detail", code: http.StatusNotFound, err: "not_found"},
		{name: "stale generation", path: fmt.Sprintf("/api/v1/items/0/detail?generation=%s", uuid.New()), code: http.StatusConflict, err: "stale_generation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.code, w.Code)

			var resp map[string]map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.err, resp["error"]["code"])
		})
	}
}

// TestHandleGetDetail_AfterReload verifies a generation listed before a
// reload is answered with a conflict, not a placeholder detail
func TestHandleGetDetail_AfterReload(t *testing.T) {
	router, session := setupTestRouter(t)
	old := session.State().Feed.Generation

	w := doRequest(router, http.MethodPost, "/api/v1/items/reload", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/items/0/detail?generation=%s", old), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotContains(t, w.Body.String(), DetailErrorPrefix)
}

// TestHandleGetSettings verifies the current configuration is returned
func TestHandleGetSettings(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var cfg scraper.SourceConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, scraper.NewSourceConfig(), cfg)
}

// TestHandleUpdateSettings verifies a submission is applied and reloaded
func TestHandleUpdateSettings(t *testing.T) {
	router, session := setupTestRouter(t)

	body := fmt.Sprintf(`{"listing_url": " %s ", "listing_selector": "", "dark_mode": true}`, scraper.DefaultListingURL)
	w := doRequest(router, http.MethodPut, "/api/v1/settings", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Settings scraper.SourceConfig `json:"settings"`
		Items    ListItemsResponse    `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, scraper.DefaultListingURL, resp.Settings.ListingURL)
	assert.Equal(t, scraper.DefaultListingSelector, resp.Settings.ListingSelector, "blank selector should fall back")
	assert.True(t, resp.Settings.DarkMode)
	assert.Equal(t, 2, resp.Items.Total)
	assert.Equal(t, session.State().Feed.Generation, resp.Items.Generation)
}

// TestHandleUpdateSettings_BadJSON verifies malformed bodies are rejected
func TestHandleUpdateSettings_BadJSON(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/settings", `{"listing_url": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCORS verifies preflight requests are answered
func TestCORS(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodOptions, "/api/v1/items", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
