package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriswap/backend/config"
	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/infrastructure/cache"
	"github.com/nutriswap/backend/internal/infrastructure/history"
	"github.com/nutriswap/backend/internal/infrastructure/metrics"
	"github.com/nutriswap/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"https://app.nutriswap.example", "http://localhost:*"},
		},
		Cache: config.CacheConfig{
			Type: "memory",
		},
	}
}

// setupTestRouter creates a router without a swap service
func setupTestRouter() *gin.Engine {
	handler := NewHandler(nil, nil)
	if handler == nil {
		panic("setupTestRouter: NewHandler returned nil")
	}

	router := SetupRouter(testConfig(), handler, nil, nil)
	if router == nil {
		panic("setupTestRouter: SetupRouter returned nil *gin.Engine")
	}
	return router
}

// setupTestRouterWithService wires a real swap service over the fallback
// ingredient table, an in-memory cache and an in-memory sqlite history
func setupTestRouterWithService(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	memoryCache := cache.NewMemoryCache(cache.MemoryConfig{})
	t.Cleanup(func() { _ = memoryCache.Close() })

	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	resolver := usecase.NewResolver(nil, nil)
	selector := usecase.NewDefaultStrategySelector(resolver, nil)
	recommender := usecase.NewRecommender(selector, usecase.RecommenderConfig{}, nil)
	swaps := usecase.NewSwapService(resolver, selector, recommender, memoryCache, store,
		usecase.SwapServiceConfig{CacheTTL: time.Minute}, nil)

	return SetupRouter(cfg, NewHandler(swaps, nil), nil, nil)
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		w := doRequest(router, "GET", "/health", "")

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "nutriswap-backend" {
			t.Errorf("service = %v, want nutriswap-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doRequest(router, method, "/health", "")
			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestEndpointsWithoutService(t *testing.T) {
	router := setupTestRouter()

	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/api/v1/ingredients", ""},
		{"GET", "/api/v1/ingredients/rice", ""},
		{"GET", "/api/v1/strategies", ""},
		{"POST", "/api/v1/swaps/find", `{"food":"beef","goal":{"key":"decrease_fat"}}`},
		{"POST", "/api/v1/swaps/recommend", `{}`},
		{"GET", "/api/v1/swaps/history", ""},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			w := doRequest(router, endpoint.method, endpoint.path, endpoint.body)

			if w.Code != http.StatusServiceUnavailable {
				t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
			}
			errorMsg, _ := decodeBody(t, w)["error"].(string)
			if !strings.Contains(errorMsg, "not configured") {
				t.Errorf("error = %q, want to contain 'not configured'", errorMsg)
			}
		})
	}
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for the web app origin", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "https://app.nutriswap.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		gotOrigin := w.Header().Get("Access-Control-Allow-Origin")
		if gotOrigin != "https://app.nutriswap.example" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", gotOrigin, "https://app.nutriswap.example")
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, "true")
		}
	})

	t.Run("swap endpoint answers preflight for localhost", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("OPTIONS", "/api/v1/swaps/recommend", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
		}
	})
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic without crashing server", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		w := doRequest(router, "GET", "/panic", "")

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

// TestAPIVersioning tests that API v1 routes are correctly versioned
func TestAPIVersioning(t *testing.T) {
	t.Run("v1 routes are accessible", func(t *testing.T) {
		router := setupTestRouter()

		w := doRequest(router, "GET", "/api/v1/strategies", "")

		// 503 from the handler, not 404 from the router
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("non-versioned routes return 404", func(t *testing.T) {
		router := setupTestRouter()

		w := doRequest(router, "GET", "/api/strategies", "")

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestJSONResponses tests that all responses are valid JSON
func TestJSONResponses(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/health", ""},
		{"GET", "/api/v1/ingredients?q=rice", ""},
		{"GET", "/api/v1/strategies", ""},
		{"POST", "/api/v1/swaps/find", `not json`},
		{"GET", "/api/v1/swaps/history/missing", ""},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			w := doRequest(router, endpoint.method, endpoint.path, endpoint.body)

			gotContentType := w.Header().Get("Content-Type")
			wantContentType := "application/json; charset=utf-8"
			if gotContentType != wantContentType {
				t.Errorf("Content-Type = %q, want %q", gotContentType, wantContentType)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Errorf("Response should be valid JSON, got error: %v", err)
			}
		})
	}
}

func TestIngredientEndpoints(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	t.Run("search returns matching keys", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/ingredients?q=rice", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		ingredients, ok := response["ingredients"].([]interface{})
		require.True(t, ok)
		assert.Contains(t, ingredients, "brown rice")
		assert.Contains(t, ingredients, "white rice")
		assert.EqualValues(t, len(ingredients), response["count"])
	})

	t.Run("empty query lists everything", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/ingredients", "")
		require.Equal(t, http.StatusOK, w.Code)

		count, _ := decodeBody(t, w)["count"].(float64)
		assert.Equal(t, float64(len(usecase.NewResolver(nil, nil).AllIngredients())), count)
	})

	t.Run("known ingredient", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/ingredients/Chicken%20Breast", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Equal(t, true, response["exists"])
		assert.Equal(t, "chicken breast", response["matchedKey"])
		nutrients := response["nutrients"].(map[string]interface{})
		assert.InDelta(t, 165, nutrients["calories"], 0.001)
	})

	t.Run("misspelled ingredient carries suggestions", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/ingredients/brocoli", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Equal(t, false, response["exists"])
		suggestions, ok := response["suggestions"].([]interface{})
		require.True(t, ok)
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "broccoli", suggestions[0])
	})

	t.Run("strategies cover every goal", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/strategies", "")
		require.Equal(t, http.StatusOK, w.Code)

		strategies := decodeBody(t, w)["strategies"].([]interface{})
		assert.Len(t, strategies, 12)
		first := strategies[0].(map[string]interface{})
		assert.NotEmpty(t, first["goalType"])
		assert.NotEmpty(t, first["description"])
	})
}

func TestFindSwapsEndpoint(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	t.Run("ranks substitutes for a goal key", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/v1/swaps/find", `{"food":"beef","goal":{"key":"decrease_fat"}}`)
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		candidates := response["candidates"].([]interface{})
		require.Len(t, candidates, 5)
		first := candidates[0].(map[string]interface{})
		assert.Equal(t, "egg whites", first["replacementFood"])
		assert.Equal(t, "decrease_fat", first["goalTarget"])
	})

	t.Run("accepts nutrient and direction", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/v1/swaps/find",
			`{"food":"white rice","goal":{"nutrient":"fibre","direction":"increase","targetDelta":5}}`)
		require.Equal(t, http.StatusOK, w.Code)

		candidates := decodeBody(t, w)["candidates"].([]interface{})
		require.NotEmpty(t, candidates)
		for _, c := range candidates {
			assert.Equal(t, "increase_fiber", c.(map[string]interface{})["goalTarget"])
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing food", `{"goal":{"key":"decrease_fat"}}`},
		{"unknown nutrient", `{"food":"beef","goal":{"nutrient":"sodium","direction":"decrease"}}`},
		{"unknown goal key", `{"food":"beef","goal":{"key":"maximize_flavor"}}`},
		{"invalid JSON", `{"food":`},
	}
	for _, tt := range tests {
		t.Run(tt.name+" returns 400", func(t *testing.T) {
			w := doRequest(router, "POST", "/api/v1/swaps/find", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeBody(t, w)["error"])
		})
	}
}

func TestRecommendEndpoint(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	t.Run("computes totals and ranks candidates", func(t *testing.T) {
		body := `{
			"meal": {"ingredients": ["beef", "white rice"], "quantities": [200, 50]},
			"goals": [{"key": "decrease_fat", "intensity": 0.5}, {"nutrient": "carbs", "direction": "decrease"}]
		}`
		w := doRequest(router, "POST", "/api/v1/swaps/recommend", body)
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		totals := response["mealNutrients"].(map[string]interface{})
		assert.InDelta(t, 565, totals["calories"], 0.001)

		candidates := response["candidates"].([]interface{})
		require.NotEmpty(t, candidates)
		assert.LessOrEqual(t, len(candidates), 10)

		prev := 2.0
		pairs := map[string]bool{}
		for _, raw := range candidates {
			c := raw.(map[string]interface{})
			score := c["impactScore"].(float64)
			assert.Greater(t, score, 0.1)
			assert.LessOrEqual(t, score, prev)
			prev = score

			pair := c["originalFood"].(string) + "|" + c["replacementFood"].(string)
			assert.False(t, pairs[pair], "duplicate pair %s", pair)
			pairs[pair] = true
		}
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		body := `{"meal":{"ingredients":["cheese"],"quantities":[30]},"goals":[{"key":"decrease_calories"}]}`
		first := doRequest(router, "POST", "/api/v1/swaps/recommend", body)
		second := doRequest(router, "POST", "/api/v1/swaps/recommend", body)
		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, http.StatusOK, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	tests := []struct {
		name string
		body string
	}{
		{"mismatched quantities", `{"meal":{"ingredients":["beef","rice"],"quantities":[100]},"goals":[{"key":"decrease_fat"}]}`},
		{"no goals", `{"meal":{"ingredients":["beef"],"quantities":[100]},"goals":[]}`},
		{"missing meal", `{"goals":[{"key":"decrease_fat"}]}`},
		{"bad goal", `{"meal":{"ingredients":["beef"],"quantities":[100]},"goals":[{"nutrient":"fat","direction":"sideways"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name+" returns 400", func(t *testing.T) {
			w := doRequest(router, "POST", "/api/v1/swaps/recommend", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

const beefToTofu = `{
	"originalFood": "beef",
	"replacementFood": "tofu",
	"goalTarget": "decrease_fat",
	"impactScore": 1,
	"originalNutrients": {"calories": 250, "protein": 26, "fat": 15},
	"replacementNutrients": {"calories": 76, "protein": 8, "carbohydrates": 1.9, "fat": 4.8, "fiber": 0.3, "sugar": 0.6}
}`

func TestPreviewEndpoint(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	t.Run("returns signed changes", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/v1/swaps/preview", beefToTofu)
		require.Equal(t, http.StatusOK, w.Code)

		changes := decodeBody(t, w)["changes"].(map[string]interface{})
		assert.InDelta(t, -174, changes["calories"], 0.001)
		assert.InDelta(t, -18, changes["protein"], 0.001)
		assert.InDelta(t, -10.2, changes["fat"], 0.001)
		assert.InDelta(t, 0.6, changes["sugar"], 0.001)
	})

	t.Run("same food is rejected", func(t *testing.T) {
		w := doRequest(router, "POST", "/api/v1/swaps/preview",
			`{"originalFood":"beef","replacementFood":"Beef","goalTarget":"decrease_fat"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApplyAndHistoryEndpoints(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	body := `{
		"meal": {
			"profileId": "p1",
			"ingredients": ["Ground Beef", "white rice"],
			"quantities": [100, 150],
			"nutrients": {"calories": 250, "protein": 26, "fat": 15}
		},
		"candidate": ` + beefToTofu + `
	}`

	w := doRequest(router, "POST", "/api/v1/swaps/apply", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	meal := response["meal"].(map[string]interface{})
	assert.Equal(t, []interface{}{"tofu", "white rice"}, meal["ingredients"])
	assert.InDelta(t, 76, meal["nutrients"].(map[string]interface{})["calories"], 0.001)

	candidate := response["candidate"].(map[string]interface{})
	historyID, _ := candidate["historyId"].(string)
	require.NotEmpty(t, historyID)

	t.Run("history lists the applied swap", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/swaps/history?profileId=p1", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.EqualValues(t, 1, response["count"])
		record := response["records"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, historyID, record["id"])
		assert.Equal(t, "tofu", record["replacementFood"])
	})

	t.Run("other profiles see nothing", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/swaps/history?profileId=p2", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 0, decodeBody(t, w)["count"])
	})

	t.Run("single record", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/swaps/history/"+historyID, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "beef", decodeBody(t, w)["originalFood"])
	})

	t.Run("unknown record returns 404", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/swaps/history/does-not-exist", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid limit returns 400", func(t *testing.T) {
		w := doRequest(router, "GET", "/api/v1/swaps/history?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ingredient missing from meal returns 400", func(t *testing.T) {
		body := `{
			"meal": {"ingredients": ["salad"], "quantities": [100], "nutrients": {"calories": 20}},
			"candidate": ` + beefToTofu + `
		}`
		w := doRequest(router, "POST", "/api/v1/swaps/apply", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerIP: 60, Burst: 1}
	router := setupTestRouterWithService(t, cfg)

	assert.Equal(t, http.StatusOK, doRequest(router, "GET", "/api/v1/strategies", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "GET", "/api/v1/strategies", "").Code)

	// Health checks are not limited
	assert.Equal(t, http.StatusOK, doRequest(router, "GET", "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true, Path: "/metrics"}
	router := SetupRouter(cfg, NewHandler(nil, nil), nil, metrics.New("nutriswap"))

	doRequest(router, "GET", "/health", "")
	doRequest(router, "GET", "/nowhere", "")

	w := doRequest(router, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `nutriswap_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, `path="unmatched",status="404"`)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid goal", fmt.Errorf("%w: unknown nutrient", domain.ErrInvalidGoal), http.StatusBadRequest},
		{"invalid meal", domain.ErrInvalidMeal, http.StatusBadRequest},
		{"missing ingredient", fmt.Errorf("%w: beef", domain.ErrIngredientNotInMeal), http.StatusBadRequest},
		{"no strategy", domain.ErrNoStrategy, http.StatusBadRequest},
		{"not found", domain.ErrHistoryNotFound, http.StatusNotFound},
		{"wrapped storage failure", fmt.Errorf("failed to record swap: %w", assert.AnError), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEmptyResultsRenderAsArrays(t *testing.T) {
	router := setupTestRouterWithService(t, testConfig())

	w := doRequest(router, "GET", "/api/v1/ingredients?q=zzzz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ingredients":[],"count":0}`, w.Body.String())

	w = doRequest(router, "POST", "/api/v1/swaps/find", `{"food":"egg whites","goal":{"key":"decrease_fat"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decodeBody(t, w)["candidates"])
}
