package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/api"
	"github.com/UK-Mindset/mind-set/internal/auth"
	"github.com/UK-Mindset/mind-set/internal/config"
)

type moodResponse struct {
	Data  internal.Mood      `json:"data"`
	Error *internal.AppError `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := setupTestStore(t)
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	provider := auth.NewLocalAuthProvider(store, logger)
	cfg := &config.Config{Env: "development"}
	app := api.NewApp(logger, store)

	r := gin.New()
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))
	r.POST("/moods", api.PostMood(app))
	r.GET("/moods", api.GetMoods(app))
	r.GET("/moods/:moodId", api.GetMood(app))
	r.PUT("/moods/:moodId", api.PutMood(app))
	r.DELETE("/moods/:moodId", api.DeleteMood(app))
	return r
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

const addBody = `{"user_id":1,"mood_category":"HAPPY","mood_situation":"WORK","mood_title":"Great day","mood_reason":"Got promoted","mood_date":"2024-01-01"}`

func TestPostMood_Valid(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", addBody)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp moodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, int64(1), resp.Data.UserID)
	assert.Equal(t, internal.CategoryHappy, resp.Data.Category)
	assert.Equal(t, internal.SituationWork, resp.Data.Situation)
	assert.Equal(t, "Great day", resp.Data.Title)
}

func TestPostMood_Unauthorized(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/moods", "", addBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "POST", "/moods", "WRONG-TOKEN", addBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostMood_UnknownCategory(t *testing.T) {
	r := setupRouter(t)
	body := `{"user_id":1,"mood_category":"ECSTATIC","mood_situation":"WORK","mood_title":"t","mood_reason":"r","mood_date":"2024-01-01"}`
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostMood_InvalidForm(t *testing.T) {
	r := setupRouter(t)
	// Missing title
	body := `{"user_id":1,"mood_category":"HAPPY","mood_situation":"WORK","mood_reason":"r","mood_date":"2024-01-01"}`
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed date
	body = `{"user_id":1,"mood_category":"HAPPY","mood_situation":"WORK","mood_title":"t","mood_reason":"r","mood_date":"Jan 1"}`
	w = doJSON(r, "POST", "/moods", "MOCK-TOKEN", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutMood_OwnershipAndDefaulting(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", addBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created moodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID

	// Wrong owner
	w = doJSON(r, "PUT", "/moods/"+itoa(id), "MOCK-TOKEN", `{"user_id":2,"mood_title":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Empty title keeps the old one, reason changes
	w = doJSON(r, "PUT", "/moods/"+itoa(id), "MOCK-TOKEN", `{"user_id":1,"mood_title":"","mood_reason":"Still happy"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var updated moodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Great day", updated.Data.Title)
	assert.Equal(t, "Still happy", updated.Data.Reason)
}

func TestPutMood_NotFound(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "PUT", "/moods/42", "MOCK-TOKEN", `{"user_id":1,"mood_title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMood_Flow(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", addBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created moodResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID

	// Wrong owner, record survives
	w = doJSON(r, "DELETE", "/moods/"+itoa(id), "MOCK-TOKEN", `{"user_id":2}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(r, "GET", "/moods/"+itoa(id), "MOCK-TOKEN", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Owner deletes, record gone
	w = doJSON(r, "DELETE", "/moods/"+itoa(id), "MOCK-TOKEN", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "GET", "/moods/"+itoa(id), "MOCK-TOKEN", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMoods_ListsOwnMoods(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "POST", "/moods", "MOCK-TOKEN", addBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "GET", "/moods", "MOCK-TOKEN", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []internal.Mood `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	// The other user sees nothing.
	w = doJSON(r, "GET", "/moods", "OTHER-TOKEN", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var other struct {
		Data []internal.Mood `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &other))
	assert.Empty(t, other.Data)
}

func TestPutMood_BadID(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, "PUT", "/moods/abc", "MOCK-TOKEN", `{"user_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
