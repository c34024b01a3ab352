package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/profile"
	"github.com/julianstephens/energyflow/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *APIError       `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *planner.Service) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "energyflow.json"))
	require.NoError(t, store.Init())
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := planner.New(store, planner.WithClock(func() time.Time { return now }), planner.WithSeed(1))
	return NewRouter(svc, nil), svc
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func quizBody(t *testing.T) string {
	t.Helper()
	answers, err := profile.AnswerAll(make([]int, len(profile.Questions())))
	require.NoError(t, err)
	b, err := json.Marshal(quizRequest{Answers: answers})
	require.NoError(t, err)
	return string(b)
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Nil(t, env.Error)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestQuiz(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/quiz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var questions []profile.Question
	require.NoError(t, json.Unmarshal(env.Data, &questions))
	assert.Len(t, questions, 12)
	assert.EqualValues(t, 12, env.Meta["count"])
}

func TestProfileMissingReturns412(t *testing.T) {
	r, _ := setupRouter(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/profile", ""},
		{http.MethodGet, "/api/profile/curve", ""},
		{http.MethodPost, "/api/schedule", `{"tasks":[{"name":"a","energyConsumption":"low","duration":1,"priority":"low"}]}`},
	} {
		w, env := do(t, r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusPreconditionFailed, w.Code, tc.path)
		require.NotNil(t, env.Error, tc.path)
		assert.Equal(t, CodeProfileMissing, env.Error.Code)
	}
}

func TestSubmitProfile(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/profile", quizBody(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p models.EnergyProfile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.NotEmpty(t, p.Chronotype.Type)

	w, _ = do(t, r, http.MethodGet, "/api/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/profile/history", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["count"])

	w, env = do(t, r, http.MethodGet, "/api/profile/curve?jitter=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	var points []map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &points))
	assert.Len(t, points, 24)
}

func TestSubmitProfile_Invalid(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/profile", `{"answers":[{"questionId":1,"category":"chronotype","weight":7}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
	assert.NotEmpty(t, env.Error.Fields)

	w, env = do(t, r, http.MethodPost, "/api/profile", `{"answers":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeBadRequest, env.Error.Code)
}

func TestScheduleAndSave(t *testing.T) {
	r, _ := setupRouter(t)
	w, _ := do(t, r, http.MethodPost, "/api/profile", quizBody(t))
	require.Equal(t, http.StatusCreated, w.Code)

	body := `{
		"tasks": [
			{"name":"Report","energyConsumption":"high","duration":2,"priority":"high"},
			{"name":"Huge","energyConsumption":"low","duration":9,"priority":"low"}
		],
		"window": {"startHour":13,"endHour":18,"date":"2025-03-10"},
		"save": true
	}`
	w, env := do(t, r, http.MethodPost, "/api/schedule", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, env.Meta["scheduled"])
	assert.EqualValues(t, 1, env.Meta["unscheduled"])
	assert.Equal(t, true, env.Meta["saved"])

	var plan planner.Plan
	require.NoError(t, json.Unmarshal(env.Data, &plan))
	require.Len(t, plan.Tasks, 2)
	assert.False(t, plan.Tasks[1].Scheduled)
	assert.Equal(t, "No available time slot", plan.Tasks[1].Reason)
	assert.NotEmpty(t, plan.Warnings)

	w, env = do(t, r, http.MethodGet, "/api/board", "")
	require.Equal(t, http.StatusOK, w.Code)
	var b models.Board
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, 1, b.Len())
}

func TestSchedule_Validation(t *testing.T) {
	r, _ := setupRouter(t)
	do(t, r, http.MethodPost, "/api/profile", quizBody(t))

	w, env := do(t, r, http.MethodPost, "/api/schedule", `{"tasks":[{"name":"a","energyConsumption":"extreme","duration":1.1,"priority":"low"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidation, env.Error.Code)
	assert.Len(t, env.Error.Fields, 2)
}

func TestBoardMutations(t *testing.T) {
	r, _ := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/board/morning/tasks", `{"text":"Stretch"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task models.BoardTask
	require.NoError(t, json.Unmarshal(env.Data, &task))
	require.NotEmpty(t, task.ID)

	w, _ = do(t, r, http.MethodPost, "/api/board/night/tasks", `{"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/board/morning/tasks", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/board/tasks/"+task.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.True(t, task.Completed)

	w, env = do(t, r, http.MethodPost, "/api/board/tasks/"+task.ID+"/move", `{"zone":"evening"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var b models.Board
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Len(t, b.Evening, 1)
	assert.Empty(t, b.Morning)

	w, _ = do(t, r, http.MethodPost, "/api/board/tasks/missing/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodDelete, "/api/board/completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["removed"])

	w, _ = do(t, r, http.MethodDelete, "/api/board/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask(t *testing.T) {
	r, svc := setupRouter(t)
	task, err := svc.AddTask(models.ZoneAfternoon, "Call")
	require.NoError(t, err)

	w, _ := do(t, r, http.MethodDelete, "/api/board/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	b, err := svc.Board()
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestZone(t *testing.T) {
	r, svc := setupRouter(t)
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	require.NoError(t, svc.UpdateSettings(settings))

	w, env := do(t, r, http.MethodGet, "/api/zone", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "15:00", env.Meta["time"])
	assert.Contains(t, string(env.Data), `"afternoon"`)
}

func TestRateLimit(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "energyflow.json"))
	require.NoError(t, store.Init())
	limiter := NewLimiter(0.001, 2)
	r := NewRouter(planner.New(store), limiter)

	for i := 0; i < 2; i++ {
		w, _ := do(t, r, http.MethodGet, "/api/quiz", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w, env := do(t, r, http.MethodGet, "/api/quiz", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeRateLimited, env.Error.Code)

	// Health checks are not limited.
	w, _ = do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	SetLimit(limiter, 0, 0)
	w, _ = do(t, r, http.MethodGet, "/api/quiz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
