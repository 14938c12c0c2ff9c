package api

import (
	"bytes"
	"context"
	"edu_platform/internal/app/service"
	"edu_platform/internal/common/security"
	"edu_platform/internal/domain/repository"
	"edu_platform/internal/seed"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *security.TokenIssuer) {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, seed.Load(context.Background(), store, store, seed.Default()))

	tokens := security.NewTokenIssuer([]byte("test-secret"), time.Hour)
	progress := service.NewProgressService(store, store, store)
	jobs := service.NewProgressJobService(nil, "progress_jobs_queue", progress, store, store)
	router := NewRouter(
		tokens,
		service.NewAuthService(store, tokens),
		service.NewCatalogService(store, store, service.NewPersistedProgress(store, store), service.NewMarkdownRenderer(), 3),
		service.NewQuizService(store, store, jobs),
		progress,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func do(t *testing.T, method, url, token, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.String()
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	code, body := do(t, http.MethodGet, srv.URL+"/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func TestCatalogRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{name: "categories", path: "/api/categories", wantCode: http.StatusOK, contains: `"name":"Matemáticas"`},
		{name: "courses", path: "/api/courses", wantCode: http.StatusOK, contains: `"categoryName":"Ciencias"`},
		{name: "course", path: "/api/courses/1", wantCode: http.StatusOK, contains: `"title":"Fundamentos de Álgebra"`},
		{name: "course by slug", path: "/api/courses/slug/introduccion-a-la-biologia", wantCode: http.StatusOK, contains: `"id":2`},
		{name: "unknown slug", path: "/api/courses/slug/nope", wantCode: http.StatusNotFound, contains: `"error"`},
		{name: "bad course id", path: "/api/courses/abc", wantCode: http.StatusBadRequest, contains: `"error":"Invalid course ID"`},
		{name: "unknown course", path: "/api/courses/999", wantCode: http.StatusNotFound, contains: `"error"`},
		{name: "content", path: "/api/courses/1/content", wantCode: http.StatusOK, contains: `"title":"Linear Equations"`},
		{name: "content bad id", path: "/api/courses/x/content", wantCode: http.StatusBadRequest, contains: "Invalid course ID"},
		{name: "content unknown", path: "/api/courses/999/content", wantCode: http.StatusNotFound, contains: `"error"`},
		{name: "course quizzes", path: "/api/courses/1/quizzes", wantCode: http.StatusOK, contains: `"questionCount":3`},
		{name: "quizzes unknown course", path: "/api/courses/999/quizzes", wantCode: http.StatusNotFound, contains: `"error"`},
		{name: "quiz bad id", path: "/api/quizzes/abc", wantCode: http.StatusBadRequest, contains: `"error":"Invalid quiz ID"`},
		{name: "quiz unknown", path: "/api/quizzes/999", wantCode: http.StatusNotFound, contains: `"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, http.MethodGet, srv.URL+tt.path, "", "")
			assert.Equal(t, tt.wantCode, code, body)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestFeaturedCourses(t *testing.T) {
	srv, _ := newTestServer(t)
	code, body := do(t, http.MethodGet, srv.URL+"/api/courses/featured", "", "")
	require.Equal(t, http.StatusOK, code)

	var featured []struct {
		ID           int    `json:"id"`
		CategoryName string `json:"categoryName"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &featured))
	require.Len(t, featured, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{featured[0].ID, featured[1].ID, featured[2].ID})
	assert.Equal(t, "Matemáticas", featured[0].CategoryName)
}

func TestGetQuizHidesAnswers(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/api/quizzes/1", "/api/quizzes/2"} {
		code, body := do(t, http.MethodGet, srv.URL+path, "", "")
		require.Equal(t, http.StatusOK, code)
		assert.NotContains(t, body, "correctAnswerId")
		assert.Contains(t, body, `"questions"`)
	}
}

func TestSubmitQuiz(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		contains string
	}{
		{name: "two of three", path: "/api/quizzes/1/submit", body: `{"answers":{"1":"a","2":"b","3":"c"}}`, wantCode: http.StatusOK, contains: `"score":67`},
		{name: "empty answers", path: "/api/quizzes/1/submit", body: `{"answers":{}}`, wantCode: http.StatusOK, contains: `"correctCount":0`},
		{name: "bad id", path: "/api/quizzes/abc/submit", body: `{"answers":{}}`, wantCode: http.StatusBadRequest, contains: "Invalid quiz ID"},
		{name: "unknown quiz", path: "/api/quizzes/999/submit", body: `{"answers":{}}`, wantCode: http.StatusNotFound, contains: `"error"`},
		{name: "missing answers", path: "/api/quizzes/1/submit", body: `{}`, wantCode: http.StatusBadRequest, contains: `"error"`},
		{name: "null answers", path: "/api/quizzes/1/submit", body: `{"answers":null}`, wantCode: http.StatusBadRequest, contains: `"error"`},
		{name: "answers not a map", path: "/api/quizzes/1/submit", body: `{"answers":["a"]}`, wantCode: http.StatusBadRequest, contains: `"error"`},
		{name: "non-string answer", path: "/api/quizzes/1/submit", body: `{"answers":{"1":2}}`, wantCode: http.StatusBadRequest, contains: `"error"`},
		{name: "not json", path: "/api/quizzes/1/submit", body: `answers`, wantCode: http.StatusBadRequest, contains: `"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, http.MethodPost, srv.URL+tt.path, "", tt.body)
			assert.Equal(t, tt.wantCode, code, body)
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestSubmitRevealsAnswerKey(t *testing.T) {
	srv, _ := newTestServer(t)
	code, body := do(t, http.MethodPost, srv.URL+"/api/quizzes/2/submit", "", `{"answers":{"4":"b"}}`)
	require.Equal(t, http.StatusOK, code)

	var result struct {
		QuizID         int               `json:"quizId"`
		Score          int               `json:"score"`
		TotalQuestions int               `json:"totalQuestions"`
		CorrectAnswers map[string]string `json:"correctAnswers"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, 2, result.QuizID)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, map[string]string{"4": "b", "5": "c"}, result.CorrectAnswers)
}

func TestAuthAndProgressFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodPost, srv.URL+"/api/auth/signup", "", `{"username":"ana","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, code, body)
	assert.NotContains(t, body, "secret123")
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auth))
	require.NotEmpty(t, auth.Token)

	code, _ = do(t, http.MethodPost, srv.URL+"/api/auth/signup", "", `{"username":"ana","password":"again"}`)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = do(t, http.MethodPost, srv.URL+"/api/auth/login", "", `{"username":"ana","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = do(t, http.MethodPost, srv.URL+"/api/auth/login", "", `{"username":"ana","password":"secret123"}`)
	assert.Equal(t, http.StatusOK, code)

	// Protected routes
	code, _ = do(t, http.MethodGet, srv.URL+"/api/courses/1/progress", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = do(t, http.MethodGet, srv.URL+"/api/courses/1/progress", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = do(t, http.MethodGet, srv.URL+"/api/courses/1/progress", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"progress":0`)

	// Algebra has 3 items and 1 quiz.
	code, body = do(t, http.MethodPost, srv.URL+"/api/courses/1/items/1/complete", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"progress":25`)

	code, _ = do(t, http.MethodPost, srv.URL+"/api/courses/1/items/abc/complete", auth.Token, "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, http.MethodPost, srv.URL+"/api/courses/2/items/1/complete", auth.Token, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, http.MethodGet, srv.URL+"/api/quizzes/1/result", auth.Token, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = do(t, http.MethodPost, srv.URL+"/api/quizzes/1/submit", auth.Token, `{"answers":{"1":"a","2":"b","3":"a"}}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"score":100`)

	code, body = do(t, http.MethodGet, srv.URL+"/api/quizzes/1/result", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"score":100`)

	code, body = do(t, http.MethodGet, srv.URL+"/api/courses/1/progress", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"progress":50`)

	code, body = do(t, http.MethodGet, srv.URL+"/api/courses/1", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"progress":50`)
	assert.Contains(t, body, `"completedLessons":1`)

	code, body = do(t, http.MethodGet, srv.URL+"/api/courses/1/quizzes", auth.Token, "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Contains(t, body, `"completed":true`)
	assert.Contains(t, body, `"score":100`)
}

func TestPublicRoutesIgnoreBadToken(t *testing.T) {
	srv, _ := newTestServer(t)
	expired, err := security.NewTokenIssuer([]byte("test-secret"), -time.Hour).GenerateToken(1)
	require.NoError(t, err)

	for _, token := range []string{"expired.bad.token", expired} {
		for _, path := range []string{"/api/categories", "/api/courses", "/api/courses/featured", "/api/courses/1", "/api/quizzes/1"} {
			code, body := do(t, http.MethodGet, srv.URL+path, token, "")
			assert.Equal(t, http.StatusOK, code, "%s: %s", path, body)
		}
		code, body := do(t, http.MethodGet, srv.URL+"/api/courses/1/progress", token, "")
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Contains(t, body, "Invalid token")
	}
}

func TestEmptyCatalogListsAreArrays(t *testing.T) {
	store := repository.NewMemoryStore()
	tokens := security.NewTokenIssuer([]byte("test-secret"), time.Hour)
	progress := service.NewProgressService(store, store, store)
	router := NewRouter(
		tokens,
		service.NewAuthService(store, tokens),
		service.NewCatalogService(store, store, service.NewPersistedProgress(store, store), service.NewMarkdownRenderer(), 3),
		service.NewQuizService(store, store, service.NewProgressJobService(nil, "q", progress, store, store)),
		progress,
	)
	srv := httptest.NewServer(router)
	defer srv.Close()

	for _, path := range []string{"/api/categories", "/api/courses", "/api/courses/featured"} {
		code, body := do(t, http.MethodGet, srv.URL+path, "", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "[]", body, path)
	}
}
