package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biarkamimasak/backend/internal/service"
	"github.com/biarkamimasak/backend/internal/types"
)

const mockCompletionText = "TITLE: Fried Rice\n" +
	"INGREDIENTS:\n" +
	"- 2 cups rice\n" +
	"- 1 egg\n" +
	"INSTRUCTIONS:\n" +
	"1. Cook rice\n" +
	"2. Fry egg\n" +
	"COOKING TIME: 15 minutes\n" +
	"DIFFICULTY: Easy\n" +
	"NOTES: Add soy sauce"

type mockCompletion struct {
	completion string
	err        error
	fragments  []service.Fragment
	streamErr  error

	calls      int
	lastPrompt string
}

func (m *mockCompletion) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.completion, m.err
}

func (m *mockCompletion) CompleteStream(_ context.Context, prompt string) (<-chan service.Fragment, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.streamErr != nil {
		return nil, m.streamErr
	}

	ch := make(chan service.Fragment, len(m.fragments))
	for _, f := range m.fragments {
		ch <- f
	}
	close(ch)
	return ch, nil
}

func setupRouter(mock *mockCompletion) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/v1")
	NewRecipeHandler(mock).RegisterRoutes(v1)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSimpleRecipeReturnsStructuredRecord(t *testing.T) {
	mock := &mockCompletion{completion: mockCompletionText}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/simple", `{"ingredients":["rice","egg"]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var rec types.StructuredRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "Fried Rice", rec.Title)
	assert.Equal(t, []string{"2 cups rice", "1 egg"}, rec.Ingredients)
	assert.Equal(t, []string{"Cook rice", "Fry egg"}, rec.Instructions)
	assert.Equal(t, "15 minutes", rec.CookingTime)
	assert.Equal(t, "Easy", rec.Difficulty)
	assert.Equal(t, "Add soy sauce", rec.Notes)
	require.NotNil(t, rec.Timestamp)

	assert.Equal(t, 1, mock.calls)
	assert.Contains(t, mock.lastPrompt, "Main Ingredients Available: rice, egg")
	assert.Contains(t, mock.lastPrompt, "Servings: 2")
}

func TestSimpleRecipeValidation(t *testing.T) {
	cases := map[string]string{
		"missing ingredients": `{"servings":2}`,
		"empty ingredients":   `{"ingredients":[]}`,
		"blank ingredient":    `{"ingredients":[""]}`,
		"not json":            `servings=2`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			mock := &mockCompletion{completion: mockCompletionText}
			router := setupRouter(mock)

			w := postJSON(router, "/v1/recipe/simple", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
			assert.Equal(t, 0, mock.calls, "completion service must not run for invalid requests")
		})
	}
}

func TestDetailedRecipePassesConstraints(t *testing.T) {
	mock := &mockCompletion{completion: mockCompletionText}
	router := setupRouter(mock)

	body := `{"ingredients":["chicken","onion"],"servings":4,"dietary_restrictions":["halal"],"cuisine_preference":"malay","cooking_time":45}`
	w := postJSON(router, "/v1/recipe/detailed", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, mock.lastPrompt, "Servings: 4")
	assert.Contains(t, mock.lastPrompt, "Dietary Restrictions: halal")
	assert.Contains(t, mock.lastPrompt, "Cuisine Preference: malay")
	assert.Contains(t, mock.lastPrompt, "Maximum Cooking Time: 45 minutes")
}

func TestRecipeUpstreamFailure(t *testing.T) {
	mock := &mockCompletion{err: errors.New("upstream timed out")}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/simple", `{"ingredients":["rice"]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "upstream timed out")
}

func TestStreamRelaysFragmentsVerbatim(t *testing.T) {
	mock := &mockCompletion{fragments: []service.Fragment{
		{Text: "TITLE: Fr"},
		{Text: "ied Rice\n"},
		{Text: "INGREDIENTS:"},
	}}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/simple/stream", `{"ingredients":["rice"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "TITLE: Fried Rice\nINGREDIENTS:", w.Body.String())
}

func TestStreamMidStreamErrorInlined(t *testing.T) {
	mock := &mockCompletion{fragments: []service.Fragment{
		{Text: "TITLE: Fr"},
		{Err: errors.New("connection reset")},
	}}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/detailed/stream", `{"ingredients":["rice"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "TITLE: Fr"), "prior fragments must be delivered")
	assert.Contains(t, body, "Error: connection reset")
}

func TestStreamStartFailureInlined(t *testing.T) {
	mock := &mockCompletion{streamErr: errors.New("API request failed with status 500")}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/simple/stream", `{"ingredients":["rice"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Error: "), "failure must be inlined as text")
}

func TestStreamValidation(t *testing.T) {
	mock := &mockCompletion{}
	router := setupRouter(mock)

	w := postJSON(router, "/v1/recipe/simple/stream", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.calls)
}
