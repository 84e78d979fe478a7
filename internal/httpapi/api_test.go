package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlebridge/expensetrackr/backend/internal/ai"
	"github.com/castlebridge/expensetrackr/backend/internal/auth"
	"github.com/castlebridge/expensetrackr/backend/internal/model"
	"github.com/castlebridge/expensetrackr/backend/internal/service"
	"github.com/castlebridge/expensetrackr/backend/internal/store"
)

type fakeGenerator struct {
	insights []model.Insight
	answer   string
	err      error
}

func (f *fakeGenerator) GenerateInsights(_ context.Context, _ []ai.PromptRecord) ([]model.Insight, error) {
	return f.insights, f.err
}

func (f *fakeGenerator) AnswerQuestion(_ context.Context, _ string, _ []ai.PromptRecord) (string, error) {
	return f.answer, f.err
}

// newTestRouter wires the full API against an in-memory store. Requests carry
// claims for userID unless it is empty, mirroring the optional-auth middleware.
func newTestRouter(gen service.InsightGenerator, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	memStore := store.NewMemoryStore()
	resolver := service.NewIdentityResolver(memStore)
	h := &Handler{
		Expenses: service.NewExpenseService(memStore, resolver),
		Insights: service.NewInsightService(memStore, resolver, gen),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			claims := &auth.UserClaims{
				UID:   userID,
				Email: userID + "@test.local",
			}
			c.Request = c.Request.WithContext(auth.WithUserClaims(c.Request.Context(), claims))
		}
		c.Next()
	})
	h.Register(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestRecordLifecycle(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	w, created := doJSON(t, r, http.MethodPost, "/api/records", gin.H{
		"description": "Groceries",
		"amount":      "42.50",
		"category":    "Food",
		"date":        "2024-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	recordID, _ := created["id"].(string)
	require.NotEmpty(t, recordID)
	assert.Equal(t, "Groceries", created["description"])
	assert.Equal(t, 42.50, created["amount"])

	w, listed := doJSON(t, r, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, w.Code)
	records, ok := listed["records"].([]any)
	require.True(t, ok)
	require.Len(t, records, 1)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/records/"+recordID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, listed = doJSON(t, r, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, w.Code)
	records, _ = listed["records"].([]any)
	assert.Empty(t, records)
}

func TestAddRecordValidation(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad amount", gin.H{"description": "x", "amount": "abc", "category": "Food", "date": "2024-01-15"}},
		{"impossible date", gin.H{"description": "x", "amount": "10", "category": "Food", "date": "2024-02-30"}},
		{"blank description", gin.H{"description": "  ", "amount": "10", "category": "Food", "date": "2024-01-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodPost, "/api/records", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, resp, "error")
		})
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "")

	for _, path := range []string{"/api/me", "/api/records", "/api/records/totals", "/api/records/best-worst", "/api/records/daily"} {
		w, resp := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "not authenticated", resp["error"], path)
	}
}

func TestDeleteRecordNotFound(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	w, resp := doJSON(t, r, http.MethodDelete, "/api/records/9f4e7b6a-0f3c-4a4e-8c1d-2b5a6d7e8f90", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "record not found", resp["error"])
}

func TestMeCreatesOwner(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	w, me := doJSON(t, r, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clerk_user_1", me["externalId"])
	assert.Equal(t, "clerk_user_1@test.local", me["email"])
	assert.NotEqual(t, "clerk_user_1", me["id"])
}

func TestTotalsAndBestWorst(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	for i, amount := range []string{"50", "-10", "200"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/records", gin.H{
			"description": fmt.Sprintf("entry %d", i),
			"amount":      amount,
			"category":    "Misc",
			"date":        "2024-01-15",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, totals := doJSON(t, r, http.MethodGet, "/api/records/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 240.0, totals["total"])
	assert.Equal(t, 2.0, totals["activeCount"])

	w, bw := doJSON(t, r, http.MethodGet, "/api/records/best-worst", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 200.0, bw["best"])
	assert.Equal(t, -10.0, bw["worst"])
}

func TestDailyBuckets(t *testing.T) {
	r := newTestRouter(&fakeGenerator{}, "clerk_user_1")

	for _, rec := range []gin.H{
		{"description": "lunch", "amount": "12", "category": "Food", "date": "2024-01-15"},
		{"description": "bus", "amount": "3", "category": "Transport", "date": "2024-01-15"},
		{"description": "rent", "amount": "900", "category": "Housing", "date": "2024-01-16"},
	} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/records", rec)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/records/daily", nil)
	require.Equal(t, http.StatusOK, w.Code)
	buckets, ok := resp["buckets"].([]any)
	require.True(t, ok)
	require.Len(t, buckets, 2)

	first, _ := buckets[0].(map[string]any)
	assert.Equal(t, "2024-01-15", first["day"])
	assert.Equal(t, 15.0, first["total"])
}

func TestInsightsAlwaysOK(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		r := newTestRouter(&fakeGenerator{}, "")
		w, resp := doJSON(t, r, http.MethodGet, "/api/insights", nil)
		require.Equal(t, http.StatusOK, w.Code)
		insights, ok := resp["insights"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, insights)
	})

	t.Run("generator failure", func(t *testing.T) {
		r := newTestRouter(&fakeGenerator{err: fmt.Errorf("quota exceeded")}, "clerk_user_1")
		w, _ := doJSON(t, r, http.MethodPost, "/api/records", gin.H{
			"description": "lunch", "amount": "12", "category": "Food", "date": "2024-01-15",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w, resp := doJSON(t, r, http.MethodGet, "/api/insights", nil)
		require.Equal(t, http.StatusOK, w.Code)
		insights, ok := resp["insights"].([]any)
		require.True(t, ok)
		require.NotEmpty(t, insights)
	})
}

func TestAskInsight(t *testing.T) {
	t.Run("answered", func(t *testing.T) {
		r := newTestRouter(&fakeGenerator{answer: "Mostly food."}, "clerk_user_1")
		w, resp := doJSON(t, r, http.MethodPost, "/api/insights/ask", gin.H{"question": "Where does my money go?"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Mostly food.", resp["answer"])
	})

	t.Run("signed out falls back", func(t *testing.T) {
		r := newTestRouter(&fakeGenerator{answer: "unused"}, "")
		w, resp := doJSON(t, r, http.MethodPost, "/api/insights/ask", gin.H{"question": "hello?"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, service.FallbackAnswer, resp["answer"])
	})

	t.Run("missing question", func(t *testing.T) {
		r := newTestRouter(&fakeGenerator{}, "clerk_user_1")
		w, _ := doJSON(t, r, http.MethodPost, "/api/insights/ask", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
