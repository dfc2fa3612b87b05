package apiclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client := New(ts.URL).WithToken("secret-token")
	_, err := client.ListDocuments()
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClientNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","service":"paperbay"}`))
	}))
	defer ts.Close()

	health, err := New(ts.URL).Health()
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "ok", health.Status)
}

func TestClientDecodesProblemResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict","detail":"document version is stale","status":409}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).GetDocument("doc-1")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Conflict: document version is stale", apiErr.Error())
}

func TestClientFallsBackToRawBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable\n"))
	}))
	defer ts.Close()

	_, err := New(ts.URL).ListDocuments()
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Title)
}

func TestAPIErrorPredicates(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(*APIError) bool
	}{
		{"unauthorized is auth error", http.StatusUnauthorized, (*APIError).IsAuthError},
		{"forbidden is auth error", http.StatusForbidden, (*APIError).IsAuthError},
		{"not found", http.StatusNotFound, (*APIError).IsNotFound},
		{"conflict", http.StatusConflict, (*APIError).IsConflict},
		{"quota exceeded", http.StatusRequestEntityTooLarge, (*APIError).IsQuotaExceeded},
		{"gone", http.StatusGone, (*APIError).IsGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(&APIError{StatusCode: tt.status}))
		})
	}
}

func TestSearchUsersEscapesQuery(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"u1","username":"bob smith"}]`))
	}))
	defer ts.Close()

	users, err := New(ts.URL).SearchUsers("bob smith")
	require.NoError(t, err)
	assert.Equal(t, "bob smith", gotQuery)
	require.Len(t, users, 1)
	assert.Equal(t, "bob smith", users[0].Username)
}
