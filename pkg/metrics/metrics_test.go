package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	resetForTesting()

	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
	assert.Nil(t, NewHTTPMetrics())
	assert.Nil(t, NewLedgerMetrics())

	// Nil-tolerant helpers must not panic.
	RecordDocumentCreated(nil, 100)
	RecordDocumentDeleted(nil, 100)
	RecordWriteback(nil, 100)
	RecordQuotaRejection(nil)
	RecordVersionConflict(nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestEnabledRegistry(t *testing.T) {
	resetForTesting()
	InitRegistry()
	defer resetForTesting()

	require.True(t, IsEnabled())
	require.NotNil(t, GetRegistry())

	// Idempotent.
	InitRegistry()

	lm := NewLedgerMetrics()
	require.NotNil(t, lm)
	RecordDocumentCreated(lm, 512)
	RecordWriteback(lm, 256)
	RecordQuotaRejection(lm)

	hm := NewHTTPMetrics()
	require.NotNil(t, hm)
	hm.RecordRequestStart()
	hm.RecordRequest("GET", "/api/v1/documents", 200, 12*time.Millisecond)
	hm.RecordRequestEnd()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "paperbay_http_requests_total")
	assert.Contains(t, rec.Body.String(), "paperbay_ledger_documents_created_total")
}
