package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics instruments storage ledger outcomes. Pass nil to disable
// with zero overhead; use the package-level Record helpers to call through
// a possibly-nil value.
type LedgerMetrics interface {
	// RecordDocumentCreated records a successful create and its size.
	RecordDocumentCreated(bytes int64)

	// RecordDocumentDeleted records a delete and the bytes released.
	RecordDocumentDeleted(bytes int64)

	// RecordWriteback records a content replace and its new size.
	RecordWriteback(bytes int64)

	// RecordQuotaRejection counts mutations refused for quota reasons.
	RecordQuotaRejection()

	// RecordVersionConflict counts optimistic-concurrency losers.
	RecordVersionConflict()
}

type ledgerMetrics struct {
	documentsCreated prometheus.Counter
	documentsDeleted prometheus.Counter
	writebacks       prometheus.Counter
	bytesStored      prometheus.Counter
	bytesReleased    prometheus.Counter
	quotaRejections  prometheus.Counter
	versionConflicts prometheus.Counter
}

// NewLedgerMetrics creates Prometheus-backed ledger metrics, or nil when
// metrics are disabled.
func NewLedgerMetrics() LedgerMetrics {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}
	return &ledgerMetrics{
		documentsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_documents_created_total",
			Help: "Total documents created",
		}),
		documentsDeleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_documents_deleted_total",
			Help: "Total documents deleted",
		}),
		writebacks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_writebacks_total",
			Help: "Total successful content replacements",
		}),
		bytesStored: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_bytes_stored_total",
			Help: "Total bytes written into the content store",
		}),
		bytesReleased: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_bytes_released_total",
			Help: "Total bytes released by deletes",
		}),
		quotaRejections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_quota_rejections_total",
			Help: "Total mutations refused because they would overrun a quota",
		}),
		versionConflicts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paperbay_ledger_version_conflicts_total",
			Help: "Total content replacements refused for a stale version",
		}),
	}
}

func (m *ledgerMetrics) RecordDocumentCreated(bytes int64) {
	m.documentsCreated.Inc()
	m.bytesStored.Add(float64(bytes))
}

func (m *ledgerMetrics) RecordDocumentDeleted(bytes int64) {
	m.documentsDeleted.Inc()
	m.bytesReleased.Add(float64(bytes))
}

func (m *ledgerMetrics) RecordWriteback(bytes int64) {
	m.writebacks.Inc()
	m.bytesStored.Add(float64(bytes))
}

func (m *ledgerMetrics) RecordQuotaRejection()  { m.quotaRejections.Inc() }
func (m *ledgerMetrics) RecordVersionConflict() { m.versionConflicts.Inc() }

// RecordDocumentCreated calls through a possibly-nil LedgerMetrics.
func RecordDocumentCreated(m LedgerMetrics, bytes int64) {
	if m != nil {
		m.RecordDocumentCreated(bytes)
	}
}

// RecordDocumentDeleted calls through a possibly-nil LedgerMetrics.
func RecordDocumentDeleted(m LedgerMetrics, bytes int64) {
	if m != nil {
		m.RecordDocumentDeleted(bytes)
	}
}

// RecordWriteback calls through a possibly-nil LedgerMetrics.
func RecordWriteback(m LedgerMetrics, bytes int64) {
	if m != nil {
		m.RecordWriteback(bytes)
	}
}

// RecordQuotaRejection calls through a possibly-nil LedgerMetrics.
func RecordQuotaRejection(m LedgerMetrics) {
	if m != nil {
		m.RecordQuotaRejection()
	}
}

// RecordVersionConflict calls through a possibly-nil LedgerMetrics.
func RecordVersionConflict(m LedgerMetrics) {
	if m != nil {
		m.RecordVersionConflict()
	}
}
