package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var requestContextKey = contextKey{}

// RequestContext holds request-scoped logging context.
type RequestContext struct {
	RequestID string    // chi request ID
	Subject   string    // authenticated subject (user ID), empty for anonymous
	ClientIP  string    // client IP address (without port)
	StartTime time.Time // for duration calculation
}

// WithContext returns a new context carrying the given RequestContext.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext retrieves the RequestContext, or nil if not present.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// NewRequestContext creates a new RequestContext with the given client IP.
func NewRequestContext(clientIP string) *RequestContext {
	return &RequestContext{
		ClientIP:  clientIP,
		StartTime: time.Now(),
	}
}

// WithSubject returns a copy with the authenticated subject set.
func (rc *RequestContext) WithSubject(subject string) *RequestContext {
	if rc == nil {
		return nil
	}
	clone := *rc
	clone.Subject = subject
	return &clone
}

// DurationMs returns the duration since StartTime in milliseconds.
func (rc *RequestContext) DurationMs() float64 {
	if rc == nil || rc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(rc.StartTime).Microseconds()) / 1000.0
}
