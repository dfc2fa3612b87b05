package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer for testing.
// Returns the buffer and a cleanup function to restore original output.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()

	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}
	return buf, cleanup
}

func TestSetLevel(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("text")
	SetLevel("WARN")
	defer SetLevel("INFO")

	Info("should not appear")
	Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestSetLevel_InvalidIgnored(t *testing.T) {
	SetLevel("INFO")
	SetLevel("bogus")
	assert.Equal(t, LevelInfo, Level(currentLevel.Load()))
}

func TestJSONFormat(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("json")
	defer SetFormat("text")

	Info("document created", KeyDocument, "doc-1", KeySize, 42)

	line := strings.TrimSpace(buf.String())
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))

	assert.Equal(t, "document created", record["msg"])
	assert.Equal(t, "doc-1", record[KeyDocument])
	assert.Equal(t, float64(42), record[KeySize])
}

func TestTextFormat_Fields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("text")
	Info("quota updated", KeyOwner, "alice", KeyUsed, 400)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "quota updated")
	assert.Contains(t, out, "owner=alice")
	assert.Contains(t, out, "used=400")
}

func TestContextFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetFormat("text")

	rc := NewRequestContext("10.0.0.7")
	rc.RequestID = "req-123"
	ctx := WithContext(context.Background(), rc.WithSubject("alice"))

	InfoCtx(ctx, "access resolved", KeyDocument, "doc-9")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-123")
	assert.Contains(t, out, "subject=alice")
	assert.Contains(t, out, "client_ip=10.0.0.7")
	assert.Contains(t, out, "document=doc-9")
}

func TestFromContext_Missing(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))
}

func TestRequestContext_DurationMs(t *testing.T) {
	var rc *RequestContext
	assert.Zero(t, rc.DurationMs())

	rc = NewRequestContext("127.0.0.1")
	assert.GreaterOrEqual(t, rc.DurationMs(), 0.0)
}
