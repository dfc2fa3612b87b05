package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintYAML(t *testing.T) {
	data := struct {
		Name    string `yaml:"name"`
		Version int64  `yaml:"version"`
	}{
		Name:    "report.docx",
		Version: 3,
	}

	var buf bytes.Buffer
	err := PrintYAML(&buf, data)
	require.NoError(t, err)

	got := buf.String()
	assert.Contains(t, got, "name: report.docx")
	assert.Contains(t, got, "version: 3")
}

func TestPrintYAMLList(t *testing.T) {
	data := []struct {
		Username string `yaml:"username"`
	}{
		{Username: "alice"},
		{Username: "bob"},
	}

	var buf bytes.Buffer
	err := PrintYAML(&buf, data)
	require.NoError(t, err)

	got := buf.String()
	assert.Contains(t, got, "- username: alice")
	assert.Contains(t, got, "- username: bob")
}
