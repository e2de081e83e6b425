package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestQuietByDefault(t *testing.T) {
	buf := capture(t, false)

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Section("Apply")

	assert.Empty(t, buf.String())
}

func TestVerboseOutput(t *testing.T) {
	buf := capture(t, true)

	Debug("keyword %q", "cat")
	Info("markers: %d", 2)
	Warn("skipped node %d", 0)
	Section("Apply")

	out := buf.String()
	assert.Contains(t, out, `[DEBUG] keyword "cat"`)
	assert.Contains(t, out, "[INFO] markers: 2")
	assert.Contains(t, out, "[WARN] skipped node 0")
	assert.Contains(t, out, "=== Apply ===")
}

func TestErrorAlwaysPrints(t *testing.T) {
	buf := capture(t, false)

	Error("pass failed: %v", "boom")

	assert.Equal(t, "[ERROR] pass failed: boom\n", buf.String())
}
