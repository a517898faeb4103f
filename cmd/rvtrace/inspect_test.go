package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/rvtrace/internal/assert"
)

func TestRunInspect_SMI_EndToEnd(t *testing.T) {
	t.Parallel()

	var stream bitWriter
	stream.writeSMI(syncStartPayload(0x2000))
	stream.writeSMI(syncTrapPayload(0x2000))

	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.bin")
	assert.NoError(t, os.WriteFile(tracePath, stream.bytes(), 0o644))

	var stdout, stderr bytes.Buffer
	code := runInspect([]string{"--address-width", "16", tracePath}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	out := stdout.String()
	assert.True(t, strings.Contains(out, "kind=sync.start"))
	assert.True(t, strings.Contains(out, "kind=sync.trap"))
}

func TestRunInspect_MissingFile(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := runInspect([]string{"nonexistent.bin"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, stderr.Len() > 0)
}

func TestRunInspect_UnknownFraming(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.bin")
	assert.NoError(t, os.WriteFile(tracePath, []byte{}, 0o644))

	var stdout, stderr bytes.Buffer
	code := runInspect([]string{"--framing", "bogus", tracePath}, &stdout, &stderr)

	assert.Equal(t, 1, code)
}
