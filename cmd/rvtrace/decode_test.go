package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/rvtrace/internal/assert"
)

func word32(t *testing.T, w uint32) []byte {
	t.Helper()
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, w)
	return buf
}

func ecall() uint32 { return 0x73 }

func TestRunDecode_SMI_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	imagePath := filepath.Join(dir, "image.bin")
	assert.NoError(t, os.WriteFile(imagePath, word32(t, ecall()), 0o644))

	var stream bitWriter
	stream.writeSMI(syncStartPayload(0x1000))
	stream.writeSMI(syncTrapPayload(0x1000))
	tracePath := filepath.Join(dir, "trace.bin")
	assert.NoError(t, os.WriteFile(tracePath, stream.bytes(), 0o644))

	var stdout, stderr bytes.Buffer
	code := runDecode([]string{
		"--image", imagePath,
		"--base", "0x1000",
		"--isa", "rv64",
		"--address-width", "16",
		tracePath,
	}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.True(t, strings.Contains(stdout.String(), "core"))
}

func TestRunDecode_MissingImage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := runDecode([]string{"nonexistent-trace.bin"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, stderr.Len() > 0)
}

func TestRunDecode_InvalidISA(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "image.bin")
	assert.NoError(t, os.WriteFile(imagePath, word32(t, ecall()), 0o644))
	tracePath := filepath.Join(dir, "trace.bin")
	assert.NoError(t, os.WriteFile(tracePath, []byte{}, 0o644))

	var stdout, stderr bytes.Buffer
	code := runDecode([]string{"--image", imagePath, "--isa", "rv128", tracePath}, &stdout, &stderr)

	assert.Equal(t, 1, code)
}
