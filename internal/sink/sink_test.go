package sink

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"aisdemod/internal/ais"
	"aisdemod/internal/logging"
)

func newTestSink(t *testing.T) (*Sink, *logging.LogRotator) {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rotator, err := logging.NewLogRotator(dir, true, logger)
	if err != nil {
		t.Fatalf("NewLogRotator: %v", err)
	}
	t.Cleanup(func() { rotator.Close() })

	return NewSink(rotator, logger), rotator
}

func TestSink_WritesHexLine(t *testing.T) {
	s, rotator := newTestSink(t)

	cb := s.Callback("87B")
	cb(ais.Frame{Payload: []byte{0xDE, 0xAD, 0xBE, 0xEF}, Channel: "87B"})

	content, err := os.ReadFile(rotator.GetCurrentLogFile())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(string(content))

	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		t.Fatalf("expected 4 comma-separated fields, got %d: %q", len(fields), line)
	}
	if fields[1] != "87B" {
		t.Fatalf("channel field = %q, want 87B", fields[1])
	}
	if fields[2] != "4" {
		t.Fatalf("length field = %q, want 4", fields[2])
	}
	if fields[3] != "deadbeef" {
		t.Fatalf("hex field = %q, want deadbeef", fields[3])
	}
}

func TestSink_MultipleFramesAppend(t *testing.T) {
	s, rotator := newTestSink(t)

	cbA := s.Callback("87B")
	cbB := s.Callback("88B")
	cbA(ais.Frame{Payload: []byte{0x01}})
	cbB(ais.Frame{Payload: []byte{0x02}})

	content, err := os.ReadFile(rotator.GetCurrentLogFile())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}
