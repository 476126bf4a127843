package recorder

import (
	"os/exec"
	"strings"
	"testing"
)

func newTestCapture(t *testing.T, script string) *ExecCapture {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return &ExecCapture{
		command: func(file string, enc Encoding) (*exec.Cmd, error) {
			return exec.Command("sh", "-c", strings.ReplaceAll(script, "{file}", file)), nil
		},
	}
}

func TestStartRejectsImmediateExit(t *testing.T) {
	c := newTestCapture(t, "exit 1")

	err := c.Start(EncodingWAV)
	if err == nil {
		t.Fatal("Start() = nil, want microphone unavailable error")
	}
	if !strings.Contains(err.Error(), "microphone unavailable") {
		t.Errorf("Start() error = %v, want microphone unavailable", err)
	}
	if c.cmd != nil {
		t.Error("capture process retained after failed start")
	}
}

func TestStartStopRoundTrip(t *testing.T) {
	c := newTestCapture(t, "printf 'captured audio' > {file}; sleep 10")

	if err := c.Start(EncodingWAV); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	data, err := c.Stop()
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if string(data) != "captured audio" {
		t.Errorf("Stop() data = %q, want %q", data, "captured audio")
	}
}

func TestStartWhileRunning(t *testing.T) {
	c := newTestCapture(t, "sleep 10")

	if err := c.Start(EncodingWAV); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer c.Stop()

	if err := c.Start(EncodingWAV); err == nil {
		t.Error("second Start() = nil, want already running error")
	}
}
