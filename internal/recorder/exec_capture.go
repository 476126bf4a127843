package recorder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// ExecCapture records from the default microphone through an external
// encoder process (ffmpeg or arecord). The process writes into a
// temporary file which Stop reads back as the clip.
type ExecCapture struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	waited chan error
	file   string

	command func(file string, enc Encoding) (*exec.Cmd, error)
}

// NewExecCapture creates the platform capture backend.
func NewExecCapture() *ExecCapture {
	return &ExecCapture{command: captureCommand}
}

// Supports reports whether the needed encoder binary is present.
func (c *ExecCapture) Supports(enc Encoding) bool {
	switch enc {
	case EncodingOpus, EncodingMP3:
		_, err := exec.LookPath("ffmpeg")
		return err == nil
	case EncodingWAV:
		if _, err := exec.LookPath("arecord"); err == nil {
			return true
		}
		_, err := exec.LookPath("ffmpeg")
		return err == nil
	default:
		return false
	}
}

// Start acquires the microphone and begins encoding into a temp file.
// A failure to spawn or an immediate exit is treated as an access
// denial by the caller.
func (c *ExecCapture) Start(enc Encoding) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil {
		return fmt.Errorf("capture already running")
	}

	file := filepath.Join(os.TempDir(), fmt.Sprintf("mushaf-rec-%s.%s", uuid.NewString(), enc.Extension()))
	cmd, err := c.command(file, enc)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	// Wait runs in its own goroutine so an immediate exit is visible;
	// the channel is drained again by Stop for the normal shutdown.
	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	// Give the process a moment to open the device; an exit within the
	// window means the microphone is unavailable or access was refused.
	select {
	case <-waited:
		os.Remove(file)
		return fmt.Errorf("capture process exited: microphone unavailable")
	case <-time.After(200 * time.Millisecond):
	}

	c.cmd = cmd
	c.waited = waited
	c.file = file
	return nil
}

// Stop signals the encoder to finalize, waits for it, and returns the
// captured bytes. The temp file and the device are released.
func (c *ExecCapture) Stop() ([]byte, error) {
	c.mu.Lock()
	cmd := c.cmd
	waited := c.waited
	file := c.file
	c.cmd = nil
	c.waited = nil
	c.file = ""
	c.mu.Unlock()

	if cmd == nil {
		return nil, fmt.Errorf("capture not running")
	}

	// SIGINT lets ffmpeg/arecord flush headers before exiting.
	if cmd.Process != nil {
		cmd.Process.Signal(syscall.SIGINT)
	}
	<-waited

	defer os.Remove(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read captured audio: %w", err)
	}
	return data, nil
}

func captureCommand(file string, enc Encoding) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("ffmpeg"); err == nil {
			args := []string{"-hide_banner", "-loglevel", "quiet", "-f", "pulse", "-i", "default"}
			switch enc {
			case EncodingOpus:
				args = append(args, "-c:a", "libopus", "-f", "webm")
			case EncodingMP3:
				args = append(args, "-c:a", "libmp3lame", "-f", "mp3")
			default:
				args = append(args, "-c:a", "pcm_s16le", "-f", "wav")
			}
			args = append(args, "-y", file)
			return exec.Command("ffmpeg", args...), nil
		}
		if _, err := exec.LookPath("arecord"); err == nil {
			if enc != EncodingWAV {
				return nil, fmt.Errorf("arecord only captures wav")
			}
			return exec.Command("arecord", "-q", "-f", "cd", file), nil
		}
		return nil, fmt.Errorf("no capture tool found. Install ffmpeg or arecord")
	case "darwin":
		if _, err := exec.LookPath("ffmpeg"); err == nil {
			args := []string{"-hide_banner", "-loglevel", "quiet", "-f", "avfoundation", "-i", ":0"}
			switch enc {
			case EncodingOpus:
				args = append(args, "-c:a", "libopus", "-f", "webm")
			case EncodingMP3:
				args = append(args, "-c:a", "libmp3lame", "-f", "mp3")
			default:
				args = append(args, "-c:a", "pcm_s16le", "-f", "wav")
			}
			args = append(args, "-y", file)
			return exec.Command("ffmpeg", args...), nil
		}
		return nil, fmt.Errorf("ffmpeg is required for recording on macOS")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
