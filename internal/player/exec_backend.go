package player

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// ExecBackend plays recitation audio through an external player
// process (mpg123, ffplay, afplay, ...). Sources are downloaded to a
// cache directory first so that load failures surface before any
// process is spawned. Pause and seek are implemented by relaunching
// the player with a start offset.
type ExecBackend struct {
	cacheDir   string
	bitrate    int
	httpClient *http.Client

	mu       sync.Mutex
	sink     EventSink
	file     string
	duration time.Duration
	offset   time.Duration
	muted    bool
	cmd      *exec.Cmd
	killed   bool
	stopTick chan struct{}
}

// NewExecBackend creates a backend caching downloads under cacheDir.
// The bitrate must match the configured source bitrate; duration
// estimates are derived from it.
func NewExecBackend(cacheDir string, bitrate int) *ExecBackend {
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	return &ExecBackend{
		cacheDir:   cacheDir,
		bitrate:    bitrate,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetSink registers the event receiver.
func (b *ExecBackend) SetSink(sink EventSink) {
	b.mu.Lock()
	b.sink = sink
	b.mu.Unlock()
}

// Play downloads the source if needed, reports readiness, and starts
// playback from the beginning.
func (b *ExecBackend) Play(url string) error {
	file, err := b.fetch(url)
	if err != nil {
		return &PlaybackError{URL: url, Reason: err.Error()}
	}

	duration := estimateDuration(file, b.bitrate)

	b.mu.Lock()
	b.file = file
	b.duration = duration
	b.offset = 0
	sink := b.sink
	b.mu.Unlock()

	if sink != nil {
		sink.HandleReady(duration)
	}
	return b.launch(0)
}

// Pause kills the player process, keeping the current offset.
func (b *ExecBackend) Pause() error {
	b.stopProcess()
	return nil
}

// Resume relaunches the player at the remembered offset.
func (b *ExecBackend) Resume() error {
	b.mu.Lock()
	offset := b.offset
	b.mu.Unlock()
	return b.launch(offset)
}

// Seek moves the offset; a running player is relaunched there.
func (b *ExecBackend) Seek(t time.Duration) error {
	b.mu.Lock()
	b.offset = t
	running := b.cmd != nil
	b.mu.Unlock()

	if running {
		b.stopProcess()
		return b.launch(t)
	}
	return nil
}

// SetMuted applies on the next (re)launch; a running player is
// relaunched at the current offset.
func (b *ExecBackend) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	offset := b.offset
	running := b.cmd != nil
	b.mu.Unlock()

	if running {
		b.stopProcess()
		b.launch(offset)
	}
}

// Stop unloads the current source.
func (b *ExecBackend) Stop() {
	b.stopProcess()
	b.mu.Lock()
	b.file = ""
	b.offset = 0
	b.duration = 0
	b.mu.Unlock()
}

// fetch downloads url into the cache directory, reusing an existing
// cached copy.
func (b *ExecBackend) fetch(url string) (string, error) {
	if err := os.MkdirAll(b.cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	file := filepath.Join(b.cacheDir, cacheName(url))
	if info, err := os.Stat(file); err == nil && info.Size() > 0 {
		return file, nil
	}

	resp, err := b.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tmp := file + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("download interrupted: %w", err)
	}
	out.Close()

	if err := os.Rename(tmp, file); err != nil {
		return "", fmt.Errorf("failed to finalize cache file: %w", err)
	}
	return file, nil
}

// launch starts the platform audio player at the given offset and
// watches it for completion.
func (b *ExecBackend) launch(offset time.Duration) error {
	b.mu.Lock()
	file := b.file
	muted := b.muted
	b.mu.Unlock()

	if file == "" {
		return &PlaybackError{Reason: "no source loaded"}
	}

	cmd, err := playerCommand(file, offset, muted)
	if err != nil {
		return &PlaybackError{URL: file, Reason: err.Error()}
	}

	stopTick := make(chan struct{})

	b.mu.Lock()
	b.cmd = cmd
	b.killed = false
	b.offset = offset
	b.stopTick = stopTick
	sink := b.sink
	b.mu.Unlock()

	// Progress ticker; the external player gives us no position
	// feedback, so elapsed time is tracked from the launch offset.
	go func() {
		started := time.Now()
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopTick:
				return
			case <-ticker.C:
				elapsed := offset + time.Since(started)
				b.mu.Lock()
				b.offset = elapsed
				b.mu.Unlock()
				if sink != nil {
					sink.HandleProgress(elapsed)
				}
			}
		}
	}()

	go func() {
		runErr := cmd.Run()
		close(stopTick)

		b.mu.Lock()
		killed := b.killed
		b.cmd = nil
		b.mu.Unlock()

		if killed {
			return
		}
		if runErr != nil {
			if sink != nil {
				sink.HandleError(&PlaybackError{URL: file, Reason: runErr.Error()})
			}
			return
		}
		if sink != nil {
			sink.HandleEnded()
		}
	}()

	return nil
}

func (b *ExecBackend) stopProcess() {
	b.mu.Lock()
	cmd := b.cmd
	if cmd != nil {
		b.killed = true
	}
	b.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// playerCommand picks the platform audio player. mpg123 first since it
// handles MP3 best and supports frame-accurate start offsets.
func playerCommand(file string, offset time.Duration, muted bool) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		if muted {
			return exec.Command("afplay", "-v", "0", file), nil
		}
		return exec.Command("afplay", file), nil
	case "linux":
		if _, err := exec.LookPath("mpg123"); err == nil {
			args := []string{"-q"}
			if offset > 0 {
				// mpg123 seeks in MPEG frames, roughly 38 per second.
				frames := int(offset.Seconds() * 38)
				args = append(args, "-k", strconv.Itoa(frames))
			}
			if muted {
				args = append(args, "-f", "0")
			}
			args = append(args, file)
			return exec.Command("mpg123", args...), nil
		}
		if _, err := exec.LookPath("ffplay"); err == nil {
			args := []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}
			if offset > 0 {
				args = append(args, "-ss", fmt.Sprintf("%.2f", offset.Seconds()))
			}
			if muted {
				args = append(args, "-volume", "0")
			}
			args = append(args, file)
			return exec.Command("ffplay", args...), nil
		}
		if _, err := exec.LookPath("play"); err == nil {
			return exec.Command("play", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, or sox")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// estimateDuration derives the track length from the file size at the
// configured constant bitrate. Close enough for the seek slider.
func estimateDuration(file string, bitrate int) time.Duration {
	info, err := os.Stat(file)
	if err != nil {
		return 0
	}
	seconds := float64(info.Size()*8) / float64(bitrate*1000)
	return time.Duration(seconds * float64(time.Second))
}

func cacheName(url string) string {
	name := ""
	for _, r := range url {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			name += string(r)
		default:
			name += "_"
		}
	}
	if len(name) > 120 {
		name = name[len(name)-120:]
	}
	return name
}
