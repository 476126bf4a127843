package recorder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// ExecClipPlayer plays a captured clip through an external audio
// player. The clip bytes are written to a temp file that is removed
// when playback finishes.
type ExecClipPlayer struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewExecClipPlayer() *ExecClipPlayer {
	return &ExecClipPlayer{}
}

// PlayClip writes data to a temp file and spawns a player for it. The
// done callback fires once when the process exits or is stopped.
func (p *ExecClipPlayer) PlayClip(data []byte, enc Encoding, done func()) error {
	file := filepath.Join(os.TempDir(), fmt.Sprintf("mushaf-clip-%s.%s", uuid.NewString(), enc.Extension()))
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to stage clip: %w", err)
	}

	cmd, err := clipCommand(file)
	if err != nil {
		os.Remove(file)
		return err
	}
	if err := cmd.Start(); err != nil {
		os.Remove(file)
		return fmt.Errorf("failed to start clip player: %w", err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	go func() {
		cmd.Wait()
		os.Remove(file)

		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
		}
		p.mu.Unlock()

		if done != nil {
			done()
		}
	}()
	return nil
}

// StopClip kills the current playback process, if any.
func (p *ExecClipPlayer) StopClip() {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

func clipCommand(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		for _, player := range []string{"mpg123", "ffplay", "play"} {
			if _, err := exec.LookPath(player); err != nil {
				continue
			}
			switch player {
			case "ffplay":
				return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
			case "mpg123":
				return exec.Command("mpg123", "-q", file), nil
			default:
				return exec.Command("play", "-q", file), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, or sox")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
