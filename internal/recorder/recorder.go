// Package recorder implements the practice-recitation recording
// controller: microphone capture into an in-memory clip, playback of
// the captured clip, and saving it to disk. The controller owns a
// CaptureBackend for the device I/O and exposes commands plus a
// read-only snapshot, mirroring the playback machine's shape.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State represents the recording session lifecycle.
type State string

const (
	StateIdle                 State = "Idle"
	StateRequestingPermission State = "RequestingPermission"
	StateRecording            State = "Recording"
	StateStopped              State = "Stopped"
)

var (
	// ErrPermission reports that microphone access was denied.
	ErrPermission = errors.New("microphone access denied")

	// ErrNoRecording reports an operation that needs a captured clip
	// when none is available.
	ErrNoRecording = errors.New("no recording available")

	// ErrNoAudioCaptured reports a stop with an empty capture buffer.
	ErrNoAudioCaptured = errors.New("no audio captured")
)

// CaptureBackend performs device capture. Start acquires the
// microphone and begins buffering; Stop finalizes the buffer, releases
// the device and returns the captured bytes.
type CaptureBackend interface {
	Supports(enc Encoding) bool
	Start(enc Encoding) error
	Stop() ([]byte, error)
}

// ClipPlayer plays a finished clip back. done is invoked when playback
// finishes naturally.
type ClipPlayer interface {
	PlayClip(data []byte, enc Encoding, done func()) error
	StopClip()
}

// Snapshot is the read-only view of the controller.
type Snapshot struct {
	State         State
	IsRecording   bool
	IsPlayingBack bool
	HasClip       bool
	ClipID        string
	Encoding      Encoding
}

// Recorder captures microphone input into an in-memory clip and
// manages the start/stop/play/save lifecycle. The clip is transient:
// it lives until the next recording starts or the session is closed.
type Recorder struct {
	mu sync.Mutex

	capture  CaptureBackend
	playback ClipPlayer

	state       State
	playingBack bool

	clip         []byte
	clipID       string
	clipEncoding Encoding

	preferred []Encoding

	onChange func(Snapshot)
}

// New creates a recording controller.
func New(capture CaptureBackend, playback ClipPlayer) *Recorder {
	return &Recorder{
		capture:   capture,
		playback:  playback,
		state:     StateIdle,
		preferred: PreferredEncodings(),
	}
}

// OnChange registers the snapshot observer.
func (r *Recorder) OnChange(fn func(Snapshot)) {
	r.mu.Lock()
	r.onChange = fn
	r.mu.Unlock()
}

// Snapshot returns the current read-only state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() Snapshot {
	return Snapshot{
		State:         r.state,
		IsRecording:   r.state == StateRecording,
		IsPlayingBack: r.playingBack,
		HasClip:       len(r.clip) > 0,
		ClipID:        r.clipID,
		Encoding:      r.clipEncoding,
	}
}

func (r *Recorder) notify() {
	r.mu.Lock()
	fn := r.onChange
	snap := r.snapshotLocked()
	r.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// Start requests microphone access and begins capturing. Any previous
// clip is discarded. On denial the controller stays Idle and reports
// ErrPermission.
func (r *Recorder) Start() error {
	r.mu.Lock()
	if r.state == StateRecording || r.state == StateRequestingPermission {
		r.mu.Unlock()
		return nil
	}
	r.state = StateRequestingPermission
	enc := r.chooseEncodingLocked()
	r.mu.Unlock()
	r.notify()

	if err := r.capture.Start(enc); err != nil {
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		r.notify()
		return fmt.Errorf("%w: %v", ErrPermission, err)
	}

	r.mu.Lock()
	r.clip = nil
	r.clipID = ""
	r.clipEncoding = enc
	r.state = StateRecording
	r.mu.Unlock()
	r.notify()
	return nil
}

// Stop finalizes the capture buffer into a clip and releases the
// device. An empty buffer yields ErrNoAudioCaptured and no clip.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	data, err := r.capture.Stop()
	if err != nil {
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		r.notify()
		return fmt.Errorf("failed to finalize recording: %w", err)
	}

	r.mu.Lock()
	if len(data) == 0 {
		r.state = StateIdle
		r.mu.Unlock()
		r.notify()
		return ErrNoAudioCaptured
	}
	r.clip = data
	r.clipID = uuid.NewString()
	r.state = StateStopped
	r.mu.Unlock()
	r.notify()
	return nil
}

// Play starts playback of the captured clip.
func (r *Recorder) Play() error {
	r.mu.Lock()
	if len(r.clip) == 0 {
		r.mu.Unlock()
		return ErrNoRecording
	}
	if r.playingBack {
		r.mu.Unlock()
		return nil
	}
	r.playingBack = true
	data := r.clip
	enc := r.clipEncoding
	r.mu.Unlock()
	r.notify()

	err := r.playback.PlayClip(data, enc, func() {
		r.mu.Lock()
		r.playingBack = false
		r.mu.Unlock()
		r.notify()
	})
	if err != nil {
		r.mu.Lock()
		r.playingBack = false
		r.mu.Unlock()
		r.notify()
		return fmt.Errorf("clip playback failed: %w", err)
	}
	return nil
}

// StopPlayback halts clip playback.
func (r *Recorder) StopPlayback() {
	r.mu.Lock()
	if !r.playingBack {
		r.mu.Unlock()
		return
	}
	r.playingBack = false
	r.mu.Unlock()

	r.playback.StopClip()
	r.notify()
}

// Save writes the clip to the given path. Saving with no clip reports
// ErrNoRecording and writes nothing.
func (r *Recorder) Save(path string) error {
	r.mu.Lock()
	data := r.clip
	r.mu.Unlock()

	if len(data) == 0 {
		return ErrNoRecording
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save recording: %w", err)
	}
	return nil
}

// SaveDefault writes the clip into dir under a timestamped filename
// with the extension derived from the clip's encoding, and returns the
// path written.
func (r *Recorder) SaveDefault(dir string) (string, error) {
	r.mu.Lock()
	enc := r.clipEncoding
	hasClip := len(r.clip) > 0
	r.mu.Unlock()

	if !hasClip {
		return "", ErrNoRecording
	}

	name := fmt.Sprintf("recitation-%s.%s", time.Now().Format("20060102-150405"), enc.Extension())
	path := filepath.Join(dir, name)
	if err := r.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Recorder) chooseEncodingLocked() Encoding {
	for _, enc := range r.preferred {
		if r.capture.Supports(enc) {
			return enc
		}
	}
	return DefaultEncoding
}
