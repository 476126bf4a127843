package recorder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type mockCapture struct {
	supports   map[Encoding]bool
	startErr   error
	data       []byte
	stopErr    error
	started    []Encoding
	stopCalled int
}

func (m *mockCapture) Supports(enc Encoding) bool {
	if m.supports == nil {
		return true
	}
	return m.supports[enc]
}

func (m *mockCapture) Start(enc Encoding) error {
	m.started = append(m.started, enc)
	return m.startErr
}

func (m *mockCapture) Stop() ([]byte, error) {
	m.stopCalled++
	return m.data, m.stopErr
}

type mockClipPlayer struct {
	playErr    error
	played     [][]byte
	stopCalled int
	done       func()
}

func (m *mockClipPlayer) PlayClip(data []byte, enc Encoding, done func()) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, data)
	m.done = done
	return nil
}

func (m *mockClipPlayer) StopClip() {
	m.stopCalled++
}

func TestRecordStopProducesClip(t *testing.T) {
	capture := &mockCapture{data: []byte("audio-bytes")}
	r := New(capture, &mockClipPlayer{})

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := r.Snapshot().State; got != StateRecording {
		t.Errorf("state after Start = %v, want %v", got, StateRecording)
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	snap := r.Snapshot()
	if snap.State != StateStopped {
		t.Errorf("state after Stop = %v, want %v", snap.State, StateStopped)
	}
	if !snap.HasClip {
		t.Error("expected a clip after stopping")
	}
	if snap.ClipID == "" {
		t.Error("expected a clip ID to be assigned")
	}
}

func TestPermissionDenialStaysIdle(t *testing.T) {
	capture := &mockCapture{startErr: errors.New("device busy")}
	r := New(capture, &mockClipPlayer{})

	err := r.Start()
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("Start() error = %v, want ErrPermission", err)
	}
	if got := r.Snapshot().State; got != StateIdle {
		t.Errorf("state after denial = %v, want %v", got, StateIdle)
	}
}

func TestEmptyCaptureYieldsNoClip(t *testing.T) {
	capture := &mockCapture{data: nil}
	r := New(capture, &mockClipPlayer{})

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Stop(); !errors.Is(err, ErrNoAudioCaptured) {
		t.Fatalf("Stop() error = %v, want ErrNoAudioCaptured", err)
	}

	snap := r.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("state = %v, want %v", snap.State, StateIdle)
	}
	if snap.HasClip {
		t.Error("expected no clip for an empty capture")
	}
}

func TestStartDiscardsPreviousClip(t *testing.T) {
	capture := &mockCapture{data: []byte("first")}
	r := New(capture, &mockClipPlayer{})

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	firstID := r.Snapshot().ClipID

	if err := r.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	snap := r.Snapshot()
	if snap.HasClip {
		t.Error("starting a new recording should discard the previous clip")
	}

	capture.data = []byte("second")
	if err := r.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
	if got := r.Snapshot().ClipID; got == firstID {
		t.Error("expected a fresh clip ID for the second recording")
	}
}

func TestPlayWithoutClip(t *testing.T) {
	r := New(&mockCapture{}, &mockClipPlayer{})

	if err := r.Play(); !errors.Is(err, ErrNoRecording) {
		t.Errorf("Play() error = %v, want ErrNoRecording", err)
	}
}

func TestPlaybackLifecycle(t *testing.T) {
	capture := &mockCapture{data: []byte("clip")}
	player := &mockClipPlayer{}
	r := New(capture, player)

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if err := r.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !r.Snapshot().IsPlayingBack {
		t.Error("expected IsPlayingBack after Play")
	}
	if len(player.played) != 1 || string(player.played[0]) != "clip" {
		t.Errorf("played %q, want one playback of the clip bytes", player.played)
	}

	// A second Play while already playing is a no-op.
	if err := r.Play(); err != nil {
		t.Fatalf("repeat Play() error = %v", err)
	}
	if len(player.played) != 1 {
		t.Errorf("played %d times, want 1", len(player.played))
	}

	player.done()
	if r.Snapshot().IsPlayingBack {
		t.Error("expected playback to end after the done callback")
	}
}

func TestStopPlayback(t *testing.T) {
	capture := &mockCapture{data: []byte("clip")}
	player := &mockClipPlayer{}
	r := New(capture, player)

	r.Start()
	r.Stop()
	r.Play()

	r.StopPlayback()
	if r.Snapshot().IsPlayingBack {
		t.Error("expected IsPlayingBack false after StopPlayback")
	}
	if player.stopCalled != 1 {
		t.Errorf("StopClip called %d times, want 1", player.stopCalled)
	}

	// Stopping again does not reach the player.
	r.StopPlayback()
	if player.stopCalled != 1 {
		t.Errorf("StopClip called %d times after second stop, want 1", player.stopCalled)
	}
}

func TestSaveWithoutClip(t *testing.T) {
	r := New(&mockCapture{}, &mockClipPlayer{})

	if err := r.Save(filepath.Join(t.TempDir(), "out.wav")); !errors.Is(err, ErrNoRecording) {
		t.Errorf("Save() error = %v, want ErrNoRecording", err)
	}
	if _, err := r.SaveDefault(t.TempDir()); !errors.Is(err, ErrNoRecording) {
		t.Errorf("SaveDefault() error = %v, want ErrNoRecording", err)
	}
}

func TestSaveDefaultWritesTimestampedFile(t *testing.T) {
	capture := &mockCapture{data: []byte("recitation"), supports: map[Encoding]bool{EncodingOpus: true}}
	r := New(capture, &mockClipPlayer{})

	r.Start()
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	dir := t.TempDir()
	path, err := r.SaveDefault(dir)
	if err != nil {
		t.Fatalf("SaveDefault() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "recitation-") {
		t.Errorf("filename = %q, want recitation- prefix", base)
	}
	if !strings.HasSuffix(base, ".webm") {
		t.Errorf("filename = %q, want .webm extension for an opus clip", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "recitation" {
		t.Errorf("saved bytes = %q, want %q", data, "recitation")
	}
}

func TestEncodingPreferenceFallsBack(t *testing.T) {
	capture := &mockCapture{data: []byte("x"), supports: map[Encoding]bool{EncodingWAV: true}}
	r := New(capture, &mockClipPlayer{})

	r.Start()
	if len(capture.started) != 1 || capture.started[0] != EncodingWAV {
		t.Errorf("started with %v, want [wav] when only wav is supported", capture.started)
	}
}
