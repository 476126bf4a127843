package player

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// mockBackend scripts per-URL failures and reports readiness
// synchronously on successful Play.
type mockBackend struct {
	sink EventSink

	failing  map[string]bool
	duration time.Duration

	playCalls   []string
	pauseCalls  int
	resumeCalls int
	seekCalls   []time.Duration
	stopCalls   int
	muted       bool
}

func newMockBackend() *mockBackend {
	return &mockBackend{
		failing:  make(map[string]bool),
		duration: 5 * time.Second,
	}
}

func (m *mockBackend) SetSink(sink EventSink) { m.sink = sink }

func (m *mockBackend) Play(url string) error {
	m.playCalls = append(m.playCalls, url)
	if m.failing[url] {
		return &PlaybackError{URL: url, Reason: "scripted failure"}
	}
	m.sink.HandleReady(m.duration)
	return nil
}

func (m *mockBackend) Pause() error  { m.pauseCalls++; return nil }
func (m *mockBackend) Resume() error { m.resumeCalls++; return nil }

func (m *mockBackend) Seek(t time.Duration) error {
	m.seekCalls = append(m.seekCalls, t)
	return nil
}

func (m *mockBackend) SetMuted(muted bool) { m.muted = muted }
func (m *mockBackend) Stop()               { m.stopCalls++ }

func newTestPlayer(backend *mockBackend) *Player {
	p := New(backend, SourceConfig{
		CDNBase: "https://cdn.test",
		Bitrate: 128,
		Reciter: "ar.alafasy",
		Primary: URLFormatUnderscore,
	})
	p.settleDelay = 0
	p.SetSelection(2, 255)
	return p
}

func TestPlaySuccessOnPrimarySource(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)

	p.Play()

	snap := p.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %s, want Playing", snap.State)
	}
	if snap.UsingAlternate {
		t.Error("expected primary source to be in use")
	}
	if snap.Duration != 5*time.Second {
		t.Errorf("duration = %v, want 5s", snap.Duration)
	}
	if len(backend.playCalls) != 1 || !strings.HasSuffix(backend.playCalls[0], "2_255.mp3") {
		t.Errorf("play calls = %v, want single primary-format URL", backend.playCalls)
	}
}

func TestPlayFallsBackToAlternateExactlyOnce(t *testing.T) {
	backend := newMockBackend()
	backend.failing["https://cdn.test/128/ar.alafasy/2_255.mp3"] = true

	p := newTestPlayer(backend)

	var states []State
	p.OnChange(func(s Snapshot) { states = append(states, s.State) })

	p.Play()

	snap := p.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %s, want Playing after one fallback", snap.State)
	}
	if !snap.UsingAlternate {
		t.Error("expected alternate source to be in use")
	}
	if snap.Err != nil {
		t.Errorf("err = %v, want nil", snap.Err)
	}

	want := []string{
		"https://cdn.test/128/ar.alafasy/2_255.mp3",
		"https://cdn.test/128/ar.alafasy/2:255.mp3",
	}
	if len(backend.playCalls) != 2 || backend.playCalls[0] != want[0] || backend.playCalls[1] != want[1] {
		t.Errorf("play calls = %v, want %v", backend.playCalls, want)
	}

	// Loading -> Loading(alternate) -> Playing, never Error.
	for _, s := range states {
		if s == StateError {
			t.Fatalf("observed Error state during fallback: %v", states)
		}
	}
}

func TestPlayFailsTerminallyWhenBothSourcesFail(t *testing.T) {
	backend := newMockBackend()
	backend.failing["https://cdn.test/128/ar.alafasy/2_255.mp3"] = true
	backend.failing["https://cdn.test/128/ar.alafasy/2:255.mp3"] = true

	p := newTestPlayer(backend)
	p.Play()

	snap := p.Snapshot()
	if snap.State != StateError {
		t.Fatalf("state = %s, want Error", snap.State)
	}
	if snap.Err == nil {
		t.Error("expected a playback error")
	}
	if snap.Notice != NoticeUnableToPlay {
		t.Errorf("notice = %q, want %q", snap.Notice, NoticeUnableToPlay)
	}
	if len(backend.playCalls) != 2 {
		t.Errorf("play attempts = %d, want exactly 2 (one fallback)", len(backend.playCalls))
	}
}

func TestRetryFromErrorFlipsSourceAndRecovers(t *testing.T) {
	backend := newMockBackend()
	backend.failing["https://cdn.test/128/ar.alafasy/2_255.mp3"] = true
	backend.failing["https://cdn.test/128/ar.alafasy/2:255.mp3"] = true

	p := newTestPlayer(backend)
	p.Play()
	if p.Snapshot().State != StateError {
		t.Fatal("precondition: player should be in Error")
	}

	// The primary source has recovered; retry flips back to it.
	delete(backend.failing, "https://cdn.test/128/ar.alafasy/2_255.mp3")
	p.Retry()

	snap := p.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state after retry = %s, want Playing", snap.State)
	}
	if snap.Err != nil {
		t.Errorf("err = %v, want cleared", snap.Err)
	}
}

func TestRetryFailureUsesDistinctNotice(t *testing.T) {
	backend := newMockBackend()
	backend.failing["https://cdn.test/128/ar.alafasy/2_255.mp3"] = true
	backend.failing["https://cdn.test/128/ar.alafasy/2:255.mp3"] = true

	p := newTestPlayer(backend)
	p.Play()
	p.Retry()

	snap := p.Snapshot()
	if snap.State != StateError {
		t.Fatalf("state = %s, want Error after failed retry", snap.State)
	}
	if snap.Notice != NoticeStillUnavailable {
		t.Errorf("notice = %q, want %q", snap.Notice, NoticeStillUnavailable)
	}
}

func TestRepeatLoopsBeforeEnding(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)
	p.SetRepeat(3)

	p.Play()
	if p.Snapshot().State != StatePlaying {
		t.Fatal("precondition: playing")
	}

	// First two natural ends rewind and re-invoke play.
	p.HandleEnded()
	snap := p.Snapshot()
	if snap.RepeatsCompleted != 1 || snap.State == StateEnded {
		t.Fatalf("after first end: repeats = %d, state = %s", snap.RepeatsCompleted, snap.State)
	}

	p.HandleEnded()
	snap = p.Snapshot()
	if snap.RepeatsCompleted != 2 || snap.State == StateEnded {
		t.Fatalf("after second end: repeats = %d, state = %s", snap.RepeatsCompleted, snap.State)
	}

	// Third end is final: Ended, source unloaded, counter reset.
	p.HandleEnded()
	snap = p.Snapshot()
	if snap.State != StateEnded {
		t.Fatalf("state = %s, want Ended", snap.State)
	}
	if snap.RepeatsCompleted != 0 {
		t.Errorf("repeats after final end = %d, want 0", snap.RepeatsCompleted)
	}
	if snap.CurrentTime != 0 {
		t.Errorf("elapsed after final end = %v, want 0", snap.CurrentTime)
	}
	if backend.stopCalls == 0 {
		t.Error("expected backend.Stop on final end")
	}
	if len(backend.playCalls) != 3 {
		t.Errorf("total play invocations = %d, want 3", len(backend.playCalls))
	}
}

func TestPauseAndResume(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)

	p.Play()
	p.Pause()

	snap := p.Snapshot()
	if snap.State != StatePaused {
		t.Fatalf("state = %s, want Paused", snap.State)
	}
	if backend.pauseCalls != 1 {
		t.Errorf("pause calls = %d, want 1", backend.pauseCalls)
	}

	p.Play()
	snap = p.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %s, want Playing after resume", snap.State)
	}
	if backend.resumeCalls != 1 {
		t.Errorf("resume calls = %d, want 1", backend.resumeCalls)
	}
	// Resuming must not reload the source.
	if len(backend.playCalls) != 1 {
		t.Errorf("play calls = %d, want 1", len(backend.playCalls))
	}
}

func TestSeekRequiresKnownDurationAndNoError(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)

	// Duration unknown: seek ignored.
	p.SetTime(2 * time.Second)
	if len(backend.seekCalls) != 0 {
		t.Fatal("seek before metadata load should be ignored")
	}

	p.Play()
	p.SetTime(2 * time.Second)
	snap := p.Snapshot()
	if snap.CurrentTime != 2*time.Second {
		t.Errorf("elapsed = %v, want 2s", snap.CurrentTime)
	}
	if snap.State != StatePlaying {
		t.Errorf("seek changed play state to %s", snap.State)
	}
	if len(backend.seekCalls) != 1 {
		t.Errorf("seek calls = %d, want 1", len(backend.seekCalls))
	}

	// Error state: seek ignored. The fallback attempt fails too, so
	// one decode failure lands the machine in Error.
	backend.failing["https://cdn.test/128/ar.alafasy/2:255.mp3"] = true
	p.HandleError(errors.New("decode failure"))
	if p.Snapshot().State != StateError {
		t.Fatal("precondition: error state")
	}
	p.SetTime(time.Second)
	if len(backend.seekCalls) != 1 {
		t.Error("seek in Error state should be ignored")
	}
}

func TestToggleMuteIsOrthogonal(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)
	p.Play()

	p.ToggleMute()
	snap := p.Snapshot()
	if !snap.IsMuted || !backend.muted {
		t.Error("expected muted after toggle")
	}
	if snap.State != StatePlaying {
		t.Errorf("mute changed state to %s", snap.State)
	}

	p.ToggleMute()
	if p.Snapshot().IsMuted {
		t.Error("expected unmuted after second toggle")
	}
}

func TestSetSelectionResetsMachine(t *testing.T) {
	backend := newMockBackend()
	backend.failing["https://cdn.test/128/ar.alafasy/2_255.mp3"] = true
	backend.failing["https://cdn.test/128/ar.alafasy/2:255.mp3"] = true

	p := newTestPlayer(backend)
	p.Play()
	if p.Snapshot().State != StateError {
		t.Fatal("precondition: error state")
	}

	stops := backend.stopCalls
	p.SetSelection(3, 1)

	snap := p.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("state = %s, want Idle", snap.State)
	}
	if snap.Err != nil || snap.Notice != "" {
		t.Error("expected error and notice cleared on new selection")
	}
	if snap.UsingAlternate {
		t.Error("expected reset to primary source")
	}
	if snap.CurrentTime != 0 || snap.Duration != 0 {
		t.Error("expected zeroed time on new selection")
	}
	if backend.stopCalls != stops+1 {
		t.Error("expected in-flight source unloaded")
	}
}

func TestProgressUpdatesOnlyWhilePlaying(t *testing.T) {
	backend := newMockBackend()
	p := newTestPlayer(backend)

	p.HandleProgress(3 * time.Second)
	if p.Snapshot().CurrentTime != 0 {
		t.Error("progress while Idle should be ignored")
	}

	p.Play()
	p.HandleProgress(3 * time.Second)
	if p.Snapshot().CurrentTime != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", p.Snapshot().CurrentTime)
	}
}
