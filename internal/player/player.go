package player

import (
	"sync"
	"time"
)

// User-facing playback notices.
const (
	NoticeTryingAlternate  = "trying alternate source"
	NoticeUnableToPlay     = "unable to play this verse"
	NoticeStillUnavailable = "audio still unavailable"
)

// PlaybackError is a media load or decode failure.
type PlaybackError struct {
	URL    string
	Reason string
}

func (e *PlaybackError) Error() string {
	return "playback failed for " + e.URL + ": " + e.Reason
}

// Backend performs the actual audio I/O on behalf of the state
// machine. Play starts the given URL from the beginning; completion,
// readiness, progress and failure are reported through the EventSink.
type Backend interface {
	SetSink(EventSink)
	Play(url string) error
	Pause() error
	Resume() error
	Seek(t time.Duration) error
	SetMuted(muted bool)
	Stop()
}

// EventSink receives asynchronous backend events. Player implements it.
type EventSink interface {
	HandleReady(duration time.Duration)
	HandleProgress(t time.Duration)
	HandleEnded()
	HandleError(err error)
}

// Snapshot is the read-only view of the machine observed by the GUI.
type Snapshot struct {
	Surah, Verse     int
	State            State
	IsPlaying        bool
	IsLoading        bool
	IsMuted          bool
	Duration         time.Duration
	CurrentTime      time.Duration
	Err              error
	Notice           string
	UsingAlternate   bool
	RepeatTarget     int
	RepeatsCompleted int
}

// Player governs a single verse's audio lifecycle: load, play, pause,
// seek, mute, error-fallback retry and repeat-count looping.
type Player struct {
	mu sync.Mutex

	backend Backend
	source  SourceConfig

	surah, verse int
	state        State
	duration     time.Duration
	elapsed      time.Duration
	muted        bool
	err          error
	notice       string

	usingAlternate bool
	inRetry        bool

	repeatTarget     int
	repeatsCompleted int

	// settleDelay is the pause before a manual retry reloads the
	// source; tests set it to zero.
	settleDelay time.Duration

	onChange func(Snapshot)
}

// New creates a player over the given backend and source config.
func New(backend Backend, source SourceConfig) *Player {
	p := &Player{
		backend:      backend,
		source:       source,
		state:        StateIdle,
		repeatTarget: 1,
		settleDelay:  300 * time.Millisecond,
	}
	backend.SetSink(p)
	return p
}

// OnChange registers the snapshot observer. The callback runs outside
// the player's lock and may be invoked from backend goroutines.
func (p *Player) OnChange(fn func(Snapshot)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Snapshot returns the current read-only state.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Player) snapshotLocked() Snapshot {
	return Snapshot{
		Surah:            p.surah,
		Verse:            p.verse,
		State:            p.state,
		IsPlaying:        p.state == StatePlaying,
		IsLoading:        p.state == StateLoading,
		IsMuted:          p.muted,
		Duration:         p.duration,
		CurrentTime:      p.elapsed,
		Err:              p.err,
		Notice:           p.notice,
		UsingAlternate:   p.usingAlternate,
		RepeatTarget:     p.repeatTarget,
		RepeatsCompleted: p.repeatsCompleted,
	}
}

func (p *Player) notify() {
	p.mu.Lock()
	fn := p.onChange
	snap := p.snapshotLocked()
	p.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// SetSelection switches the player to a new verse. Any in-flight
// source is unloaded and the machine resets to Idle with the primary
// source format and zero elapsed time.
func (p *Player) SetSelection(surah, verse int) {
	p.backend.Stop()

	p.mu.Lock()
	p.surah = surah
	p.verse = verse
	p.state = StateIdle
	p.duration = 0
	p.elapsed = 0
	p.err = nil
	p.notice = ""
	p.usingAlternate = false
	p.inRetry = false
	p.repeatsCompleted = 0
	p.mu.Unlock()

	p.notify()
}

// SetRepeat sets how many times the verse plays before ending.
// Values below 1 are clamped to 1.
func (p *Player) SetRepeat(n int) {
	if n < 1 {
		n = 1
	}
	p.mu.Lock()
	p.repeatTarget = n
	p.mu.Unlock()
	p.notify()
}

// Play starts or resumes playback of the current selection.
func (p *Player) Play() {
	p.mu.Lock()
	switch p.state {
	case StatePaused:
		p.state = StatePlaying
		p.mu.Unlock()
		if err := p.backend.Resume(); err != nil {
			p.HandleError(err)
			return
		}
		p.notify()
		return
	case StateIdle, StateEnded:
		p.state = StateLoading
		p.notice = ""
		url := p.currentURLLocked()
		p.mu.Unlock()
		p.notify()
		if err := p.backend.Play(url); err != nil {
			p.HandleError(err)
		}
		return
	default:
		p.mu.Unlock()
	}
}

// Pause suspends playback without unloading the source.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.state = StatePaused
	p.mu.Unlock()

	p.backend.Pause()
	p.notify()
}

// SetTime seeks to t. Seeking is permitted only once the duration is
// known and the machine is not in the error state; play/pause state is
// unchanged.
func (p *Player) SetTime(t time.Duration) {
	p.mu.Lock()
	if p.duration <= 0 || p.state == StateError {
		p.mu.Unlock()
		return
	}
	p.elapsed = t
	p.mu.Unlock()

	p.backend.Seek(t)
	p.notify()
}

// ToggleMute flips the mute flag. Muting has no state-machine
// interaction.
func (p *Player) ToggleMute() {
	p.mu.Lock()
	p.muted = !p.muted
	muted := p.muted
	p.mu.Unlock()

	p.backend.SetMuted(muted)
	p.notify()
}

// Retry recovers from the error state by flipping the active source
// format and reloading after a short settling delay. A second failure
// lands back in Error with a distinct message.
func (p *Player) Retry() {
	p.mu.Lock()
	if p.state != StateError {
		p.mu.Unlock()
		return
	}
	p.usingAlternate = !p.usingAlternate
	p.inRetry = true
	p.err = nil
	p.notice = ""
	p.state = StateLoading
	url := p.currentURLLocked()
	delay := p.settleDelay
	p.mu.Unlock()
	p.notify()

	time.Sleep(delay)
	if err := p.backend.Play(url); err != nil {
		p.HandleError(err)
	}
}

// HandleReady records the track duration once metadata is loaded and
// clears the loading state.
func (p *Player) HandleReady(duration time.Duration) {
	p.mu.Lock()
	p.duration = duration
	p.inRetry = false
	if p.state == StateLoading {
		p.state = StatePlaying
	}
	p.mu.Unlock()
	p.notify()
}

// HandleProgress updates elapsed time while playing.
func (p *Player) HandleProgress(t time.Duration) {
	p.mu.Lock()
	if p.state != StatePlaying {
		p.mu.Unlock()
		return
	}
	p.elapsed = t
	p.mu.Unlock()
	p.notify()
}

// HandleEnded processes natural end-of-track: loop again while the
// repeat target is unmet, otherwise unload and rest in Ended.
func (p *Player) HandleEnded() {
	p.mu.Lock()
	if p.repeatsCompleted < p.repeatTarget-1 {
		p.repeatsCompleted++
		p.elapsed = 0
		url := p.currentURLLocked()
		p.mu.Unlock()
		p.notify()
		if err := p.backend.Play(url); err != nil {
			p.HandleError(err)
		}
		return
	}

	p.state = StateEnded
	p.elapsed = 0
	p.repeatsCompleted = 0
	p.mu.Unlock()

	p.backend.Stop()
	p.notify()
}

// HandleError processes a load or decode failure. The first failure on
// the primary source falls back to the alternate format once; any
// further failure is terminal until a manual retry.
func (p *Player) HandleError(err error) {
	p.mu.Lock()
	if p.inRetry {
		p.inRetry = false
		p.state = StateError
		p.err = err
		p.notice = NoticeStillUnavailable
		p.mu.Unlock()
		p.notify()
		return
	}

	if !p.usingAlternate {
		p.usingAlternate = true
		p.state = StateLoading
		p.notice = NoticeTryingAlternate
		url := p.currentURLLocked()
		p.mu.Unlock()
		p.notify()
		if playErr := p.backend.Play(url); playErr != nil {
			p.HandleError(playErr)
		}
		return
	}

	p.state = StateError
	p.err = err
	p.notice = NoticeUnableToPlay
	p.mu.Unlock()
	p.notify()
}

func (p *Player) currentURLLocked() string {
	return p.source.URL(p.surah, p.verse, p.usingAlternate)
}
