// Package player implements the verse recitation playback state
// machine. The machine owns a Backend that does the actual audio I/O
// and exposes commands plus a read-only state snapshot; the GUI layer
// observes snapshots and never touches the backend directly.
package player

// State represents the playback lifecycle of the selected verse.
type State string

const (
	// StateIdle means no source is loaded.
	StateIdle State = "Idle"

	// StateLoading means a source is being fetched or prepared.
	StateLoading State = "Loading"

	// StatePlaying means audio is playing.
	StatePlaying State = "Playing"

	// StatePaused means playback is suspended with the source loaded.
	StatePaused State = "Paused"

	// StateEnded means the track finished and the source was unloaded.
	StateEnded State = "Ended"

	// StateError means playback failed on both source formats.
	StateError State = "Error"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsActive returns true while a source is loaded and live.
func (s State) IsActive() bool {
	return s == StateLoading || s == StatePlaying || s == StatePaused
}

// IsTerminal returns true once playback cannot continue without a new
// command.
func (s State) IsTerminal() bool {
	return s == StateEnded || s == StateError
}
