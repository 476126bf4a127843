package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"mushaf/internal/player"
)

// PlayerWidget is the recitation playback control bar. It renders the
// playback machine's snapshots and forwards user commands to it.
type PlayerWidget struct {
	widget.BaseWidget

	container *fyne.Container

	playButton  *ttwidget.Button
	retryButton *ttwidget.Button
	muteButton  *ttwidget.Button
	repeatSel   *widget.Select
	seekSlider  *widget.Slider
	timeLabel   *widget.Label
	statusLabel *widget.Label

	machine *player.Player

	// seeking suppresses slider feedback loops while the machine
	// updates the slider position itself.
	seeking bool
}

// NewPlayerWidget creates the playback bar bound to the given machine.
func NewPlayerWidget(machine *player.Player) *PlayerWidget {
	w := &PlayerWidget{machine: machine}

	w.playButton = ttwidget.NewButton("", w.onPlayPause)
	w.playButton.Icon = theme.MediaPlayIcon()
	w.playButton.SetToolTip("Play recitation (Space)")
	w.playButton.Disable()

	w.retryButton = ttwidget.NewButton("", w.onRetry)
	w.retryButton.Icon = theme.ViewRefreshIcon()
	w.retryButton.SetToolTip("Retry from the other audio source")
	w.retryButton.Hide()

	w.muteButton = ttwidget.NewButton("", w.onMute)
	w.muteButton.Icon = theme.VolumeUpIcon()
	w.muteButton.SetToolTip("Mute (M)")

	w.repeatSel = widget.NewSelect([]string{"1x", "2x", "3x", "5x", "10x"}, w.onRepeatChanged)
	w.repeatSel.SetSelected("1x")

	w.seekSlider = widget.NewSlider(0, 1)
	w.seekSlider.Step = 1
	w.seekSlider.OnChangeEnded = w.onSeek

	w.timeLabel = widget.NewLabel("0:00 / 0:00")
	w.statusLabel = widget.NewLabel("No verse selected")
	w.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	controls := container.NewHBox(
		w.playButton,
		w.retryButton,
		w.muteButton,
		w.repeatSel,
		layout.NewSpacer(),
		w.timeLabel,
	)

	w.container = container.NewVBox(
		controls,
		w.seekSlider,
		w.statusLabel,
	)

	machine.OnChange(func(snap player.Snapshot) {
		fyne.Do(func() { w.update(snap) })
	})

	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer implements fyne.Widget
func (w *PlayerWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.container)
}

// PlayPause toggles playback from a keyboard shortcut.
func (w *PlayerWidget) PlayPause() {
	if !w.playButton.Disabled() {
		w.onPlayPause()
	}
}

// ToggleMute toggles mute from a keyboard shortcut.
func (w *PlayerWidget) ToggleMute() {
	w.onMute()
}

func (w *PlayerWidget) onPlayPause() {
	snap := w.machine.Snapshot()
	if snap.IsPlaying {
		w.machine.Pause()
	} else {
		w.machine.Play()
	}
}

func (w *PlayerWidget) onRetry() {
	go w.machine.Retry()
}

func (w *PlayerWidget) onMute() {
	w.machine.ToggleMute()
}

func (w *PlayerWidget) onRepeatChanged(selected string) {
	var n int
	fmt.Sscanf(selected, "%dx", &n)
	w.machine.SetRepeat(n)
}

func (w *PlayerWidget) onSeek(value float64) {
	if w.seeking {
		return
	}
	w.machine.SetTime(time.Duration(value) * time.Second)
}

func (w *PlayerWidget) update(snap player.Snapshot) {
	if snap.Surah == 0 {
		w.playButton.Disable()
		w.statusLabel.SetText("No verse selected")
		return
	}
	w.playButton.Enable()

	if snap.IsPlaying {
		w.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		w.playButton.SetIcon(theme.MediaPlayIcon())
	}

	if snap.State == player.StateError {
		w.retryButton.Show()
	} else {
		w.retryButton.Hide()
	}

	if snap.IsMuted {
		w.muteButton.SetIcon(theme.VolumeMuteIcon())
	} else {
		w.muteButton.SetIcon(theme.VolumeUpIcon())
	}

	if snap.Duration > 0 {
		w.seekSlider.Max = snap.Duration.Seconds()
		w.seeking = true
		w.seekSlider.SetValue(snap.CurrentTime.Seconds())
		w.seeking = false
	}
	w.timeLabel.SetText(fmt.Sprintf("%s / %s", formatTime(snap.CurrentTime), formatTime(snap.Duration)))

	w.statusLabel.SetText(playerStatusText(snap))
}

func playerStatusText(snap player.Snapshot) string {
	ref := fmt.Sprintf("%d:%d", snap.Surah, snap.Verse)
	switch snap.State {
	case player.StateLoading:
		if snap.Notice != "" {
			return fmt.Sprintf("Loading %s (%s)...", ref, snap.Notice)
		}
		return fmt.Sprintf("Loading %s...", ref)
	case player.StatePlaying:
		if snap.RepeatTarget > 1 {
			return fmt.Sprintf("Playing %s (%d/%d)", ref, snap.RepeatsCompleted+1, snap.RepeatTarget)
		}
		return fmt.Sprintf("Playing %s", ref)
	case player.StatePaused:
		return fmt.Sprintf("Paused %s", ref)
	case player.StateEnded:
		return fmt.Sprintf("Finished %s", ref)
	case player.StateError:
		return fmt.Sprintf("Error on %s: %s", ref, snap.Notice)
	default:
		return fmt.Sprintf("Ready %s", ref)
	}
}

func formatTime(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
