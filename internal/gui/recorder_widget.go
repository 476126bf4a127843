package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"mushaf/internal/recorder"
)

// RecorderWidget is the practice-recording control bar.
type RecorderWidget struct {
	widget.BaseWidget

	container *fyne.Container

	recordButton *ttwidget.Button
	playButton   *ttwidget.Button
	saveButton   *ttwidget.Button
	statusLabel  *widget.Label

	rec      *recorder.Recorder
	saveDir  string
	onError  func(error)
	onStatus func(string)
}

// NewRecorderWidget creates the recording bar bound to the controller.
// Saved clips land in saveDir; errors and status lines are reported
// through the given callbacks.
func NewRecorderWidget(rec *recorder.Recorder, saveDir string, onError func(error), onStatus func(string)) *RecorderWidget {
	w := &RecorderWidget{rec: rec, saveDir: saveDir, onError: onError, onStatus: onStatus}

	w.recordButton = ttwidget.NewButton("", w.onRecord)
	w.recordButton.Icon = theme.MediaRecordIcon()
	w.recordButton.SetToolTip("Record your recitation (R)")

	w.playButton = ttwidget.NewButton("", w.onPlay)
	w.playButton.Icon = theme.MediaPlayIcon()
	w.playButton.SetToolTip("Play your recording")
	w.playButton.Disable()

	w.saveButton = ttwidget.NewButton("", w.onSave)
	w.saveButton.Icon = theme.DownloadIcon()
	w.saveButton.SetToolTip("Save recording to Downloads")
	w.saveButton.Disable()

	w.statusLabel = widget.NewLabel("Not recording")
	w.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	w.container = container.NewHBox(
		w.recordButton,
		w.playButton,
		w.saveButton,
		layout.NewSpacer(),
		w.statusLabel,
	)

	rec.OnChange(func(snap recorder.Snapshot) {
		fyne.Do(func() { w.update(snap) })
	})

	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer implements fyne.Widget
func (w *RecorderWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.container)
}

// ToggleRecord starts or stops recording from a keyboard shortcut.
func (w *RecorderWidget) ToggleRecord() {
	w.onRecord()
}

func (w *RecorderWidget) onRecord() {
	snap := w.rec.Snapshot()
	go func() {
		var err error
		if snap.IsRecording {
			err = w.rec.Stop()
		} else {
			err = w.rec.Start()
		}
		if err != nil {
			fyne.Do(func() { w.reportError(err) })
		}
	}()
}

func (w *RecorderWidget) onPlay() {
	snap := w.rec.Snapshot()
	if snap.IsPlayingBack {
		w.rec.StopPlayback()
		return
	}
	if err := w.rec.Play(); err != nil {
		w.reportError(err)
	}
}

func (w *RecorderWidget) onSave() {
	path, err := w.rec.SaveDefault(w.saveDir)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.onStatus != nil {
		w.onStatus(fmt.Sprintf("Recording saved to %s", path))
	}
}

func (w *RecorderWidget) reportError(err error) {
	switch {
	case errors.Is(err, recorder.ErrPermission):
		w.statusLabel.SetText("Microphone access denied")
	case errors.Is(err, recorder.ErrNoAudioCaptured):
		w.statusLabel.SetText("No audio captured")
	case errors.Is(err, recorder.ErrNoRecording):
		w.statusLabel.SetText("Nothing recorded yet")
	default:
		if w.onError != nil {
			w.onError(err)
		}
	}
}

func (w *RecorderWidget) update(snap recorder.Snapshot) {
	switch snap.State {
	case recorder.StateRequestingPermission:
		w.recordButton.Disable()
		w.statusLabel.SetText("Requesting microphone access...")
	case recorder.StateRecording:
		w.recordButton.Enable()
		w.recordButton.SetIcon(theme.MediaStopIcon())
		w.statusLabel.SetText("Recording...")
	case recorder.StateStopped:
		w.recordButton.Enable()
		w.recordButton.SetIcon(theme.MediaRecordIcon())
		if snap.IsPlayingBack {
			w.statusLabel.SetText("Playing your recording")
		} else {
			w.statusLabel.SetText("Recording ready")
		}
	default:
		w.recordButton.Enable()
		w.recordButton.SetIcon(theme.MediaRecordIcon())
		w.statusLabel.SetText("Not recording")
	}

	if snap.HasClip {
		w.playButton.Enable()
		w.saveButton.Enable()
	} else {
		w.playButton.Disable()
		w.saveButton.Disable()
	}

	if snap.IsPlayingBack {
		w.playButton.SetIcon(theme.MediaStopIcon())
	} else {
		w.playButton.SetIcon(theme.MediaPlayIcon())
	}
}
