package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// escapeEntry adds an Escape callback to widget.Entry. Other keys
// behave normally.
type escapeEntry struct {
	widget.Entry
	onEscape func()
}

func (e *escapeEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *escapeEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// NoteEntry is the multi-line editor used in the verse note dialog.
// Escape triggers the dialog's close callback; the entry keeps its
// text, so reopening the dialog restores the draft.
type NoteEntry struct {
	escapeEntry
}

// NewNoteEntry creates a new note editor entry
func NewNoteEntry() *NoteEntry {
	entry := &NoteEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// RefEntry is a single-line entry for chapter/verse references and
// search text. Escape unfocuses it so global shortcuts work again.
type RefEntry struct {
	escapeEntry
}

// NewRefEntry creates a new reference entry
func NewRefEntry() *RefEntry {
	entry := &RefEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}
