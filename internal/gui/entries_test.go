package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestEscapeInvokesCallback(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	entry := NewRefEntry()
	called := false
	entry.SetOnEscape(func() { called = true })

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if !called {
		t.Error("escape callback not invoked")
	}
}

func TestEscapeWithoutCallbackIsHarmless(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	entry := NewRefEntry()
	entry.SetText("2")
	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if entry.Text != "2" {
		t.Errorf("Text = %q, want %q", entry.Text, "2")
	}
}

func TestNoteEntryKeepsDraftOnEscape(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	entry := NewNoteEntry()
	if !entry.MultiLine {
		t.Error("NoteEntry should be multi-line")
	}

	entry.SetText("draft note")
	closed := false
	entry.SetOnEscape(func() { closed = true })

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	if !closed {
		t.Error("escape callback not invoked")
	}
	if entry.Text != "draft note" {
		t.Errorf("Text = %q, want the draft preserved", entry.Text)
	}
}
