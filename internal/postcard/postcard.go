// Package postcard renders a verse into a fixed-layout shareable PNG.
package postcard

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/software"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Card holds the content placed on the postcard.
type Card struct {
	SurahName     string
	SurahNumber   int
	VerseNumber   int
	ArabicText    string
	Translation   string
	TranslationBy string
}

// Reference returns the chapter:verse citation line.
func (c Card) Reference() string {
	return fmt.Sprintf("%s %d:%d", c.SurahName, c.SurahNumber, c.VerseNumber)
}

const (
	cardWidth  = 900
	cardHeight = 600
)

var (
	cardBackground = color.NRGBA{R: 0x1b, G: 0x26, B: 0x35, A: 0xff}
	cardAccent     = color.NRGBA{R: 0xd4, G: 0xaf, B: 0x6a, A: 0xff}
	cardInk        = color.NRGBA{R: 0xf2, G: 0xef, B: 0xe6, A: 0xff}
)

// Renderer rasterizes cards off-screen. It needs no window and is safe
// to use from any goroutine.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Export renders the card and writes it as PNG.
func (r *Renderer) Export(w io.Writer, card Card) error {
	if card.ArabicText == "" {
		return fmt.Errorf("no verse selected")
	}

	img := software.Render(r.compose(card), theme.DefaultTheme())
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode postcard: %w", err)
	}
	return nil
}

// SaveTo renders and writes the card to the given path.
func (r *Renderer) SaveTo(path string, card Card) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create postcard file: %w", err)
	}
	defer f.Close()

	if err := r.Export(f, card); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// SaveDefault writes the card into dir under a timestamped name and
// returns the path written.
func (r *Renderer) SaveDefault(dir string, card Card) (string, error) {
	name := fmt.Sprintf("postcard-%d_%d-%s.png",
		card.SurahNumber, card.VerseNumber, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := r.SaveTo(path, card); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) compose(card Card) fyne.CanvasObject {
	bg := canvas.NewRectangle(cardBackground)
	bg.SetMinSize(fyne.NewSize(cardWidth, cardHeight))

	header := canvas.NewText(card.SurahName, cardAccent)
	header.TextSize = 26
	header.Alignment = fyne.TextAlignCenter
	header.TextStyle = fyne.TextStyle{Bold: true}

	rule := canvas.NewRectangle(cardAccent)
	rule.SetMinSize(fyne.NewSize(120, 2))

	arabic := widget.NewLabel(card.ArabicText)
	arabic.Wrapping = fyne.TextWrapWord
	arabic.Alignment = fyne.TextAlignCenter
	arabic.TextStyle = fyne.TextStyle{Bold: true}

	translation := widget.NewLabel(card.Translation)
	translation.Wrapping = fyne.TextWrapWord
	translation.Alignment = fyne.TextAlignCenter
	translation.TextStyle = fyne.TextStyle{Italic: true}

	reference := canvas.NewText(card.Reference(), cardAccent)
	reference.TextSize = 16
	reference.Alignment = fyne.TextAlignCenter

	footer := canvas.NewText(card.TranslationBy, cardInk)
	footer.TextSize = 11
	footer.Alignment = fyne.TextAlignCenter

	body := container.NewVBox(
		header,
		container.NewCenter(rule),
		arabic,
		translation,
		reference,
		footer,
	)

	return container.NewStack(bg, container.NewPadded(container.NewCenter(body)))
}
