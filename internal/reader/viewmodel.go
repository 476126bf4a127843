// Package reader holds the browsing state behind the main window: the
// surah list, the currently loaded surah with both translations, and
// the go-to-verse navigation rules.
package reader

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"mushaf/internal/quran"
)

// ContentAPI is the slice of the content client the view-model needs.
type ContentAPI interface {
	Surahs(ctx context.Context) ([]quran.Surah, error)
	AyahsBySurah(ctx context.Context, surah int) ([]quran.Ayah, error)
	TranslationBySurah(ctx context.Context, surah int, lang quran.Language) ([]quran.Translation, error)
}

// Snapshot is the immutable view of the browsing state handed to the
// change callback.
type Snapshot struct {
	Surahs        []quran.Surah
	Selected      *quran.Surah
	Verses        []quran.Ayah
	Loading       bool
	Notice        string
	HighlightAyah int
}

// ViewModel coordinates surah selection and verse loading. A selection
// started while another is in flight wins: the older fetch's results
// are discarded when they arrive.
type ViewModel struct {
	api ContentAPI

	mu           sync.Mutex
	surahs       []quran.Surah
	selected     *quran.Surah
	verses       []quran.Ayah
	translations map[quran.Language]map[int]string
	loading      bool
	notice       string
	highlight    int
	generation   int

	onChange func(Snapshot)
}

func New(api ContentAPI) *ViewModel {
	return &ViewModel{
		api:          api,
		translations: make(map[quran.Language]map[int]string),
	}
}

// OnChange registers the callback invoked after every state change.
func (vm *ViewModel) OnChange(fn func(Snapshot)) {
	vm.mu.Lock()
	vm.onChange = fn
	vm.mu.Unlock()
}

// Snapshot returns the current browsing state.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

func (vm *ViewModel) snapshotLocked() Snapshot {
	return Snapshot{
		Surahs:        vm.surahs,
		Selected:      vm.selected,
		Verses:        vm.verses,
		Loading:       vm.loading,
		Notice:        vm.notice,
		HighlightAyah: vm.highlight,
	}
}

func (vm *ViewModel) notify() {
	vm.mu.Lock()
	fn := vm.onChange
	snap := vm.snapshotLocked()
	vm.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// LoadSurahs fetches the chapter index.
func (vm *ViewModel) LoadSurahs(ctx context.Context) error {
	surahs, err := vm.api.Surahs(ctx)
	if err != nil {
		vm.mu.Lock()
		vm.notice = "Unable to load the chapter list. Check your connection."
		vm.mu.Unlock()
		vm.notify()
		return err
	}

	vm.mu.Lock()
	vm.surahs = surahs
	vm.mu.Unlock()
	vm.notify()
	return nil
}

// SelectSurah loads the verses and both translations for a surah in
// one combined operation. On any failure the previous content stays
// and a notice is surfaced.
func (vm *ViewModel) SelectSurah(ctx context.Context, number int) error {
	vm.mu.Lock()
	surah := vm.findSurahLocked(number)
	if surah == nil {
		vm.mu.Unlock()
		return &quran.ValidationError{Field: "surah", Message: "unknown chapter"}
	}
	vm.generation++
	gen := vm.generation
	vm.loading = true
	vm.notice = ""
	vm.highlight = 0
	vm.mu.Unlock()
	vm.notify()

	var (
		verses  []quran.Ayah
		english []quran.Translation
		french  []quran.Translation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		verses, err = vm.api.AyahsBySurah(gctx, number)
		return err
	})
	g.Go(func() error {
		var err error
		english, err = vm.api.TranslationBySurah(gctx, number, quran.LanguageEnglish)
		return err
	})
	g.Go(func() error {
		var err error
		french, err = vm.api.TranslationBySurah(gctx, number, quran.LanguageFrench)
		return err
	})
	err := g.Wait()

	vm.mu.Lock()
	if gen != vm.generation {
		// A newer selection superseded this one.
		vm.mu.Unlock()
		return nil
	}
	vm.loading = false
	if err != nil {
		vm.notice = "Unable to load this chapter. Check your connection."
		vm.mu.Unlock()
		vm.notify()
		return err
	}
	vm.selected = surah
	vm.verses = verses
	vm.translations = map[quran.Language]map[int]string{
		quran.LanguageEnglish: indexTranslations(english),
		quran.LanguageFrench:  indexTranslations(french),
	}
	vm.mu.Unlock()
	vm.notify()
	return nil
}

// GoToVerse validates a textual surah/verse reference, switches to the
// surah, and marks the target verse for highlighting. Validation
// happens before any fetch.
func (vm *ViewModel) GoToVerse(ctx context.Context, surahRef, verseRef string) error {
	surahNum, err := strconv.Atoi(surahRef)
	if err != nil {
		return &quran.ValidationError{Field: "surah", Message: "chapter must be a number"}
	}
	if surahNum < 1 || surahNum > quran.SurahCount {
		return &quran.ValidationError{Field: "surah", Message: "chapter must be between 1 and 114"}
	}
	verseNum, err := strconv.Atoi(verseRef)
	if err != nil || verseNum < 1 {
		return &quran.ValidationError{Field: "verse", Message: "verse must be a positive number"}
	}

	vm.mu.Lock()
	surah := vm.findSurahLocked(surahNum)
	vm.mu.Unlock()
	if surah == nil {
		return &quran.ValidationError{Field: "surah", Message: "unknown chapter"}
	}

	if err := vm.SelectSurah(ctx, surahNum); err != nil {
		return err
	}

	vm.mu.Lock()
	found := false
	for _, a := range vm.verses {
		if a.NumberInSurah == verseNum {
			vm.highlight = a.Number
			found = true
			break
		}
	}
	if !found {
		vm.notice = "Verse not found in this chapter."
	}
	vm.mu.Unlock()
	vm.notify()

	if !found {
		return &quran.ValidationError{Field: "verse", Message: "verse not found"}
	}
	return nil
}

// TranslationFor returns the loaded translation text for a verse by
// its global number, or "" when none is loaded.
func (vm *ViewModel) TranslationFor(lang quran.Language, ayahNumber int) string {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	texts := vm.translations[lang]
	if texts == nil {
		return ""
	}
	return texts[ayahNumber]
}

// ClearNotice dismisses the current notice.
func (vm *ViewModel) ClearNotice() {
	vm.mu.Lock()
	vm.notice = ""
	vm.mu.Unlock()
	vm.notify()
}

func (vm *ViewModel) findSurahLocked(number int) *quran.Surah {
	for i := range vm.surahs {
		if vm.surahs[i].Number == number {
			return &vm.surahs[i]
		}
	}
	return nil
}

func indexTranslations(translations []quran.Translation) map[int]string {
	texts := make(map[int]string, len(translations))
	for _, t := range translations {
		texts[t.AyahNumber] = t.Text
	}
	return texts
}
