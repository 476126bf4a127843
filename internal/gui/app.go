package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"mushaf/internal"
	"mushaf/internal/player"
	"mushaf/internal/postcard"
	"mushaf/internal/quran"
	"mushaf/internal/reader"
	"mushaf/internal/recorder"
	"mushaf/internal/store"
	"mushaf/internal/study"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	surahList      *widget.List
	verseContainer *fyne.Container
	verseScroll    *container.Scroll
	contentArea    *fyne.Container
	languageSelect *widget.Select
	gotoSurahEntry *RefEntry
	gotoVerseEntry *RefEntry
	searchEntry    *RefEntry
	statusLabel    *widget.Label
	noticeLabel    *widget.Label
	noticeBar      *fyne.Container
	loadingBar     *widget.ProgressBarInfinite

	playerBar   *PlayerWidget
	recorderBar *RecorderWidget
	diagnostics *DiagnosticsViewer

	// Domain components
	client   *quran.Client
	vm       *reader.ViewModel
	searcher *quran.Searcher
	machine  *player.Player
	rec      *recorder.Recorder
	db       *store.Store
	notes    *study.Fetcher
	renderer *postcard.Renderer

	// State management
	language      quran.Language
	searchResults *quran.SearchResults
	searchPage    int
	autoPlay      bool
	selectedAyah  int
	downloadsDir  string

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	APIBase        string
	Language       string
	PageSize       int
	Reciter        string
	Bitrate        int
	AudioURLFormat string
	CDNBase        string
	Repeat         int
	AutoPlay       bool
	OpenAIKey      string
	GotoRef        string
	StorageDir     string
	DownloadsDir   string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		APIBase:        quran.DefaultBaseURL,
		Language:       string(quran.LanguageEnglish),
		PageSize:       quran.DefaultPageSize,
		Reciter:        player.DefaultReciter,
		Bitrate:        player.DefaultBitrate,
		AudioURLFormat: string(player.URLFormatUnderscore),
		CDNBase:        player.DefaultCDNBase,
		Repeat:         1,
		AutoPlay:       true,
		StorageDir:     internal.StateDir(),
		DownloadsDir:   internal.DownloadsDir(),
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.APIBase == "" {
			config.APIBase = defaults.APIBase
		}
		if config.Language == "" {
			config.Language = defaults.Language
		}
		if config.PageSize <= 0 {
			config.PageSize = defaults.PageSize
		}
		if config.Reciter == "" {
			config.Reciter = defaults.Reciter
		}
		if config.Bitrate <= 0 {
			config.Bitrate = defaults.Bitrate
		}
		if config.AudioURLFormat == "" {
			config.AudioURLFormat = defaults.AudioURLFormat
		}
		if config.CDNBase == "" {
			config.CDNBase = defaults.CDNBase
		}
		if config.Repeat <= 0 {
			config.Repeat = defaults.Repeat
		}
		if config.StorageDir == "" {
			config.StorageDir = defaults.StorageDir
		}
		if config.DownloadsDir == "" {
			config.DownloadsDir = defaults.DownloadsDir
		}
	}

	stateDir := config.StorageDir
	os.MkdirAll(stateDir, 0755)

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("io.mushaf.reader")
	myApp.SetIcon(GetAppIcon())

	client := quran.NewClient(config.APIBase)

	source := player.DefaultSourceConfig()
	source.CDNBase = config.CDNBase
	source.Reciter = config.Reciter
	source.Bitrate = config.Bitrate
	source.Primary = player.URLFormat(config.AudioURLFormat)

	a := &Application{
		app:          myApp,
		client:       client,
		vm:           reader.New(client),
		searcher:     quran.NewSearcher(client, config.PageSize),
		machine:      player.New(player.NewExecBackend(filepath.Join(stateDir, "audio_cache"), config.Bitrate), source),
		rec:          recorder.New(recorder.NewExecCapture(), recorder.NewExecClipPlayer()),
		db:           store.OpenDefault(stateDir),
		notes:        study.NewFetcher(config.OpenAIKey, filepath.Join(stateDir, "study_cache")),
		renderer:     postcard.NewRenderer(),
		language:     quran.Language(config.Language),
		autoPlay:     config.AutoPlay,
		downloadsDir: config.DownloadsDir,
		ctx:          ctx,
		cancel:       cancel,
	}
	a.machine.SetRepeat(config.Repeat)

	a.setupUI()

	a.vm.OnChange(func(snap reader.Snapshot) {
		fyne.Do(func() { a.onReaderChange(snap) })
	})

	go func() {
		a.vm.LoadSurahs(a.ctx)
		if config.GotoRef != "" {
			surahRef, verseRef, ok := strings.Cut(config.GotoRef, ":")
			if ok {
				a.vm.GoToVerse(a.ctx, surahRef, verseRef)
			}
		}
	}()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Mushaf v%s - Quran Reader", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1100, 750))

	// Surah index on the left
	a.surahList = widget.NewList(
		func() int { return len(a.vm.Snapshot().Surahs) },
		func() fyne.CanvasObject {
			return widget.NewLabel("114. Surah Name Placeholder")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			surahs := a.vm.Snapshot().Surahs
			if i >= len(surahs) {
				return
			}
			s := surahs[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%d. %s (%s)", s.Number, s.EnglishName, s.Name))
		},
	)
	a.surahList.OnSelected = func(i widget.ListItemID) {
		surahs := a.vm.Snapshot().Surahs
		if i >= len(surahs) {
			return
		}
		go a.vm.SelectSurah(a.ctx, surahs[i].Number)
	}

	// Verse pane in the center, rebuilt per surah
	a.verseContainer = container.NewVBox()
	a.verseScroll = container.NewScroll(a.verseContainer)
	a.contentArea = container.NewStack(a.verseScroll)

	// Toolbar
	a.languageSelect = widget.NewSelect([]string{"English", "French"}, a.onLanguageChanged)
	if a.language == quran.LanguageFrench {
		a.languageSelect.SetSelected("French")
	} else {
		a.languageSelect.SetSelected("English")
	}

	a.gotoSurahEntry = NewRefEntry()
	a.gotoSurahEntry.SetPlaceHolder("Surah")
	a.gotoVerseEntry = NewRefEntry()
	a.gotoVerseEntry.SetPlaceHolder("Verse")
	a.gotoVerseEntry.OnSubmitted = func(string) { a.onGoToVerse() }
	gotoButton := ttwidget.NewButtonWithIcon("", theme.MailForwardIcon(), a.onGoToVerse)
	gotoButton.SetToolTip("Go to verse")

	a.searchEntry = NewRefEntry()
	a.searchEntry.SetPlaceHolder("Search the Quran...")
	a.searchEntry.OnSubmitted = func(string) { a.onSearch() }
	a.searchEntry.SetOnEscape(func() {
		a.searchEntry.SetText("")
		a.window.Canvas().Unfocus()
	})
	searchButton := ttwidget.NewButtonWithIcon("", theme.SearchIcon(), a.onSearch)
	searchButton.SetToolTip("Search all editions")

	bookmarksButton := ttwidget.NewButtonWithIcon("", theme.ContentAddIcon(), a.onShowBookmarks)
	bookmarksButton.SetToolTip("Show bookmarks")

	readerButton := ttwidget.NewButtonWithIcon("", theme.HomeIcon(), a.showReading)
	readerButton.SetToolTip("Back to reading")

	helpButton := ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHelp)
	helpButton.SetToolTip("Keyboard shortcuts")

	a.diagnostics = NewDiagnosticsViewer()
	diagButton := ttwidget.NewButtonWithIcon("", theme.WarningIcon(), a.onShowDiagnostics)
	diagButton.SetToolTip("Diagnostics")

	toolbar := container.NewHBox(
		readerButton,
		bookmarksButton,
		widget.NewSeparator(),
		a.languageSelect,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, a.gotoSurahEntry, a.gotoVerseEntry),
		gotoButton,
		layout.NewSpacer(),
		diagButton,
		helpButton,
	)

	searchRow := container.NewBorder(nil, nil, nil, searchButton, a.searchEntry)

	// Status and notice bar at the bottom
	a.statusLabel = widget.NewLabel("Ready")
	a.loadingBar = widget.NewProgressBarInfinite()
	a.loadingBar.Hide()

	a.noticeLabel = widget.NewLabel("")
	a.noticeLabel.TextStyle = fyne.TextStyle{Italic: true}
	dismissButton := ttwidget.NewButtonWithIcon("", theme.CancelIcon(), a.onDismissNotice)
	dismissButton.SetToolTip("Dismiss")
	a.noticeBar = container.NewBorder(nil, nil, nil, dismissButton, a.noticeLabel)
	a.noticeBar.Hide()

	a.playerBar = NewPlayerWidget(a.machine)
	a.recorderBar = NewRecorderWidget(a.rec, a.downloadsDir, a.showError, a.setStatus)

	bottom := container.NewVBox(
		widget.NewSeparator(),
		a.playerBar,
		a.recorderBar,
		a.noticeBar,
		container.NewBorder(nil, nil, nil, a.loadingBar, a.statusLabel),
	)

	split := container.NewHSplit(a.surahList, a.contentArea)
	split.SetOffset(0.28)

	content := container.NewBorder(
		container.NewVBox(toolbar, searchRow, widget.NewSeparator()),
		bottom,
		nil, nil,
		split,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.window.SetOnClosed(func() {
		a.machine.SetSelection(0, 0)
		a.cancel()
		a.db.Close()
	})

	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.checkVersionChange()
	a.window.ShowAndRun()
}

// checkVersionChange surfaces a one-time notice when the app has been
// updated since the last run.
func (a *Application) checkVersionChange() {
	last := a.db.LastSeenVersion()
	if last != "" && last != internal.Version {
		dialog.ShowInformation("Updated",
			fmt.Sprintf("Mushaf was updated from v%s to v%s.", last, internal.Version),
			a.window)
	}
	a.db.SetLastSeenVersion(internal.Version)
}

func (a *Application) onReaderChange(snap reader.Snapshot) {
	a.surahList.Refresh()

	if snap.Loading {
		a.loadingBar.Show()
		a.setStatus("Loading...")
		return
	}
	a.loadingBar.Hide()

	if snap.Notice != "" {
		a.showNotice(snap.Notice)
	}

	if snap.Selected != nil {
		a.setStatus(fmt.Sprintf("%s - %d verses", snap.Selected.EnglishName, len(snap.Verses)))
		a.rebuildVerseList(snap)
		a.showReading()
		if snap.HighlightAyah != 0 {
			a.scrollToAyah(snap, snap.HighlightAyah)
		}
	}
}

// rebuildVerseList renders the loaded surah into the verse pane.
func (a *Application) rebuildVerseList(snap reader.Snapshot) {
	a.verseContainer.RemoveAll()

	for _, ayah := range snap.Verses {
		a.verseContainer.Add(a.makeVerseRow(snap, ayah))
		a.verseContainer.Add(widget.NewSeparator())
	}
	a.verseContainer.Refresh()
	a.verseScroll.ScrollToTop()
}

func (a *Application) makeVerseRow(snap reader.Snapshot, ayah quran.Ayah) fyne.CanvasObject {
	surahName := ""
	if snap.Selected != nil {
		surahName = snap.Selected.EnglishName
	}

	ref := widget.NewLabel(fmt.Sprintf("%d:%d", ayah.SurahNumber, ayah.NumberInSurah))
	ref.TextStyle = fyne.TextStyle{Bold: true}
	if ayah.Number == snap.HighlightAyah {
		ref.Importance = widget.HighImportance
	}

	arabic := widget.NewLabel(ayah.Text)
	arabic.Wrapping = fyne.TextWrapWord
	arabic.Alignment = fyne.TextAlignTrailing
	arabic.TextStyle = fyne.TextStyle{Bold: true}

	translation := widget.NewLabel(a.vm.TranslationFor(a.language, ayah.Number))
	translation.Wrapping = fyne.TextWrapWord

	playButton := ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		a.onSelectVerse(ayah)
	})
	playButton.SetToolTip("Play this verse")

	bookmarkButton := ttwidget.NewButtonWithIcon("", bookmarkIcon(a.db.IsBookmarked(ayah.Number)), nil)
	bookmarkButton.OnTapped = func() {
		a.onToggleBookmark(ayah, surahName)
		bookmarkButton.SetIcon(bookmarkIcon(a.db.IsBookmarked(ayah.Number)))
	}
	bookmarkButton.SetToolTip("Bookmark this verse")

	noteButton := ttwidget.NewButtonWithIcon("", noteIcon(a.db.Note(ayah.SurahNumber, ayah.NumberInSurah) != ""), func() {
		a.onEditNote(ayah)
	})
	noteButton.SetToolTip("Verse note")

	postcardButton := ttwidget.NewButtonWithIcon("", theme.FileImageIcon(), func() {
		a.onExportPostcard(ayah, surahName)
	})
	postcardButton.SetToolTip("Export as postcard")

	actions := container.NewHBox(ref, layout.NewSpacer(), playButton, bookmarkButton, noteButton)
	if a.notes.Enabled() {
		studyButton := ttwidget.NewButtonWithIcon("", theme.InfoIcon(), func() {
			a.onShowStudyNotes(ayah)
		})
		studyButton.SetToolTip("Study notes")
		actions.Add(studyButton)
	}
	actions.Add(postcardButton)

	return container.NewVBox(actions, arabic, translation)
}

// scrollToAyah approximates the target verse's position in the pane.
func (a *Application) scrollToAyah(snap reader.Snapshot, ayahNumber int) {
	for i, ayah := range snap.Verses {
		if ayah.Number == ayahNumber {
			total := a.verseScroll.Content.MinSize().Height
			fraction := float32(i) / float32(len(snap.Verses))
			a.verseScroll.Offset = fyne.NewPos(0, total*fraction)
			a.verseScroll.Refresh()
			a.setStatus(fmt.Sprintf("Jumped to %d:%d", ayah.SurahNumber, ayah.NumberInSurah))
			return
		}
	}
}

func (a *Application) onSelectVerse(ayah quran.Ayah) {
	a.mu.Lock()
	a.selectedAyah = ayah.Number
	a.mu.Unlock()

	a.machine.SetSelection(ayah.SurahNumber, ayah.NumberInSurah)
	if a.autoPlay {
		go a.machine.Play()
	}
}

func (a *Application) onLanguageChanged(selected string) {
	if selected == "French" {
		a.language = quran.LanguageFrench
	} else {
		a.language = quran.LanguageEnglish
	}
	// Both translations are already loaded; re-render with the other.
	snap := a.vm.Snapshot()
	if snap.Selected != nil {
		a.rebuildVerseList(snap)
	}
}

func (a *Application) onGoToVerse() {
	surahRef := strings.TrimSpace(a.gotoSurahEntry.Text)
	verseRef := strings.TrimSpace(a.gotoVerseEntry.Text)

	go func() {
		if err := a.vm.GoToVerse(a.ctx, surahRef, verseRef); err != nil {
			fyne.Do(func() {
				var verr *quran.ValidationError
				if errors.As(err, &verr) {
					a.showNotice(verr.Message)
				} else {
					a.showError(err)
				}
			})
		}
	}()
}

func (a *Application) onToggleBookmark(ayah quran.Ayah, surahName string) {
	if a.db.IsBookmarked(ayah.Number) {
		a.db.Remove(ayah.Number)
		a.setStatus(fmt.Sprintf("Bookmark removed for %d:%d", ayah.SurahNumber, ayah.NumberInSurah))
	} else {
		a.db.Add(ayah, surahName)
		a.setStatus(fmt.Sprintf("Bookmarked %d:%d", ayah.SurahNumber, ayah.NumberInSurah))
	}
}

func (a *Application) onEditNote(ayah quran.Ayah) {
	entry := NewNoteEntry()
	entry.SetText(a.db.Note(ayah.SurahNumber, ayah.NumberInSurah))
	entry.SetPlaceHolder("Your note for this verse...")

	scroll := container.NewScroll(entry)
	scroll.SetMinSize(fyne.NewSize(400, 200))

	d := dialog.NewCustomConfirm(
		fmt.Sprintf("Note for %d:%d", ayah.SurahNumber, ayah.NumberInSurah),
		"Save", "Cancel",
		scroll,
		func(save bool) {
			if save {
				a.db.SaveNote(ayah.SurahNumber, ayah.NumberInSurah, strings.TrimSpace(entry.Text))
				a.setStatus(fmt.Sprintf("Note saved for %d:%d", ayah.SurahNumber, ayah.NumberInSurah))
			}
		},
		a.window)
	entry.SetOnEscape(d.Hide)
	d.Show()
}

func (a *Application) onExportPostcard(ayah quran.Ayah, surahName string) {
	card := postcard.Card{
		SurahName:     surahName,
		SurahNumber:   ayah.SurahNumber,
		VerseNumber:   ayah.NumberInSurah,
		ArabicText:    ayah.Text,
		Translation:   a.vm.TranslationFor(a.language, ayah.Number),
		TranslationBy: translationCredit(a.language),
	}

	go func() {
		path, err := a.renderer.SaveDefault(a.downloadsDir, card)
		fyne.Do(func() {
			if err != nil {
				a.showError(fmt.Errorf("Postcard export failed: %w", err))
				return
			}
			a.setStatus(fmt.Sprintf("Postcard saved to %s", path))
		})
	}()
}

func (a *Application) onShowStudyNotes(ayah quran.Ayah) {
	a.setStatus(fmt.Sprintf("Fetching study notes for %d:%d...", ayah.SurahNumber, ayah.NumberInSurah))

	go func() {
		notes, err := a.notes.Notes(ayah.SurahNumber, ayah.NumberInSurah,
			ayah.Text, a.vm.TranslationFor(a.language, ayah.Number))
		fyne.Do(func() {
			if err != nil {
				a.showNotice("Study notes are unavailable right now.")
				a.setStatus("Ready")
				return
			}
			label := widget.NewLabel(notes)
			label.Wrapping = fyne.TextWrapWord
			scroll := container.NewScroll(label)
			scroll.SetMinSize(fyne.NewSize(450, 300))
			dialog.ShowCustom(
				fmt.Sprintf("Study notes for %d:%d", ayah.SurahNumber, ayah.NumberInSurah),
				"Close", scroll, a.window)
			a.setStatus("Ready")
		})
	}()
}

func (a *Application) onShowBookmarks() {
	bookmarks := a.db.List()

	list := container.NewVBox()
	if len(bookmarks) == 0 {
		list.Add(widget.NewLabel("No bookmarks yet. Tap the bookmark button on any verse."))
	}
	for _, b := range bookmarks {
		b := b
		ref := widget.NewLabel(fmt.Sprintf("%s %d:%d", b.SurahName, b.SurahNumber, b.NumberInSurah))
		ref.TextStyle = fyne.TextStyle{Bold: true}

		text := widget.NewLabel(b.Text)
		text.Wrapping = fyne.TextWrapWord

		openButton := ttwidget.NewButtonWithIcon("", theme.MailForwardIcon(), func() {
			go a.vm.GoToVerse(a.ctx,
				fmt.Sprintf("%d", b.SurahNumber), fmt.Sprintf("%d", b.NumberInSurah))
		})
		openButton.SetToolTip("Open this verse")

		removeButton := ttwidget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			a.db.Remove(b.AyahNumber)
			a.onShowBookmarks()
		})
		removeButton.SetToolTip("Remove bookmark")

		list.Add(container.NewVBox(
			container.NewHBox(ref, layout.NewSpacer(), openButton, removeButton),
			text,
			widget.NewSeparator(),
		))
	}

	header := widget.NewLabel(fmt.Sprintf("Bookmarks (%d)", len(bookmarks)))
	header.TextStyle = fyne.TextStyle{Bold: true}
	a.swapContent(container.NewBorder(header, nil, nil, nil, container.NewScroll(list)))
}

func (a *Application) onSearch() {
	query := strings.TrimSpace(a.searchEntry.Text)
	if query == "" {
		return
	}

	a.setStatus(fmt.Sprintf("Searching for %q...", query))
	a.loadingBar.Show()

	go func() {
		results, err := a.searcher.Search(a.ctx, query)
		fyne.Do(func() {
			a.loadingBar.Hide()
			if err != nil {
				a.showNotice("Search failed. Check your connection and try again.")
				a.setStatus("Ready")
				return
			}
			a.mu.Lock()
			a.searchResults = results
			a.searchPage = 1
			a.mu.Unlock()
			a.showSearchResults()
		})
	}()
}

func (a *Application) showSearchResults() {
	a.mu.Lock()
	results := a.searchResults
	page := a.searchPage
	a.mu.Unlock()
	if results == nil {
		return
	}

	total := results.TotalPages()
	a.setStatus(fmt.Sprintf("%d results for %q", len(results.Merged), results.Query))

	list := container.NewVBox()
	if len(results.Merged) == 0 {
		list.Add(widget.NewLabel("No verses matched your search."))
	}
	for _, match := range results.Page(page) {
		match := match
		ref := widget.NewLabel(fmt.Sprintf("%d:%d", match.SurahNumber, match.NumberInSurah))
		ref.TextStyle = fyne.TextStyle{Bold: true}

		arabic := widget.NewLabel(results.Texts[quran.LanguageArabic][match.Number])
		arabic.Wrapping = fyne.TextWrapWord
		arabic.Alignment = fyne.TextAlignTrailing

		translation := widget.NewLabel(results.Texts[a.language][match.Number])
		translation.Wrapping = fyne.TextWrapWord

		openButton := ttwidget.NewButtonWithIcon("", theme.MailForwardIcon(), func() {
			go a.vm.GoToVerse(a.ctx,
				fmt.Sprintf("%d", match.SurahNumber), fmt.Sprintf("%d", match.NumberInSurah))
		})
		openButton.SetToolTip("Open this verse")

		list.Add(container.NewVBox(
			container.NewHBox(ref, layout.NewSpacer(), openButton),
			arabic,
			translation,
			widget.NewSeparator(),
		))
	}

	pagination := container.NewHBox(layout.NewSpacer())
	if total > 1 {
		prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { a.turnSearchPage(page - 1) })
		if page <= 1 {
			prev.Disable()
		}
		pagination.Add(prev)

		for _, p := range quran.PageNumbers(page, total) {
			p := p
			b := widget.NewButton(fmt.Sprintf("%d", p), func() { a.turnSearchPage(p) })
			if p == page {
				b.Importance = widget.HighImportance
			}
			pagination.Add(b)
		}

		next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { a.turnSearchPage(page + 1) })
		if page >= total {
			next.Disable()
		}
		pagination.Add(next)
	}
	pagination.Add(layout.NewSpacer())

	header := widget.NewLabel(fmt.Sprintf("Search: %q (page %d of %d)", results.Query, page, max(total, 1)))
	header.TextStyle = fyne.TextStyle{Bold: true}

	a.swapContent(container.NewBorder(header, pagination, nil, nil, container.NewScroll(list)))
}

func (a *Application) turnSearchPage(page int) {
	a.mu.Lock()
	results := a.searchResults
	if results != nil && page >= 1 && page <= results.TotalPages() {
		a.searchPage = page
	}
	a.mu.Unlock()
	a.showSearchResults()
}

// showReading swaps back to the verse pane.
func (a *Application) showReading() {
	a.swapContent(a.verseScroll)
}

func (a *Application) swapContent(content fyne.CanvasObject) {
	a.contentArea.RemoveAll()
	a.contentArea.Add(content)
	a.contentArea.Refresh()
}

func (a *Application) onShowHelp() {
	help := `Keyboard shortcuts:

  Space   Play / pause recitation
  m       Mute / unmute
  r       Start / stop recording
  b       Show bookmarks
  /       Focus search

Tap a verse's play button to hear its recitation.
Search looks through the Arabic, English, and French editions at once.`

	dialog.ShowInformation("Help", help, a.window)
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeySpace {
			a.playerBar.PlayPause()
		}
	})
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 'm':
			a.playerBar.ToggleMute()
		case 'r':
			a.recorderBar.ToggleRecord()
		case 'b':
			a.onShowBookmarks()
		case '/':
			a.window.Canvas().Focus(a.searchEntry)
		}
	})
}

func (a *Application) setStatus(text string) {
	a.statusLabel.SetText(text)
}

func (a *Application) onShowDiagnostics() {
	dialog.ShowCustom("Diagnostics", "Close", a.diagnostics, a.window)
}

func (a *Application) showNotice(text string) {
	a.noticeLabel.SetText(text)
	a.noticeBar.Show()
	a.diagnostics.Add("%s", text)
}

func (a *Application) onDismissNotice() {
	a.vm.ClearNotice()
	a.noticeLabel.SetText("")
	a.noticeBar.Hide()
}

func (a *Application) showError(err error) {
	a.diagnostics.Add("error: %v", err)
	dialog.ShowError(err, a.window)
}

func bookmarkIcon(bookmarked bool) fyne.Resource {
	if bookmarked {
		return theme.ConfirmIcon()
	}
	return theme.ContentAddIcon()
}

func noteIcon(hasNote bool) fyne.Resource {
	if hasNote {
		return theme.DocumentIcon()
	}
	return theme.DocumentCreateIcon()
}

func translationCredit(lang quran.Language) string {
	if lang == quran.LanguageFrench {
		return "Traduction: Muhammad Hamidullah"
	}
	return "Translation: Saheeh International"
}
