package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"mushaf/internal"
	"mushaf/internal/cli"
	"mushaf/internal/gui"
	"mushaf/internal/quran"
	"mushaf/internal/store"
)

// Processor handles command dispatch after flag parsing
type Processor struct {
	flags    *cli.Flags
	client   *quran.Client
	searcher *quran.Searcher
	out      io.Writer
}

// NewProcessor creates a new command processor
func NewProcessor(flags *cli.Flags) *Processor {
	baseURL := flags.APIBase
	if viper.IsSet("api.base_url") {
		baseURL = viper.GetString("api.base_url")
	}
	client := quran.NewClient(baseURL)

	return &Processor{
		flags:    flags,
		client:   client,
		searcher: quran.NewSearcher(client, flags.PageSize),
		out:      os.Stdout,
	}
}

// Run dispatches to the headless commands or the GUI. The --gui flag
// forces the reader even when a headless flag is present.
func (p *Processor) Run() error {
	if !p.flags.GUIMode {
		if p.flags.SearchQuery != "" {
			return p.RunSearch(p.flags.SearchQuery)
		}
		if p.flags.Bookmarks {
			return p.RunBookmarks()
		}
	}
	return p.RunGUIMode()
}

// RunSearch prints merged multi-edition search results to stdout.
func (p *Processor) RunSearch(query string) error {
	results, err := p.searcher.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(p.out, "%d results for %q\n\n", len(results.Merged), query)

	lang := quran.Language(p.flags.Language)
	for _, match := range results.Merged {
		fmt.Fprintf(p.out, "%d:%d\n", match.SurahNumber, match.NumberInSurah)
		if arabic := results.Texts[quran.LanguageArabic][match.Number]; arabic != "" {
			fmt.Fprintf(p.out, "  %s\n", arabic)
		}
		if translation := results.Texts[lang][match.Number]; translation != "" {
			fmt.Fprintf(p.out, "  %s\n", translation)
		}
		fmt.Fprintln(p.out)
	}
	return nil
}

// RunBookmarks prints the saved bookmarks to stdout.
func (p *Processor) RunBookmarks() error {
	dir := internal.StateDir()
	if viper.IsSet("storage.dir") {
		dir = viper.GetString("storage.dir")
	}
	db := store.OpenDefault(dir)
	defer db.Close()

	bookmarks := db.List()
	if len(bookmarks) == 0 {
		fmt.Fprintln(p.out, "No bookmarks saved.")
		return nil
	}

	fmt.Fprintf(p.out, "%d bookmarks:\n\n", len(bookmarks))
	for _, b := range bookmarks {
		fmt.Fprintf(p.out, "%s %d:%d\n  %s\n\n", b.SurahName, b.SurahNumber, b.NumberInSurah, b.Text)
	}
	return nil
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	// Create GUI configuration from command line flags and viper config
	guiConfig := &gui.Config{
		APIBase:        p.flags.APIBase,
		Language:       p.flags.Language,
		PageSize:       p.flags.PageSize,
		Reciter:        p.flags.Reciter,
		Bitrate:        p.flags.Bitrate,
		AudioURLFormat: p.flags.AudioURLFormat,
		Repeat:         p.flags.Repeat,
		AutoPlay:       !p.flags.NoAutoPlay,
		OpenAIKey:      cli.GetOpenAIKey(),
		GotoRef:        p.flags.GotoRef,
	}

	// Use config file values if not overridden by flags
	if p.flags.Reciter == "ar.alafasy" && viper.IsSet("audio.reciter") {
		guiConfig.Reciter = viper.GetString("audio.reciter")
	}
	if p.flags.Bitrate == 128 && viper.IsSet("audio.bitrate") {
		guiConfig.Bitrate = viper.GetInt("audio.bitrate")
	}
	if p.flags.AudioURLFormat == "underscore" && viper.IsSet("audio.url_format") {
		guiConfig.AudioURLFormat = viper.GetString("audio.url_format")
	}
	if p.flags.Language == "english" && viper.IsSet("reader.language") {
		guiConfig.Language = viper.GetString("reader.language")
	}

	// Config-file-only keys with no flag counterpart
	if viper.IsSet("audio.cdn_base") {
		guiConfig.CDNBase = viper.GetString("audio.cdn_base")
	}
	if viper.IsSet("storage.dir") {
		guiConfig.StorageDir = viper.GetString("storage.dir")
	}
	if p.flags.Output != "" {
		guiConfig.DownloadsDir = p.flags.Output
	} else if viper.IsSet("export.downloads_dir") {
		guiConfig.DownloadsDir = viper.GetString("export.downloads_dir")
	}

	// Create and run GUI application
	app := gui.New(guiConfig)
	app.Run()

	return nil
}
