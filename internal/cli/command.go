package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mushaf/internal"
	"mushaf/internal/quran"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mushaf",
		Short: "Quran reader with recitation playback",
		Long: `mushaf is a Quran reader for the desktop.

It browses all 114 surahs with English and French translations,
plays verse recitations, records your own recitation for comparison,
and searches the text across three editions at once.

Examples:
  mushaf                         # Launch the reader (default)
  mushaf --goto 2:255            # Open at a specific verse
  mushaf --search mercy          # Run a search from the command line
  mushaf --reciter ar.husary     # Use a different reciter`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.mushaf.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.APIBase, "api-base", quran.DefaultBaseURL, "Content API base URL")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Translation language (english or french)")
	cmd.Flags().IntVar(&flags.PageSize, "page-size", flags.PageSize, "Search results per page")
	cmd.Flags().StringVarP(&flags.SearchQuery, "search", "s", "", "Run a search and print the results")
	cmd.Flags().StringVarP(&flags.GotoRef, "goto", "g", "", "Open at a verse reference (e.g. 2:255)")
	cmd.Flags().BoolVar(&flags.Bookmarks, "bookmarks", false, "Print saved bookmarks and exit")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Directory for saved postcards and recordings (default ~/Downloads)")
	cmd.Flags().BoolVar(&flags.GUIMode, "gui", false, "Launch the reader even when --search or --bookmarks is given")

	// Audio flags
	cmd.Flags().StringVar(&flags.Reciter, "reciter", flags.Reciter, "Reciter edition for recitation audio")
	cmd.Flags().IntVar(&flags.Bitrate, "bitrate", flags.Bitrate, "Recitation audio bitrate (kbps)")
	cmd.Flags().StringVar(&flags.AudioURLFormat, "audio-url-format", flags.AudioURLFormat, "Primary audio URL format (underscore or colon)")
	cmd.Flags().IntVar(&flags.Repeat, "repeat", flags.Repeat, "Times to play each verse")
	cmd.Flags().BoolVar(&flags.NoAutoPlay, "no-auto-play", false, "Do not start playback when a verse is selected")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("api.base_url", cmd.Flags().Lookup("api-base"))
	viper.BindPFlag("reader.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("search.page_size", cmd.Flags().Lookup("page-size"))
	viper.BindPFlag("audio.reciter", cmd.Flags().Lookup("reciter"))
	viper.BindPFlag("audio.bitrate", cmd.Flags().Lookup("bitrate"))
	viper.BindPFlag("audio.url_format", cmd.Flags().Lookup("audio-url-format"))
	viper.BindPFlag("audio.repeat", cmd.Flags().Lookup("repeat"))
	viper.BindPFlag("export.downloads_dir", cmd.Flags().Lookup("output"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".mushaf" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mushaf")
	}

	// Environment variables
	viper.SetEnvPrefix("MUSHAF")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key for study notes from
// environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("study.openai_key")
}
