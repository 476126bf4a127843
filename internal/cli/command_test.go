package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mushaf/internal/quran"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "mushaf" {
		t.Errorf("Expected Use to be 'mushaf', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Quran reader") {
		t.Errorf("Expected Short description to contain 'Quran reader'")
	}

	// Test that flags are set up
	flagTests := []string{
		"config",
		"api-base",
		"language",
		"page-size",
		"search",
		"goto",
		"bookmarks",
		"output",
		"gui",
		"reciter",
		"bitrate",
		"audio-url-format",
		"repeat",
		"no-auto-play",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestSetupFlagDefaults(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	tests := []struct {
		flag     string
		expected string
	}{
		{"api-base", quran.DefaultBaseURL},
		{"language", "english"},
		{"page-size", "4"},
		{"reciter", "ar.alafasy"},
		{"bitrate", "128"},
		{"audio-url-format", "underscore"},
		{"repeat", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("%s flag not found", tt.flag)
			}
			if f.DefValue != tt.expected {
				t.Errorf("%s default = %s, want %s", tt.flag, f.DefValue, tt.expected)
			}
		})
	}
}

func TestFlagParsing(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)
	cmd.RunE = func(cmd *cobra.Command, args []string) error { return nil }

	cmd.SetArgs([]string{
		"--goto", "2:255",
		"--search", "mercy",
		"--language", "french",
		"--reciter", "ar.husary",
		"--repeat", "3",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if flags.GotoRef != "2:255" {
		t.Errorf("GotoRef = %s, want 2:255", flags.GotoRef)
	}
	if flags.SearchQuery != "mercy" {
		t.Errorf("SearchQuery = %s, want mercy", flags.SearchQuery)
	}
	if flags.Language != "french" {
		t.Errorf("Language = %s, want french", flags.Language)
	}
	if flags.Reciter != "ar.husary" {
		t.Errorf("Reciter = %s, want ar.husary", flags.Reciter)
	}
	if flags.Repeat != 3 {
		t.Errorf("Repeat = %d, want 3", flags.Repeat)
	}
}

func TestViperBindings(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	bindings := []struct {
		key  string
		want string
	}{
		{"audio.reciter", "ar.alafasy"},
		{"audio.url_format", "underscore"},
		{"reader.language", "english"},
	}

	for _, tt := range bindings {
		t.Run(tt.key, func(t *testing.T) {
			if got := viper.GetString(tt.key); got != tt.want {
				t.Errorf("viper %s = %s, want %s", tt.key, got, tt.want)
			}
		})
	}

	_ = cmd
}
