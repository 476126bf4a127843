package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Language", flags.Language, "english"},
		{"PageSize", flags.PageSize, 4},
		{"Reciter", flags.Reciter, "ar.alafasy"},
		{"Bitrate", flags.Bitrate, 128},
		{"AudioURLFormat", flags.AudioURLFormat, "underscore"},
		{"Repeat", flags.Repeat, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Bookmarks", flags.Bookmarks},
		{"GUIMode", flags.GUIMode},
		{"NoAutoPlay", flags.NoAutoPlay},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"SearchQuery", flags.SearchQuery},
		{"GotoRef", flags.GotoRef},
		{"Output", flags.Output},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}
