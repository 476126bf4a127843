package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	APIBase     string
	Language    string
	PageSize    int
	SearchQuery string
	GotoRef     string
	Bookmarks   bool
	Output      string
	GUIMode     bool

	// Audio flags
	Reciter        string
	Bitrate        int
	AudioURLFormat string
	Repeat         int
	NoAutoPlay     bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Language:       "english",
		PageSize:       4,
		Reciter:        "ar.alafasy",
		Bitrate:        128,
		AudioURLFormat: "underscore",
		Repeat:         1,
	}
}
