package player

import "fmt"

// URLFormat selects how the (surah, verse) pair is encoded in the
// audio CDN path. Both formats address the same recording; which one
// is primary is fixed by configuration, not user choice.
type URLFormat string

const (
	// URLFormatUnderscore encodes the segment as "surah_verse.mp3".
	URLFormatUnderscore URLFormat = "underscore"

	// URLFormatColon encodes the segment as "surah:verse.mp3".
	URLFormatColon URLFormat = "colon"
)

// Defaults for recitation audio sources.
const (
	DefaultCDNBase = "https://cdn.islamic.network/quran/audio"
	DefaultBitrate = 128
	DefaultReciter = "ar.alafasy"
)

// SourceConfig describes where recitation audio comes from.
type SourceConfig struct {
	CDNBase string
	Bitrate int
	Reciter string
	Primary URLFormat
}

// DefaultSourceConfig returns the standard CDN configuration with the
// underscore format as primary.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		CDNBase: DefaultCDNBase,
		Bitrate: DefaultBitrate,
		Reciter: DefaultReciter,
		Primary: URLFormatUnderscore,
	}
}

// URL builds the audio source URL for a verse. alternate selects the
// non-primary format.
func (c SourceConfig) URL(surah, verse int, alternate bool) string {
	format := c.Primary
	if alternate {
		format = c.alternateFormat()
	}

	segment := fmt.Sprintf("%d_%d.mp3", surah, verse)
	if format == URLFormatColon {
		segment = fmt.Sprintf("%d:%d.mp3", surah, verse)
	}
	return fmt.Sprintf("%s/%d/%s/%s", c.CDNBase, c.Bitrate, c.Reciter, segment)
}

func (c SourceConfig) alternateFormat() URLFormat {
	if c.Primary == URLFormatColon {
		return URLFormatUnderscore
	}
	return URLFormatColon
}
