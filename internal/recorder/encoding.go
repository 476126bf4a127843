package recorder

// Encoding identifies the container/codec of a captured clip.
type Encoding string

const (
	EncodingOpus Encoding = "opus"
	EncodingMP3  Encoding = "mp3"
	EncodingWAV  Encoding = "wav"
)

// DefaultEncoding is the environment fallback when none of the
// preferred encodings is supported by the capture backend.
const DefaultEncoding = EncodingWAV

// PreferredEncodings returns the ordered encoding preference list
// tried when a recording starts.
func PreferredEncodings() []Encoding {
	return []Encoding{EncodingOpus, EncodingMP3, EncodingWAV}
}

// Extension returns the file extension used when saving a clip.
func (e Encoding) Extension() string {
	switch e {
	case EncodingOpus:
		return "webm"
	case EncodingMP3:
		return "mp3"
	case EncodingWAV:
		return "wav"
	default:
		return "wav"
	}
}
