package quran

// Language selects which text/translation edition is displayed.
type Language string

const (
	LanguageArabic  Language = "arabic"
	LanguageEnglish Language = "english"
	LanguageFrench  Language = "french"
)

// Edition identifiers used by the content API.
const (
	EditionArabic  = "quran-uthmani"
	EditionEnglish = "en.sahih"
	EditionFrench  = "fr.hamidullah"
)

// ResolveEdition maps a display language to its API edition code.
// Unrecognized input falls back to the English edition; it never fails.
func ResolveEdition(lang Language) string {
	switch lang {
	case LanguageArabic:
		return EditionArabic
	case LanguageFrench:
		return EditionFrench
	case LanguageEnglish:
		return EditionEnglish
	default:
		return EditionEnglish
	}
}
