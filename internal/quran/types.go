package quran

// SurahCount is the number of surahs in the Quran.
const SurahCount = 114

// AyahCount is the number of ayahs across all surahs. Global ayah
// numbers run 1..AyahCount and are the only cross-entity join key.
const AyahCount = 6236

// Surah is a chapter of the Quran. Immutable once fetched.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

// Ayah is a single verse. Number is the global verse number (1..6236),
// NumberInSurah the position within the containing surah.
type Ayah struct {
	Number        int    `json:"number"`
	SurahNumber   int    `json:"-"`
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
}

// Translation is one translated rendering of a verse, identified by the
// verse's global number and the display language it was fetched for.
type Translation struct {
	AyahNumber int
	Text       string
	Language   Language
}
