package store

import (
	"time"

	"mushaf/internal/quran"
)

// Bookmark is a saved verse with enough denormalized context to render
// the bookmarks list without refetching.
type Bookmark struct {
	AyahNumber    int
	SurahNumber   int
	NumberInSurah int
	Text          string
	SurahName     string
	CreatedAt     time.Time
}

// List returns all bookmarks ordered by their position in the mushaf.
func (s *Store) List() []Bookmark {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.Query(
		`SELECT ayah_number, surah_number, number_in_surah, text, surah_name, created_at
		 FROM bookmarks ORDER BY ayah_number`)
	if err != nil {
		s.warn("listing bookmarks", err)
		return nil
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var createdAt int64
		if err := rows.Scan(&b.AyahNumber, &b.SurahNumber, &b.NumberInSurah, &b.Text, &b.SurahName, &createdAt); err != nil {
			s.warn("reading bookmark row", err)
			continue
		}
		b.CreatedAt = time.Unix(createdAt, 0)
		bookmarks = append(bookmarks, b)
	}
	return bookmarks
}

// Add saves a bookmark for the given verse. Adding a verse that is
// already bookmarked is a no-op, so a verse holds at most one bookmark.
func (s *Store) Add(ayah quran.Ayah, surahName string) {
	if s.db == nil {
		return
	}

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO bookmarks
		 (ayah_number, surah_number, number_in_surah, text, surah_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ayah.Number, ayah.SurahNumber, ayah.NumberInSurah, ayah.Text, surahName, time.Now().Unix())
	if err != nil {
		s.warn("adding bookmark", err)
	}
}

// Remove deletes the bookmark for the given global verse number.
func (s *Store) Remove(ayahNumber int) {
	if s.db == nil {
		return
	}

	if _, err := s.db.Exec(`DELETE FROM bookmarks WHERE ayah_number = ?`, ayahNumber); err != nil {
		s.warn("removing bookmark", err)
	}
}

// IsBookmarked reports whether the verse has a bookmark.
func (s *Store) IsBookmarked(ayahNumber int) bool {
	if s.db == nil {
		return false
	}

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM bookmarks WHERE ayah_number = ?`, ayahNumber).Scan(&count)
	if err != nil {
		s.warn("checking bookmark", err)
		return false
	}
	return count > 0
}
