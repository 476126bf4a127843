package store

import "time"

// Note returns the saved note body for a verse, or "" when no note
// exists or storage is unavailable.
func (s *Store) Note(surah, verse int) string {
	if s.db == nil {
		return ""
	}

	var body string
	err := s.db.QueryRow(
		`SELECT body FROM notes WHERE surah_number = ? AND number_in_surah = ?`,
		surah, verse).Scan(&body)
	if err != nil {
		return ""
	}
	return body
}

// SaveNote stores the note body for a verse, replacing any existing
// note. Saving an empty body removes the note.
func (s *Store) SaveNote(surah, verse int, body string) {
	if s.db == nil {
		return
	}

	if body == "" {
		if _, err := s.db.Exec(
			`DELETE FROM notes WHERE surah_number = ? AND number_in_surah = ?`,
			surah, verse); err != nil {
			s.warn("deleting note", err)
		}
		return
	}

	_, err := s.db.Exec(
		`INSERT INTO notes (surah_number, number_in_surah, body, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (surah_number, number_in_surah)
		 DO UPDATE SET body = excluded.body, created_at = excluded.created_at`,
		surah, verse, body, time.Now().Unix())
	if err != nil {
		s.warn("saving note", err)
	}
}
