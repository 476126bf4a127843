package store

const lastSeenVersionKey = "last_seen_version"

// LastSeenVersion returns the app version recorded on the previous
// run, or "" on first run or storage failure.
func (s *Store) LastSeenVersion() string {
	if s.db == nil {
		return ""
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, lastSeenVersionKey).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetLastSeenVersion records the running app version for update
// detection on the next start.
func (s *Store) SetLastSeenVersion(version string) {
	if s.db == nil {
		return
	}

	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		lastSeenVersionKey, version)
	if err != nil {
		s.warn("recording version", err)
	}
}
