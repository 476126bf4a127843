// Package testutil provides shared test fixtures: a fake content API
// server speaking the enveloped JSON wire format, and helpers for
// temporary state directories.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// APIServer wraps an httptest server that mimics the content API. The
// route map keys are request paths (e.g. "/surah/2"); values are the
// raw `data` payloads, served inside the standard envelope.
type APIServer struct {
	*httptest.Server

	Routes map[string]string
	// Fail forces every response to a 500 regardless of routes.
	Fail bool
	// Calls records the request paths in arrival order.
	Calls []string
}

// NewAPIServer starts a fake content API. Callers own the returned
// server and must Close it (t.Cleanup is registered for convenience).
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{Routes: map[string]string{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Calls = append(s.Calls, r.URL.Path)

		if s.Fail {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		data, ok := s.Routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"code":404,"status":"NOT FOUND","data":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"code":200,"status":"OK","data":%s}`, data)
	}))
	t.Cleanup(s.Close)
	return s
}

// SurahListJSON builds a `data` payload for the surah list endpoint
// with the given surah numbers, 3 ayahs each.
func SurahListJSON(numbers ...int) string {
	var entries []string
	for _, n := range numbers {
		entries = append(entries, fmt.Sprintf(
			`{"number":%d,"name":"surah %d","englishName":"Surah %d","englishNameTranslation":"The %dth","numberOfAyahs":3,"revelationType":"Meccan"}`,
			n, n, n, n))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

// SurahDetailJSON builds a `data` payload for a surah detail or
// translation endpoint. Global ayah numbers start at firstGlobal.
func SurahDetailJSON(surah, firstGlobal, count int, textPrefix string) string {
	var ayahs []string
	for i := 0; i < count; i++ {
		ayahs = append(ayahs, fmt.Sprintf(
			`{"number":%d,"text":"%s %d","numberInSurah":%d}`,
			firstGlobal+i, textPrefix, i+1, i+1))
	}
	return fmt.Sprintf(`{"number":%d,"ayahs":[%s]}`, surah, strings.Join(ayahs, ","))
}

// SearchJSON builds a `data` payload for the search endpoint from
// (globalNumber, surahNumber, text) triples.
func SearchJSON(matches [][3]any) string {
	var entries []string
	for _, m := range matches {
		entries = append(entries, fmt.Sprintf(
			`{"number":%v,"text":"%v","numberInSurah":1,"surah":{"number":%v}}`,
			m[0], m[2], m[1]))
	}
	return fmt.Sprintf(`{"count":%d,"matches":[%s]}`, len(entries), strings.Join(entries, ","))
}
