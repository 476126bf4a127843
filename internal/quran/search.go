package quran

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is the number of search results shown per page.
const DefaultPageSize = 4

// SearchAPI is the slice of the content client the aggregator needs.
type SearchAPI interface {
	SearchEdition(ctx context.Context, query, edition string) ([]Ayah, error)
}

// SearchResults is the merged outcome of a multi-edition search.
// Merged is deduplicated by global ayah number with the Arabic result
// ordering preserved as primary. Texts carries per-language lookup maps
// keyed by global number for rendering translations alongside matches.
type SearchResults struct {
	Query   string
	Merged  []Ayah
	Texts   map[Language]map[int]string
	PerPage int
}

// Searcher fans a query out across the Arabic, English and French
// editions and merges the results.
type Searcher struct {
	api     SearchAPI
	perPage int
}

// NewSearcher creates a search aggregator. perPage <= 0 selects
// DefaultPageSize.
func NewSearcher(api SearchAPI, perPage int) *Searcher {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return &Searcher{api: api, perPage: perPage}
}

// Search issues the three edition searches concurrently and joins them.
// If any edition query fails the whole search fails; there is no
// partial-results fallback.
func (s *Searcher) Search(ctx context.Context, query string) (*SearchResults, error) {
	var arabic, english, french []Ayah

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		arabic, err = s.api.SearchEdition(gctx, query, EditionArabic)
		return err
	})
	g.Go(func() (err error) {
		english, err = s.api.SearchEdition(gctx, query, EditionEnglish)
		return err
	})
	g.Go(func() (err error) {
		french, err = s.api.SearchEdition(gctx, query, EditionFrench)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search %q failed: %w", query, err)
	}

	results := &SearchResults{
		Query:   query,
		Texts:   make(map[Language]map[int]string),
		PerPage: s.perPage,
	}

	// Arabic ordering is primary; English then French contribute any
	// verse not already present. First-seen-language wins for position.
	seen := make(map[int]bool)
	appendNew := func(matches []Ayah) {
		for _, a := range matches {
			if seen[a.Number] {
				continue
			}
			seen[a.Number] = true
			results.Merged = append(results.Merged, a)
		}
	}
	appendNew(arabic)
	appendNew(english)
	appendNew(french)

	results.Texts[LanguageArabic] = textsByNumber(arabic)
	results.Texts[LanguageEnglish] = textsByNumber(english)
	results.Texts[LanguageFrench] = textsByNumber(french)

	return results, nil
}

// TotalPages reports how many pages the merged results span.
func (r *SearchResults) TotalPages() int {
	return TotalPages(len(r.Merged), r.PerPage)
}

// Page returns the slice of merged results for the given 1-based page.
func (r *SearchResults) Page(page int) []Ayah {
	return Page(r.Merged, page, r.PerPage)
}

// TotalPages computes the page count for total results at perPage each.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Page slices the 1-based page out of results. Out-of-range pages
// yield an empty slice.
func Page(results []Ayah, page, perPage int) []Ayah {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(results) {
		return nil
	}
	end := start + perPage
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// PageNumbers returns up to three consecutive page links centered on
// current, clamped to [1, total].
func PageNumbers(current, total int) []int {
	if total < 1 {
		return nil
	}
	start := current - 1
	if start < 1 {
		start = 1
	}
	if start > total-2 {
		start = total - 2
	}
	if start < 1 {
		start = 1
	}

	var pages []int
	for p := start; p <= total && len(pages) < 3; p++ {
		pages = append(pages, p)
	}
	return pages
}

func textsByNumber(matches []Ayah) map[int]string {
	m := make(map[int]string, len(matches))
	for _, a := range matches {
		m[a.Number] = a.Text
	}
	return m
}
