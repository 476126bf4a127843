package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultBaseURL is the public content API serving surah, ayah,
	// translation and search endpoints.
	DefaultBaseURL = "https://api.alquran.cloud/v1"

	requestTimeout = 30 * time.Second
)

// Client issues HTTP GET requests against the content API and
// normalizes the JSON responses into the domain types. It performs no
// automatic retries; repeated failures trip a circuit breaker so the
// UI gets fast errors instead of hanging on a dead API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a content API client for the given base URL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "quran-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// envelope is the API's standard response wrapper.
type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// surahDetail is the wire shape of a single-surah response, shared by
// the Arabic text and translation endpoints.
type surahDetail struct {
	Number int `json:"number"`
	Ayahs  []struct {
		Number        int    `json:"number"`
		Text          string `json:"text"`
		NumberInSurah int    `json:"numberInSurah"`
	} `json:"ayahs"`
}

// searchResponse is the wire shape of the search endpoint.
type searchResponse struct {
	Count   int `json:"count"`
	Matches []struct {
		Number        int    `json:"number"`
		Text          string `json:"text"`
		NumberInSurah int    `json:"numberInSurah"`
		Surah         struct {
			Number int `json:"number"`
		} `json:"surah"`
	} `json:"matches"`
}

// Surahs fetches the list of all 114 surahs.
func (c *Client) Surahs(ctx context.Context) ([]Surah, error) {
	var surahs []Surah
	if err := c.get(ctx, "/surah", &surahs); err != nil {
		return nil, err
	}
	return surahs, nil
}

// AyahsBySurah fetches the Arabic source text of one surah.
func (c *Client) AyahsBySurah(ctx context.Context, surah int) ([]Ayah, error) {
	var detail surahDetail
	endpoint := fmt.Sprintf("/surah/%d", surah)
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return detailToAyahs(&detail), nil
}

// TranslationBySurah fetches one surah's verses in the edition resolved
// for the given display language. The returned records are keyed by
// global ayah number, never by slice position.
func (c *Client) TranslationBySurah(ctx context.Context, surah int, lang Language) ([]Translation, error) {
	var detail surahDetail
	endpoint := fmt.Sprintf("/surah/%d/%s", surah, ResolveEdition(lang))
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}

	translations := make([]Translation, 0, len(detail.Ayahs))
	for _, a := range detail.Ayahs {
		translations = append(translations, Translation{
			AyahNumber: a.Number,
			Text:       a.Text,
			Language:   lang,
		})
	}
	return translations, nil
}

// SearchEdition runs a free-text search scoped to a single edition and
// returns the matching ayahs in API order.
func (c *Client) SearchEdition(ctx context.Context, query, edition string) ([]Ayah, error) {
	var resp searchResponse
	endpoint := fmt.Sprintf("/search/%s/all/%s", url.PathEscape(query), edition)
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	matches := make([]Ayah, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, Ayah{
			Number:        m.Number,
			SurahNumber:   m.Surah.Number,
			NumberInSurah: m.NumberInSurah,
			Text:          m.Text,
		})
	}
	return matches, nil
}

// get performs a single GET through the circuit breaker and decodes
// the enveloped payload into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.doGet(ctx, endpoint, out)
	})
	if err != nil {
		return err
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Endpoint: endpoint, Message: "malformed response body"}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Endpoint: endpoint, Message: "unexpected data shape"}
	}

	return nil
}

func detailToAyahs(detail *surahDetail) []Ayah {
	ayahs := make([]Ayah, 0, len(detail.Ayahs))
	for _, a := range detail.Ayahs {
		ayahs = append(ayahs, Ayah{
			Number:        a.Number,
			SurahNumber:   detail.Number,
			NumberInSurah: a.NumberInSurah,
			Text:          a.Text,
		})
	}
	return ayahs
}
