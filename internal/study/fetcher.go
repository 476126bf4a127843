// Package study fetches optional per-verse study notes from OpenAI.
// Notes are cached on disk so a verse is only ever requested once.
package study

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Fetcher produces short study notes for a single verse.
type Fetcher struct {
	apiKey   string
	client   *openai.Client
	cacheDir string
}

// NewFetcher creates a study note fetcher caching under cacheDir.
func NewFetcher(apiKey, cacheDir string) *Fetcher {
	return &Fetcher{
		apiKey:   apiKey,
		client:   openai.NewClient(apiKey),
		cacheDir: cacheDir,
	}
}

// Enabled reports whether an API key is configured. Without a key the
// study notes feature simply stays hidden.
func (f *Fetcher) Enabled() bool {
	return f.apiKey != ""
}

// Notes returns study notes for the given verse, serving from the disk
// cache when available.
func (f *Fetcher) Notes(surah, verse int, arabicText, translation string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	cacheFile := filepath.Join(f.cacheDir, fmt.Sprintf("notes-%d-%d.txt", surah, verse))
	if data, err := os.ReadFile(cacheFile); err == nil {
		return string(data), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a knowledgeable and respectful teacher of Quranic studies helping readers understand individual verses. Keep notes concise, neutral in tone, and focused on language, context, and widely accepted commentary.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`For verse %d:%d of the Quran:

Arabic: %s
Translation: %s

1. Give a one-sentence summary of the verse's theme
2. Explain any key Arabic terms and their nuances
3. Briefly note the context within the surah`, surah, verse, arabicText, translation),
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	notes := strings.TrimSpace(resp.Choices[0].Message.Content)

	if err := os.MkdirAll(f.cacheDir, 0755); err == nil {
		// Cache write failures are not worth failing the request over.
		os.WriteFile(cacheFile, []byte(notes), 0644)
	}

	return notes, nil
}
