package processor

import (
	"bytes"
	"strings"
	"testing"

	"mushaf/internal/cli"
	"mushaf/internal/quran"
	"mushaf/internal/testutil"
)

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.client == nil {
		t.Error("Content client not initialized")
	}
	if p.searcher == nil {
		t.Error("Searcher not initialized")
	}
}

func TestRunSearchPrintsResults(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.Routes["/search/mercy/all/"+quran.EditionArabic] = testutil.SearchJSON([][3]any{
		{262, 2, "arabic text"},
	})
	server.Routes["/search/mercy/all/"+quran.EditionEnglish] = testutil.SearchJSON([][3]any{
		{262, 2, "english text"},
	})
	server.Routes["/search/mercy/all/"+quran.EditionFrench] = testutil.SearchJSON(nil)

	flags := cli.NewFlags()
	flags.APIBase = server.URL
	p := NewProcessor(flags)

	var buf bytes.Buffer
	p.out = &buf

	if err := p.RunSearch("mercy"); err != nil {
		t.Fatalf("RunSearch() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1 results for \"mercy\"") {
		t.Errorf("output missing result count: %q", output)
	}
	if !strings.Contains(output, "2:1") {
		t.Errorf("output missing verse reference: %q", output)
	}
	if !strings.Contains(output, "arabic text") || !strings.Contains(output, "english text") {
		t.Errorf("output missing verse texts: %q", output)
	}
}

func TestRunSearchFailure(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.Fail = true

	flags := cli.NewFlags()
	flags.APIBase = server.URL
	p := NewProcessor(flags)
	p.out = &bytes.Buffer{}

	if err := p.RunSearch("mercy"); err == nil {
		t.Error("RunSearch() error = nil, want failure when the API is down")
	}
}
