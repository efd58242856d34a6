package ai

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"surrounded by prose", "Sure! Here you go:\n{\"a\":1}\nHope that helps.", `{"a":1}`, false},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"no braces", "no json here", "", true},
		{"only open brace", "{ broken", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		got, err := extractJSON(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %q", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseDraft(t *testing.T) {
	draft, err := parseDraft("Here is the post:\n{\"title\": \"Neural Dust\", \"content\": \"## Tiny sensors\\n\\nBody.\"}")
	if err != nil {
		t.Fatalf("parseDraft: %v", err)
	}
	if draft.Title != "Neural Dust" {
		t.Errorf("title = %q", draft.Title)
	}
	if draft.Content == "" {
		t.Error("expected content")
	}
}

func TestParseDraftShapeMismatch(t *testing.T) {
	tests := []string{
		`{"headline": "wrong keys"}`,
		`{"title": "", "content": "no title"}`,
		`{"title": "no content", "content": ""}`,
		`{not json}`,
		`plain text`,
	}
	for _, input := range tests {
		if _, err := parseDraft(input); err == nil {
			t.Errorf("parseDraft(%q): expected error", input)
		}
	}
}

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     "test-key",
		textModel:  "test-model",
		imageModel: "test-image-model",
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGenerateArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "Intro text {\"title\": \"Grid Batteries Scale Up\", \"content\": \"Body paragraph.\"} trailing"}]},
				"groundingMetadata": {"groundingChunks": [
					{"web": {"uri": "https://a.example", "title": "Source A"}},
					{"web": {"uri": "https://b.example", "title": ""}},
					{"web": {"uri": "", "title": "No URI"}},
					{"web": {"uri": "https://c.example", "title": "Source C"}}
				]}
			}]
		}`))
	}))
	defer srv.Close()

	draft, err := testClient(srv.URL).GenerateArticle(context.Background(), "grid batteries")
	if err != nil {
		t.Fatalf("GenerateArticle: %v", err)
	}
	if draft.Title != "Grid Batteries Scale Up" {
		t.Errorf("title = %q", draft.Title)
	}
	// Entries without both URI and title are excluded, order preserved.
	if len(draft.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d: %v", len(draft.Sources), draft.Sources)
	}
	if draft.Sources[0].URI != "https://a.example" || draft.Sources[1].URI != "https://c.example" {
		t.Errorf("source order not preserved: %v", draft.Sources)
	}
}

func TestGenerateArticleMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "I could not find anything."}]}}]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateArticle(context.Background(), "anything"); err == nil {
		t.Error("expected error for reply without JSON")
	}
}

func TestGenerateArticleHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateArticle(context.Background(), "anything"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestGenerateImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"content": {"parts": [
			{"text": "here is your image"},
			{"inlineData": {"mimeType": "image/png", "data": "` + payload + `"}}
		]}}]}`))
	}))
	defer srv.Close()

	data, err := testClient(srv.URL).GenerateImage(context.Background(), "Grid Batteries Scale Up")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("unexpected payload %q", data)
	}
}

func TestGenerateImageEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "no image"}]}}]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateImage(context.Background(), "anything"); err == nil {
		t.Error("expected error when response has no image part")
	}
}
