package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/config"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// Draft is the parsed output of one article-generation call.
type Draft struct {
	Title   string
	Content string
	Sources []post.Source
}

// Generator produces article text and post images.
type Generator interface {
	GenerateArticle(ctx context.Context, topic string) (Draft, error)
	GenerateImage(ctx context.Context, title string) ([]byte, error)
}

// Client talks to the Gemini REST API.
type Client struct {
	apiKey      string
	textModel   string
	imageModel  string
	aspectRatio string
	baseURL     string
	client      *http.Client
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// New creates a Client from config. It fails when no API key is
// resolvable; callers surface that as a persistent message and never
// attempt generation.
func New(cfg *config.Config) (*Client, error) {
	key := cfg.Key()
	if key == "" {
		return nil, fmt.Errorf("no API key configured (set CIRCUITSOUL_API_KEY, GEMINI_API_KEY, or api_key in config)")
	}
	textModel := cfg.TextModel
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = "gemini-2.5-flash-image"
	}
	return &Client{
		apiKey:      key,
		textModel:   textModel,
		imageModel:  imageModel,
		aspectRatio: cfg.AspectRatio,
		baseURL:     defaultBaseURL,
		client:      &http.Client{Timeout: 120 * time.Second},
	}, nil
}

const articlePrompt = `You are the voice of The Circuit Soul, an AI-written tech publication. Use web search to find %s, then write a blog post about it.

Respond with exactly one JSON object and nothing else:
{"title": "<headline, max 80 characters>", "content": "<the post as 3-4 paragraphs of markdown>"}`

const imagePrompt = `A clean widescreen editorial illustration for a tech blog post titled "%s". Abstract, modern, subtle circuitry motifs. No text in the image.`

// --- request/response shapes ---

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content           content `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// GenerateArticle asks the text model for one search-grounded post on
// topic. The model is told to answer with a single JSON object, but the
// reply is treated as free text: everything between the first "{" and
// the last "}" is parsed, and a shape mismatch is the caller's cue to
// drop this topic.
func (c *Client) GenerateArticle(ctx context.Context, topic string) (Draft, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(articlePrompt, topic)}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}

	resp, err := c.call(ctx, c.textModel, req)
	if err != nil {
		return Draft{}, err
	}
	if len(resp.Candidates) == 0 {
		return Draft{}, fmt.Errorf("empty response")
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	draft, err := parseDraft(text.String())
	if err != nil {
		return Draft{}, err
	}
	draft.Sources = extractSources(resp)
	return draft, nil
}

// GenerateImage asks the image model for one illustration and returns
// the raw image bytes.
func (c *Client) GenerateImage(ctx context.Context, title string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(imagePrompt, title)}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}
	if c.aspectRatio != "" {
		req.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: c.aspectRatio}
	}

	resp, err := c.call(ctx, c.imageModel, req)
	if err != nil {
		return nil, err
	}
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding image payload: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("no image in response")
}

func (c *Client) call(ctx context.Context, model string, body generateRequest) (generateResponse, error) {
	payload, _ := json.Marshal(body)

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return generateResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return generateResponse{}, fmt.Errorf("gemini API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return generateResponse{}, fmt.Errorf("gemini API %d: %s", resp.StatusCode, string(b))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return generateResponse{}, err
	}
	return gr, nil
}

// extractJSON returns the substring between the first "{" and the last
// "}" of s.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return s[start : end+1], nil
}

func parseDraft(text string) (Draft, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return Draft{}, err
	}
	var parsed struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Draft{}, fmt.Errorf("parsing article JSON: %w", err)
	}
	if parsed.Title == "" || parsed.Content == "" {
		return Draft{}, fmt.Errorf("article JSON missing title or content")
	}
	return Draft{Title: parsed.Title, Content: parsed.Content}, nil
}

// extractSources pulls web attributions from grounding metadata,
// preserving order. Entries missing either a URI or a title are
// excluded.
func extractSources(resp generateResponse) []post.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []post.Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, post.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}
