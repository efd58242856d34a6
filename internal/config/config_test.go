package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.SiteURL == "" {
		t.Error("default site_url is empty")
	}
	if cfg.TextModel == "" || cfg.ImageModel == "" {
		t.Error("default models are empty")
	}
	if len(cfg.Topics) != len(post.Categories()) {
		t.Errorf("default topics = %d, want one per category (%d)", len(cfg.Topics), len(post.Categories()))
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults fail validation: %v", err)
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Topics) == 0 {
		t.Error("expected default topics")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not written to %s: %v", path, err)
	}
}

func TestLoadUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `site_url: https://example.com
text_model: gemini-2.5-flash
image_model: gemini-2.5-flash-image
cache_ttl: 6h
topics:
  Space: "new launch vehicles"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TTL() != 6*time.Hour {
		t.Errorf("TTL = %v, want 6h", cfg.TTL())
	}
	if got := cfg.TopicFor(post.Space); got != "new launch vehicles" {
		t.Errorf("TopicFor(Space) = %q", got)
	}
	topics := cfg.CategoryTopics()
	if len(topics) != 1 {
		t.Errorf("CategoryTopics = %v, want only Space", topics)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{SiteURL: "https://example.com", Topics: map[string]string{"Space": "t"}},
		},
		{
			name:    "bad scheme",
			cfg:     Config{SiteURL: "ftp://example.com", Topics: map[string]string{"Space": "t"}},
			wantErr: true,
		},
		{
			name:    "no topics",
			cfg:     Config{SiteURL: "https://example.com"},
			wantErr: true,
		},
		{
			name:    "unknown category",
			cfg:     Config{Topics: map[string]string{"Gardening": "t"}},
			wantErr: true,
		},
		{
			name:    "empty topic",
			cfg:     Config{Topics: map[string]string{"Space": ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTTLDefault(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 24 * time.Hour},
		{"garbage", 24 * time.Hour},
		{"-1h", 24 * time.Hour},
		{"30m", 30 * time.Minute},
	}
	for _, tt := range tests {
		cfg := Config{CacheTTL: tt.raw}
		if got := cfg.TTL(); got != tt.want {
			t.Errorf("TTL(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestKeyPrecedence(t *testing.T) {
	t.Setenv("CIRCUITSOUL_API_KEY", "from-env")
	t.Setenv("GEMINI_API_KEY", "from-gemini")

	cfg := Config{APIKey: "from-config"}
	if got := cfg.Key(); got != "from-config" {
		t.Errorf("Key = %q, want config value first", got)
	}

	cfg.APIKey = ""
	if got := cfg.Key(); got != "from-env" {
		t.Errorf("Key = %q, want CIRCUITSOUL_API_KEY", got)
	}

	t.Setenv("CIRCUITSOUL_API_KEY", "")
	if got := cfg.Key(); got != "from-gemini" {
		t.Errorf("Key = %q, want GEMINI_API_KEY fallback", got)
	}
}
