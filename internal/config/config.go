package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	SiteURL     string            `yaml:"site_url"`
	TextModel   string            `yaml:"text_model"`
	ImageModel  string            `yaml:"image_model"`
	AspectRatio string            `yaml:"aspect_ratio"`
	CacheTTL    string            `yaml:"cache_ttl"`
	APIKey      string            `yaml:"api_key,omitempty"`
	Topics      map[string]string `yaml:"topics"`
}

// Key returns the resolved API key (config, then env vars).
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if key := os.Getenv("CIRCUITSOUL_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GEMINI_API_KEY")
}

// TTL returns the cache freshness window, defaulting to 24h.
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// TopicFor returns the generation topic for a category.
func (c *Config) TopicFor(cat post.Category) string {
	return c.Topics[string(cat)]
}

// CategoryTopics returns the topic table keyed by Category, restricted
// to known categories in canonical order.
func (c *Config) CategoryTopics() map[post.Category]string {
	out := make(map[post.Category]string, len(c.Topics))
	for _, cat := range post.Categories() {
		if topic := c.Topics[string(cat)]; topic != "" {
			out[cat] = topic
		}
	}
	return out
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "circuitsoul", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "circuitsoul", "circuitsoul.db")
}

// ImagesDir is where generated post images are written.
func ImagesDir() string {
	return filepath.Join(xdg.CacheHome, "circuitsoul", "images")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.SiteURL != "" {
		u, err := url.Parse(cfg.SiteURL)
		if err != nil {
			return fmt.Errorf("site_url: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("site_url: scheme must be http or https, got %q", u.Scheme)
		}
	}
	if len(cfg.Topics) == 0 {
		return fmt.Errorf("topics: at least one category topic is required")
	}
	for name, topic := range cfg.Topics {
		if !post.ValidCategory(name) {
			return fmt.Errorf("topics: unknown category %q", name)
		}
		if topic == "" {
			return fmt.Errorf("topics: category %q has an empty topic", name)
		}
	}
	return nil
}
