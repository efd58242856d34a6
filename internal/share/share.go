package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

// URL builds the shareable deep link for a post slug: the site base
// plus a hash fragment the web front-end resolves to the post card.
func URL(siteURL, slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("empty slug")
	}
	u, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("site URL scheme must be http or https, got %q", u.Scheme)
	}
	return strings.TrimRight(siteURL, "/") + "/#" + slug, nil
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}
