package post

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// PlaceholderImage is the image URL every post carries until the
// backfill phase replaces it with a generated image.
const PlaceholderImage = "https://placehold.co/800x450/16213e/7571f9?text=Circuit+Soul"

// Source is one web attribution returned alongside generated text.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Post is one AI-generated article.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // markdown
	Category  Category  `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImagePending reports whether the post still carries the placeholder.
func (p *Post) ImagePending() bool {
	return p.ImageURL == "" || p.ImageURL == PlaceholderImage
}

// Slugify derives a URL-safe identifier from a title: lowercase,
// non-word characters stripped, whitespace folded to single hyphens.
// "AI & The Future!" becomes "ai-the-future". The slug is derived once
// at creation and never recomputed.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-':
			b.WriteByte('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// UniqueSlug returns slug, suffixed with a counter if it is already in
// seen, and records the result. Titles are expected to be distinct, so
// the suffix path is rare.
func UniqueSlug(slug string, seen map[string]bool) string {
	candidate := slug
	for n := 2; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
	seen[candidate] = true
	return candidate
}
