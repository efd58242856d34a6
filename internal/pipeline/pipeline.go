package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/ai"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// Result is the outcome of one phase-1 generation run. A partial run
// (fewer posts than topics) is valid: per-topic failures are collected,
// not fatal.
type Result struct {
	Posts []post.Post
	Errs  []error
}

// Failed reports whether the whole batch failed: nothing generated and
// at least one error. Only this case is surfaced to the user.
func (r Result) Failed() bool {
	return len(r.Posts) == 0 && len(r.Errs) > 0
}

// GenerateAll runs phase 1: one article request per category, fanned
// out and gathered with join-all semantics. Post order follows request
// completion, not topic order. Every post starts with the placeholder
// image; slugs are derived once from the title, with a numeric suffix
// on the rare in-batch collision.
func GenerateAll(ctx context.Context, gen ai.Generator, topics map[post.Category]string) Result {
	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)

	for cat, topic := range topics {
		wg.Add(1)
		go func(cat post.Category, topic string) {
			defer wg.Done()
			draft, err := gen.GenerateArticle(ctx, topic)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("dropping topic", "category", cat, "err", err)
				result.Errs = append(result.Errs, fmt.Errorf("%s: %w", cat, err))
				return
			}
			result.Posts = append(result.Posts, post.Post{
				Slug:      post.Slugify(draft.Title),
				Title:     draft.Title,
				Content:   draft.Content,
				Category:  cat,
				ImageURL:  post.PlaceholderImage,
				Sources:   draft.Sources,
				CreatedAt: time.Now(),
			})
		}(cat, topic)
	}

	wg.Wait()

	seen := make(map[string]bool, len(result.Posts))
	for i := range result.Posts {
		result.Posts[i].Slug = post.UniqueSlug(result.Posts[i].Slug, seen)
	}
	return result
}

// BackfillImage runs phase 2 for a single post: generate one image,
// write it under imagesDir, and return the stored path. Failures leave
// the caller's placeholder untouched; there is no retry.
func BackfillImage(ctx context.Context, gen ai.Generator, imagesDir string, p post.Post) (string, error) {
	data, err := gen.GenerateImage(ctx, p.Title)
	if err != nil {
		return "", fmt.Errorf("generating image for %s: %w", p.Slug, err)
	}
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating images dir: %w", err)
	}
	path := filepath.Join(imagesDir, p.Slug+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image for %s: %w", p.Slug, err)
	}
	return path, nil
}

// ApplyImage replaces the image URL of the post matching slug and
// reports whether anything changed. The transition happens once: a post
// that already carries a final image is left alone, so replaying the
// same backfill result is a no-op.
func ApplyImage(posts []post.Post, slug, imageURL string) ([]post.Post, bool) {
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if !posts[i].ImagePending() {
			return posts, false
		}
		posts[i].ImageURL = imageURL
		return posts, true
	}
	return posts, false
}
