package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

func TestBuildEmpty(t *testing.T) {
	d := Build(nil, time.Time{}, time.Now(), 24*time.Hour)
	if d.TotalPosts != 0 {
		t.Errorf("expected 0 posts, got %d", d.TotalPosts)
	}
	if d.Lead != nil {
		t.Error("expected no lead for empty batch")
	}
	if d.Freshness != "no posts yet" {
		t.Errorf("freshness = %q", d.Freshness)
	}
}

func TestBuildCountsAndPending(t *testing.T) {
	now := time.Now()
	posts := []post.Post{
		{Slug: "a", Category: post.ArtificialIntelligence, ImageURL: post.PlaceholderImage, CreatedAt: now},
		{Slug: "b", Category: post.Cybersecurity, ImageURL: "/img/b.png", CreatedAt: now},
		{Slug: "c", Category: post.Cybersecurity, ImageURL: post.PlaceholderImage, CreatedAt: now},
	}
	d := Build(posts, now, now, 24*time.Hour)

	if d.TotalPosts != 3 {
		t.Errorf("TotalPosts = %d", d.TotalPosts)
	}
	if d.PendingImages != 2 {
		t.Errorf("PendingImages = %d", d.PendingImages)
	}
	if len(d.Counts) != 2 {
		t.Fatalf("expected 2 category counts, got %d", len(d.Counts))
	}
	// Canonical category order
	if d.Counts[0].Category != post.ArtificialIntelligence || d.Counts[1].Category != post.Cybersecurity {
		t.Errorf("counts out of order: %v", d.Counts)
	}
	if d.Counts[1].Count != 2 {
		t.Errorf("security count = %d", d.Counts[1].Count)
	}
}

func TestPickLeadPrefersFreshDeepContent(t *testing.T) {
	now := time.Now()
	long := strings.Repeat("word ", 450)
	posts := []post.Post{
		{Slug: "old-thin", Content: "short", CreatedAt: now.Add(-40 * time.Hour)},
		{Slug: "fresh-deep", Content: long, CreatedAt: now.Add(-1 * time.Hour)},
		{Slug: "fresh-thin", Content: "short", CreatedAt: now},
	}
	d := Build(posts, now, now, 24*time.Hour)
	if d.Lead == nil || d.Lead.Slug != "fresh-deep" {
		t.Errorf("unexpected lead: %+v", d.Lead)
	}
}

func TestFreshness(t *testing.T) {
	now := time.Now()
	ttl := 24 * time.Hour

	tests := []struct {
		age  time.Duration
		want string
	}{
		{10 * time.Minute, "fresh"},
		{3 * time.Hour, "3h old"},
		{30 * time.Hour, "stale, refreshing"},
	}
	for _, tt := range tests {
		got := freshness(now.Add(-tt.age), now, ttl)
		if got != tt.want {
			t.Errorf("freshness(age=%v) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime("a few words"); got != 1 {
		t.Errorf("short content = %d min, want 1", got)
	}
	if got := ReadingTime(strings.Repeat("word ", 600)); got != 3 {
		t.Errorf("600 words = %d min, want 3", got)
	}
}
