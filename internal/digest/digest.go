package digest

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// Digest is the home-screen overview of the current batch.
type Digest struct {
	GeneratedAt   time.Time
	Freshness     string
	Lead          *post.Post
	Counts        []CategoryCount
	TotalPosts    int
	PendingImages int
}

// CategoryCount is the number of posts in one category, in canonical
// category order.
type CategoryCount struct {
	Category post.Category
	Count    int
}

// Build summarizes a published batch. posts may be partial or empty.
func Build(posts []post.Post, generatedAt, now time.Time, ttl time.Duration) Digest {
	d := Digest{
		GeneratedAt: generatedAt,
		Freshness:   freshness(generatedAt, now, ttl),
		TotalPosts:  len(posts),
	}

	counts := map[post.Category]int{}
	for i := range posts {
		counts[posts[i].Category]++
		if posts[i].ImagePending() {
			d.PendingImages++
		}
	}
	for _, cat := range post.Categories() {
		if counts[cat] > 0 {
			d.Counts = append(d.Counts, CategoryCount{Category: cat, Count: counts[cat]})
		}
	}

	if lead := pickLead(posts, now); lead >= 0 {
		d.Lead = &posts[lead]
	}
	return d
}

// pickLead scores each post on recency and content depth and returns
// the index of the best one, or -1 for an empty batch.
func pickLead(posts []post.Post, now time.Time) int {
	best, bestScore := -1, -1.0
	for i := range posts {
		score := recencyScore(posts[i].CreatedAt, now)*0.6 + depthScore(posts[i].Content)*0.4
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// recencyScore decays exponentially: 1.0 at creation, ~0.5 after 24h.
func recencyScore(created, now time.Time) float64 {
	if created.IsZero() {
		return 0.0
	}
	hours := now.Sub(created).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Exp(-0.02888 * hours)
}

func depthScore(content string) float64 {
	words := len(strings.Fields(content))
	switch {
	case words >= 400:
		return 1.0
	case words >= 150:
		return 0.6
	default:
		return 0.2
	}
}

// ReadingTime estimates minutes to read the post content at ~200 wpm.
func ReadingTime(content string) int {
	minutes := len(strings.Fields(content)) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func freshness(generatedAt, now time.Time, ttl time.Duration) string {
	if generatedAt.IsZero() {
		return "no posts yet"
	}
	age := now.Sub(generatedAt)
	switch {
	case age > ttl:
		return "stale, refreshing"
	case age < time.Hour:
		return "fresh"
	default:
		return fmt.Sprintf("%dh old", int(age.Hours()))
	}
}
