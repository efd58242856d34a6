package filter

import (
	"strings"
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// Window is a time filter over post creation times.
type Window int

const (
	WindowAll Window = iota
	WindowDay
	WindowWeek
	WindowMonth
)

// Windows returns the selectable windows in display order.
func Windows() []Window {
	return []Window{WindowAll, WindowDay, WindowWeek, WindowMonth}
}

func (w Window) Label() string {
	switch w {
	case WindowDay:
		return "Today"
	case WindowWeek:
		return "This Week"
	case WindowMonth:
		return "This Month"
	default:
		return "All Time"
	}
}

// Duration returns the window length; ok is false for WindowAll.
func (w Window) Duration() (time.Duration, bool) {
	switch w {
	case WindowDay:
		return 24 * time.Hour, true
	case WindowWeek:
		return 7 * 24 * time.Hour, true
	case WindowMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Options selects a view over the post list.
type Options struct {
	Category post.Category
	Window   Window
	Search   string
}

// Apply composes the category, time, and search predicates by AND, in
// that order. It is pure: posts is never mutated and the result is a
// fresh slice.
func Apply(posts []post.Post, opts Options, now time.Time) []post.Post {
	out := make([]post.Post, 0, len(posts))
	out = append(out, posts...)
	out = byCategory(out, opts.Category)
	out = byWindow(out, opts.Window, now)
	out = bySearch(out, opts.Search)
	return out
}

func byCategory(posts []post.Post, cat post.Category) []post.Post {
	if cat == "" || cat == post.CategoryAll {
		return posts
	}
	out := posts[:0]
	for _, p := range posts {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

func byWindow(posts []post.Post, w Window, now time.Time) []post.Post {
	d, ok := w.Duration()
	if !ok {
		return posts
	}
	cutoff := now.Add(-d)
	out := posts[:0]
	for _, p := range posts {
		if !p.CreatedAt.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

func bySearch(posts []post.Post, term string) []post.Post {
	if term == "" {
		return posts
	}
	term = strings.ToLower(term)
	out := posts[:0]
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) {
			out = append(out, p)
		}
	}
	return out
}
