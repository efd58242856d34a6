package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(p post.Post, selected, highlighted bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	switch {
	case highlighted:
		title = itemHighlightStyle.Render("> " + truncateStr(p.Title, width-4))
	case selected:
		title = itemSelectedStyle.Render("> " + truncateStr(p.Title, width-4))
	default:
		title = itemTitleStyle.Render("  " + truncateStr(p.Title, width-4))
	}

	marker := ""
	if p.ImagePending() {
		marker = " " + itemTimeStyle.Render("◌")
	}
	meta := "  " + itemCategoryStyle.Render(string(p.Category)) +
		" " + itemTimeStyle.Render("· "+relativeTime(p.CreatedAt)) + marker

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(posts []post.Post, cursor int, highlightSlug string, height, width int) string {
	if len(posts) == 0 {
		return lipglossCenter("No posts found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(posts) {
		end = len(posts)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(posts[i], i == cursor, posts[i].Slug == highlightSlug, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func lipglossCenter(text string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		helpDimStyle.Render(text))
}
