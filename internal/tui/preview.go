package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/digest"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

func renderPreview(p *post.Post, width, height, scroll int) string {
	if p == nil {
		return lipglossCenter("Select a post", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(p.Title)
	meta := previewMetaStyle.Render(fmt.Sprintf(
		"%s · %s · %d min read",
		p.Category, p.CreatedAt.Format("Jan 2, 2006"), digest.ReadingTime(p.Content),
	))

	image := "image: " + p.ImageURL
	if p.ImagePending() {
		image = "image: generating..."
	}
	imageLine := previewSourceStyle.Width(contentWidth).Render(image)

	body := renderMarkdown(p.Content, contentWidth)

	sections := []string{title, meta, imageLine, "", body}
	if len(p.Sources) > 0 {
		var src strings.Builder
		src.WriteString("Sources:\n")
		for _, s := range p.Sources {
			src.WriteString("  " + s.Title + " — " + s.URI + "\n")
		}
		sections = append(sections, "", previewSourceStyle.Width(contentWidth).Render(strings.TrimRight(src.String(), "\n")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// renderMarkdown renders post content with glamour, falling back to
// plain word-wrapped text if the renderer fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, err := r.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return previewBodyStyle.Width(width).Render(wrapText(content, width))
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
