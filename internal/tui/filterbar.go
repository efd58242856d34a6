package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/filter"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// filterBar holds the category and time-window selection. Category is
// single-select with "All" as the sentinel; the window cycles through
// the fixed set.
type filterBar struct {
	categories []post.Category // including the leading "All"
	selected   int
	window     filter.Window
	filterMode bool
	cursor     int
}

func newFilterBar() filterBar {
	cats := append([]post.Category{post.CategoryAll}, post.Categories()...)
	return filterBar{categories: cats}
}

func (f *filterBar) category() post.Category {
	return f.categories[f.selected]
}

func (f *filterBar) selectCursor() {
	f.selected = f.cursor
}

// selectCategory jumps directly to cat, used by the --category flag.
func (f *filterBar) selectCategory(cat post.Category) {
	for i, c := range f.categories {
		if c == cat {
			f.selected = i
			f.cursor = i
			return
		}
	}
}

func (f *filterBar) cycleWindow() {
	windows := filter.Windows()
	f.window = windows[(int(f.window)+1)%len(windows)]
}

func (f *filterBar) reset() {
	f.selected = 0
	f.cursor = 0
	f.window = filter.WindowAll
}

func (f *filterBar) label() string {
	label := string(f.category())
	if f.window != filter.WindowAll {
		label += " · " + f.window.Label()
	}
	return label
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for i, cat := range f.categories {
		style := tabInactiveStyle
		if i == f.selected {
			style = tabActiveStyle
		}
		label := string(cat)
		if f.filterMode && i == f.cursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}
	parts = append(parts, tabInactiveStyle.Render(f.window.Label()))

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
