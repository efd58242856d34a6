package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	postCount     int
	filterLabel   string
	searching     bool
	generating    bool
	pendingImages int
	flash         string
	updateVersion string
}

func renderStatusBar(info statusInfo, width int) string {
	accent := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	left := fmt.Sprintf(" %d posts", info.postCount)
	if info.filterLabel != "All" {
		left += " · " + info.filterLabel
	}
	if info.generating {
		left += " (generating...)"
	} else if info.pendingImages > 0 {
		left += fmt.Sprintf(" · %d images pending", info.pendingImages)
	}
	if info.flash != "" {
		left += " · " + accent.Render(info.flash)
	}

	right := " h home  / search  f filter  g goto  y share  q quit "
	if info.searching {
		right = " esc cancel  enter apply "
	}
	if info.updateVersion != "" {
		right = accent.Render("v"+info.updateVersion+" available") + " " + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
