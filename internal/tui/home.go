package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/digest"
)

func renderHomeScreen(d digest.Digest, width, height int, updateVersion string) string {
	titleStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorSecondary)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string
	lines = append(lines, titleStyle.Render("THE CIRCUIT SOUL"))
	lines = append(lines, dimStyle.Render("an AI-written tech blog, in your terminal"))
	lines = append(lines, "")

	if d.TotalPosts > 0 {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%d posts · %s", d.TotalPosts, d.Freshness)))
		if d.PendingImages > 0 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%d images still generating", d.PendingImages)))
		}
		lines = append(lines, "")
		if d.Lead != nil {
			lines = append(lines, dimStyle.Render("Lead story"))
			lines = append(lines, labelStyle.Render(d.Lead.Title))
			lines = append(lines, dimStyle.Render(fmt.Sprintf("%s · %d min read", d.Lead.Category, digest.ReadingTime(d.Lead.Content))))
			lines = append(lines, "")
		}
		var cats []string
		for _, cc := range d.Counts {
			cats = append(cats, fmt.Sprintf("%s %d", cc.Category, cc.Count))
		}
		if len(cats) > 0 {
			lines = append(lines, dimStyle.Render(strings.Join(cats, " · ")))
			lines = append(lines, "")
		}
	} else {
		lines = append(lines, dimStyle.Render(d.Freshness))
		lines = append(lines, "")
	}

	lines = append(lines, keyStyle.Render("[enter]")+"  "+labelStyle.Render("Read"))
	lines = append(lines, keyStyle.Render("[r]")+"      "+labelStyle.Render("Regenerate"))
	lines = append(lines, keyStyle.Render("[q]")+"      "+labelStyle.Render("Quit"))

	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, titleStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
