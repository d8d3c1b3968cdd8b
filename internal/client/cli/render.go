package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
)

const previewLen = 80

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// scoreStyle colours a score the way the web app did: green above 70,
// yellow above 40, red otherwise.
func scoreStyle(pct int) lipgloss.Style {
	switch {
	case pct > 70:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	case pct > 40:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	}
}

func renderScore(score float64) string {
	pct := models.ScorePercent(score)
	return scoreStyle(pct).Render(fmt.Sprintf("%d%%", pct))
}

func renderImages(b *strings.Builder, images []string) {
	if len(images) == 0 {
		b.WriteString(metaStyle.Render("No images"))
		b.WriteString("\n")
		return
	}
	for i, img := range images {
		fmt.Fprintf(b, "Image %d: %s\n", i+1, img)
	}
}

// renderResult draws the generated post card: text, one line per image and
// the engagement score.
func renderResult(r *models.GenerationResult) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Generated post"))
	b.WriteString("\n")
	b.WriteString(contentStyle.Render(r.Text))
	b.WriteString("\n\n")
	renderImages(&b, r.Images)
	b.WriteString(labelStyle.Render("Engagement score:") + " " + renderScore(r.EngagementScore))

	return cardStyle.Render(b.String())
}

// renderPostSummary is one history list entry.
func renderPostSummary(p models.HistoryPost) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		labelStyle.Render(p.ID.String()),
		headerStyle.Render(p.Platform),
		p.Topic)
	b.WriteString(contentStyle.Render(preview(p.Content, previewLen)))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("  %d image(s)", len(p.Images))))
	b.WriteString("  " + renderScore(p.EngagementScore))

	return b.String()
}

// renderPost shows a history post in full.
func renderPost(p models.HistoryPost) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(p.Topic))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("id %s, %s", p.ID, p.Platform)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(p.Content))
	b.WriteString("\n\n")
	renderImages(&b, p.Images)
	b.WriteString(labelStyle.Render("Engagement score:") + " " + renderScore(p.EngagementScore))

	return cardStyle.Render(b.String())
}

// preview collapses whitespace and cuts s to at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
