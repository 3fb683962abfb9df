package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document with one
// Item/Value table per section.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var sb strings.Builder

	sb.WriteString("# " + l10n.T("Editing Summary") + "\n\n")
	fmt.Fprintf(&sb, "%s: %s  \n", l10n.T("Generated"), s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "%s: `%s`\n", l10n.T("Command"), s.Command)

	if p := s.Photo; p != nil {
		section(&sb, l10n.T("Photo"), [][2]string{
			{l10n.T("Source"), p.Source},
			{l10n.T("Image Size"), size(p.Natural.Width, p.Natural.Height)},
			{l10n.T("Display Size"), size(p.Display.Width, p.Display.Height)},
			{l10n.T("Filter"), "`" + p.Filter + "`"},
			{l10n.T("Rotation"), fmt.Sprintf("%g°", p.Rotate)},
		})
	}

	if p := s.Poster; p != nil {
		template := p.Template
		if template == "" {
			template = l10n.T("None")
		}
		section(&sb, l10n.T("Poster"), [][2]string{
			{l10n.T("Template"), template},
			{l10n.T("Canvas Size"), fmt.Sprintf("%dx%d", p.Width, p.Height)},
			{l10n.T("Text Elements"), fmt.Sprint(p.Texts)},
			{l10n.T("Image Elements"), fmt.Sprint(p.Images)},
		})
	}

	if r := s.Session; r != nil {
		section(&sb, l10n.T("Session"), [][2]string{
			{l10n.T("Final Mode"), r.Mode},
			{l10n.T("Steps"), fmt.Sprint(r.Steps)},
			{l10n.T("Changed"), fmt.Sprint(r.Changed)},
			{l10n.T("Ignored"), fmt.Sprint(r.Ignored)},
		})
	}

	sb.WriteString("\n## " + l10n.T("Outputs") + "\n\n")
	if len(s.Outputs) == 0 {
		sb.WriteString(l10n.T("None") + "\n")
	}
	for _, p := range s.Outputs {
		fmt.Fprintf(&sb, "- `%s`\n", p)
	}

	return sb.String()
}

func section(sb *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(sb, "\n## %s\n\n", title)
	fmt.Fprintf(sb, "| %s | %s |\n", l10n.T("Item"), l10n.T("Value"))
	sb.WriteString("|------|-------|\n")
	for _, r := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", r[0], r[1])
	}
}

func size(w, h float64) string {
	return fmt.Sprintf("%.0fx%.0f", w, h)
}
