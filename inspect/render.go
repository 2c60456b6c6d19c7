package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles decorates rendered output. The zero value renders plain text.
type Styles struct {
	Title lipgloss.Style
	Span  lipgloss.Style
	Name  lipgloss.Style
	Value lipgloss.Style
	Note  lipgloss.Style
}

// PlainStyles renders without terminal escapes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Title: plain, Span: plain, Name: plain, Value: plain, Note: plain}
}

// ColorStyles renders for a color terminal.
func ColorStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Span:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Name:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		Note:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
	}
}

// nameWidth pads field names so values line up.
const nameWidth = 20

// Render writes nodes as an indented listing.
func Render(w io.Writer, nodes []*Node, st Styles) error {
	var b strings.Builder
	for _, root := range nodes {
		root.Walk(0, func(n *Node, depth int) {
			indent := strings.Repeat("  ", depth)
			b.WriteString(indent)
			b.WriteString(st.Title.Render(n.Title))
			b.WriteString(" ")
			b.WriteString(st.Span.Render(fmt.Sprintf("@%d+%d", n.Offset, n.Length)))
			b.WriteString("\n")
			for _, f := range n.Fields {
				b.WriteString(indent)
				b.WriteString("  ")
				b.WriteString(st.Name.Render(fmt.Sprintf("%-*s", nameWidth, f.Name)))
				b.WriteString(" ")
				b.WriteString(st.Value.Render(f.Value))
				if f.Note != "" {
					b.WriteString("  ")
					b.WriteString(st.Note.Render(f.Note))
				}
				b.WriteString("\n")
			}
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}
