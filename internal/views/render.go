package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Pane widths: the garden stays narrow so the tree art reads as a
// column, lists get the wider pane.
const (
	gardenPaneWidth = 46
	detailPaneWidth = 62
)

// AppData carries pre-rendered panel strings. Styling and layout happen
// here so the update package never touches lipgloss directly.
type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("42")).Padding(0, 1)
	gardenPane = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("29")).
			Padding(0, 1).Width(gardenPaneWidth)
	detailPane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).Width(detailPaneWidth)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	noticePane = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("29")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Faint(true)
)

// RenderApp lays the screen out as a two-pane garden view: tree art on
// the left, the active panel on the right, notices and the key hint
// line underneath.
func RenderApp(data AppData) string {
	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		gardenPane.Render(data.LeftPane),
		detailPane.Render(data.RightPane),
	)

	sections := []string{titleStyle.Render(data.Header), row}
	if data.StatusLine != "" {
		sections = append(sections, renderStatus(data.StatusLine))
	}
	if data.Notification != "" {
		sections = append(sections, noticePane.Render(data.Notification))
	}
	if data.Footer != "" {
		sections = append(sections, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Status lines carry their level as a bracketed prefix.
func renderStatus(line string) string {
	if strings.HasPrefix(line, "[error]") {
		return errStyle.Render(line)
	}
	return infoStyle.Render(line)
}

// RenderMarkdown renders help text through glamour. On failure the raw
// markdown is still readable, so it is returned untouched.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
