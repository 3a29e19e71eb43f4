package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/outliner/internal/outline"
)

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Entry is one processed file in a batch summary.
type Entry struct {
	Input    string
	Outline  outline.Outline
	Duration time.Duration
}

// Summary accumulates batch results for the closing report.
type Summary struct {
	entries []Entry
	started time.Time
}

func NewSummary() *Summary {
	return &Summary{started: time.Now()}
}

// Add records one result and prints its status line.
func (s *Summary) Add(w io.Writer, e Entry) {
	s.entries = append(s.entries, e)
	name := filepath.Base(e.Input)
	if e.Outline.Failed() {
		fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("FAIL"), name, dimStyle.Render(e.Outline.Error))
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("OK  "), name,
		dimStyle.Render(fmt.Sprintf("%d headings, %dms", len(e.Outline.Headings), e.Duration.Milliseconds())))
}

// Failed counts the entries that produced the error fallback.
func (s *Summary) Failed() int {
	n := 0
	for _, e := range s.entries {
		if e.Outline.Failed() {
			n++
		}
	}
	return n
}

// Render prints the closing box.
func (s *Summary) Render(w io.Writer) {
	failed := s.Failed()
	headings := 0
	for _, e := range s.entries {
		headings += len(e.Outline.Headings)
	}
	status := successStyle.Render("OK")
	if failed > 0 {
		status = errorStyle.Render(fmt.Sprintf("%d FAILED", failed))
	}
	content := fmt.Sprintf("%s %d  %s %d  %s %.1fs  %s",
		dimStyle.Render("Documents:"), len(s.entries),
		dimStyle.Render("Headings:"), headings,
		dimStyle.Render("Elapsed:"), time.Since(s.started).Seconds(),
		status,
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}
