package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/litrep/internal/model"
)

// fileDelegate renders one file per line: literal count, optional status, path.
type fileDelegate struct {
	offset     int
	showStatus bool
}

func (d fileDelegate) Height() int  { return 1 }
func (d fileDelegate) Spacing() int { return 0 }
func (d fileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d fileDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	// count (6) + spacing (2), status (10) + spacing (2)
	width := lm.Width() - 8
	if d.showStatus {
		width -= 12
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	statusStyle := lipgloss.NewStyle().Foreground(statusColor(file.status)).Width(10)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	displayPath := truncateToWidth(file.path, width)

	if index == lm.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		countStyle = selected.Width(6).Align(lipgloss.Right)
		statusStyle = selected.Width(10)
		pathStyle = selected
		displayPath = animateScroll(file.path, width, d.offset)
	}

	count := fmt.Sprintf("%d", file.count)
	if file.status == m.StatusFailed {
		count = "-"
	}

	line := countStyle.Render(count) + "  "

	if d.showStatus {
		status := string(file.status)
		if file.cached {
			status += "*"
		}

		line += statusStyle.Render(status) + "  "
	}

	_, _ = fmt.Fprint(w, line+pathStyle.Render(displayPath))
}

func statusColor(status m.FileStatus) lipgloss.Color {
	switch status {
	case m.StatusChanged:
		return lipgloss.Color("10")
	case m.StatusFailed:
		return lipgloss.Color("9")
	default:
		return lipgloss.Color("8")
	}
}

func newFileList(delegate fileDelegate, placeholder string) list.Model {
	fileList := list.New([]list.Item{}, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = placeholder

	return fileList
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	// ticks before scrolling starts
	const pause = 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + "   ")
	start := (offset - pause) % len(runes)

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%len(runes)])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// quitKey reports whether msg ends the program; q types into an active filter instead.
func quitKey(msg tea.KeyMsg, fileList list.Model) bool {
	switch msg.String() {
	case "ctrl+c":
		return true
	case "q":
		return fileList.FilterState() != list.Filtering
	}

	return false
}
