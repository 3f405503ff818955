package controller

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/litrep/internal/model"
)

// maxWarnings is how many warnings the progress view keeps on screen.
const maxWarnings = 5

// runModel follows `litrep run` file by file, then lists the results.
type runModel struct {
	width        int
	height       int
	progressBar  progress.Model
	total        int
	completed    int
	threads      int
	changed      int
	failed       int
	cached       int
	lastFile     string
	warnings     []string
	rendered     bool
	finished     bool
	results      list.Model
	delegate     fileDelegate
	animOffset   int
	lastSelected int
	showDetail   bool
}

func newRunModel() runModel {
	delegate := fileDelegate{showStatus: true}

	return runModel{
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		results:      newFileList(delegate, "Filter results…"),
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (rm runModel) Init() tea.Cmd {
	return tick(100 * time.Millisecond)
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm = rm.handleWindowSize(msg)

	case tea.KeyMsg:
		rm, cmd = rm.handleKeyMsg(msg)

	case tickMsg:
		return rm.handleTickMsg(msg)

	case runStartMsg:
		rm.total = msg.files
		rm.threads = max(msg.threads, 1)
		rm.rendered = true

	case fileDoneMsg:
		rm = rm.handleFileDone(msg)

	case runDoneMsg:
		rm = rm.handleRunDone(msg)

	case warningMsg:
		rm.warnings = append(rm.warnings, fmt.Sprintf("(%s plugin) %s: %v", msg.plugin, msg.id, msg.err))
		if len(rm.warnings) > maxWarnings {
			rm.warnings = rm.warnings[len(rm.warnings)-maxWarnings:]
		}
	}

	return rm, cmd
}

func (rm runModel) handleFileDone(msg fileDoneMsg) runModel {
	rm.completed++
	rm.lastFile = string(msg.report.Source.Origin)
	rm.count(msg.report)
	rm.rendered = true

	return rm
}

func (rm *runModel) count(report m.FileReport) {
	switch report.Status {
	case m.StatusChanged:
		rm.changed++
	case m.StatusFailed:
		rm.failed++
	}

	if report.Cached {
		rm.cached++
	}
}

func (rm runModel) handleRunDone(msg runDoneMsg) runModel {
	reports := append([]m.FileReport(nil), msg.reports...)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Source.Origin < reports[j].Source.Origin
	})

	// the final reports are authoritative, progress may have been partial
	rm.total, rm.completed = len(reports), len(reports)
	rm.changed, rm.failed, rm.cached = 0, 0, 0

	items := make([]list.Item, 0, len(reports))
	for _, report := range reports {
		items = append(items, newFileItem(report))
		rm.count(report)
	}

	rm.results.SetItems(items)
	rm.rendered = true
	rm.finished = true

	if len(items) > 0 && rm.lastSelected == -1 {
		rm.lastSelected = 0
	}

	return rm
}

func (rm runModel) handleKeyMsg(msg tea.KeyMsg) (runModel, tea.Cmd) {
	if quitKey(msg, rm.results) {
		return rm, tea.Quit
	}

	if !rm.finished {
		return rm, nil
	}

	if rm.results.FilterState() != list.Filtering && (msg.String() == "enter" || msg.String() == " ") {
		rm.showDetail = !rm.showDetail
		return rm, nil
	}

	var cmd tea.Cmd

	rm.results, cmd = rm.results.Update(msg)

	if rm.results.Index() != rm.lastSelected {
		rm.lastSelected = rm.results.Index()
		rm.animOffset = 0
		rm.delegate.offset = 0
		rm.results.SetDelegate(rm.delegate)
		rm.showDetail = false
	}

	return rm, cmd
}

func (rm runModel) handleWindowSize(msg tea.WindowSizeMsg) runModel {
	rm.width = msg.Width
	rm.height = msg.Height
	rm.progressBar.Width = max(rm.width-8, 20)

	return rm
}

func (rm runModel) handleTickMsg(_ tickMsg) (runModel, tea.Cmd) {
	if rm.finished && rm.results.FilterState() != list.Filtering {
		rm.animOffset++
		rm.delegate.offset = rm.animOffset
		rm.results.SetDelegate(rm.delegate)
	}

	return rm, tick(150 * time.Millisecond)
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return float64(rm.completed) / float64(rm.total)
}

func (rm runModel) View() string {
	if !rm.rendered {
		return "Starting run…\n"
	}

	if rm.finished {
		return rm.viewResults()
	}

	return rm.viewProgress()
}

func (rm runModel) viewProgress() string {
	title := titleStyle.Render("litrep · run")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s  •  Workers: %s  •  Changed: %s  •  Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.completed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.total)),
		accentStyle.Render(fmt.Sprintf("%d", rm.threads)),
		accentStyle.Render(fmt.Sprintf("%d", rm.changed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.failed)),
	))

	bar := lipgloss.NewStyle().Padding(0, 2).Render(rm.progressBar.ViewAs(rm.percent()))

	// border (2), padding (2), margin (2)
	width := max(rm.width-6, 10)
	last := "waiting for the first file"

	if rm.lastFile != "" {
		last = truncateToWidth(rm.lastFile, width)
	}

	lines := []string{lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(last)}

	for _, warning := range rm.warnings {
		lines = append(lines, warningStyle.Render(truncateToWidth(warning, width)))
	}

	box := boxStyle.Width(max(rm.width-4, 12)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	footer := footerStyle.Width(rm.width).Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, bar, box, footer)
}

func (rm runModel) viewResults() string {
	title := titleStyle.Render("litrep · run results")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s  •  Changed: %s  •  Failed: %s  •  Cached: %s",
		accentStyle.Render(fmt.Sprintf("%d", rm.total)),
		accentStyle.Render(fmt.Sprintf("%d", rm.changed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.failed)),
		accentStyle.Render(fmt.Sprintf("%d", rm.cached)),
	))

	footer := footerStyle.Width(rm.width).Render("↑/k up • ↓/j down • / filter • enter details • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, rm.renderResults(), footer)
}

func (rm runModel) renderResults() string {
	detail := rm.detail()

	listHeight := max(rm.height-9-lipgloss.Height(detail), 5)
	listWidth := rm.width - 6

	rm.results.SetHeight(listHeight)
	rm.results.SetWidth(listWidth)

	headers := headerStyle.Width(listWidth).Render(fmt.Sprintf("%6s  %-10s  %s", "Count", "Status", "File Path"))
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headers, rm.results.View()))

	if detail == "" {
		return box
	}

	return lipgloss.JoinVertical(lipgloss.Left, box, detail)
}

// detail describes the selected file when enter toggled it on.
func (rm runModel) detail() string {
	if !rm.showDetail {
		return ""
	}

	file, ok := rm.results.SelectedItem().(fileItem)
	if !ok {
		return ""
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(file.path)}

	if file.output != "" {
		lines = append(lines, "output: "+file.output)
	}

	if file.cached {
		lines = append(lines, "served from the result store")
	}

	if file.err != nil {
		lines = append(lines, failedStyle.Render(strings.TrimSpace(file.err.Error())))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
