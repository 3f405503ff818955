package controller

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/litrep/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Padding(1, 0, 0, 2)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 0, 1, 2)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Align(lipgloss.Center)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("8"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("6")).Margin(0, 1).Padding(0, 1)
)

// listModel browses the files `litrep list` found.
type listModel struct {
	width        int
	height       int
	fileList     list.Model
	delegate     fileDelegate
	literals     int
	files        int
	failed       int
	rendered     bool
	animOffset   int
	lastSelected int
}

func newListModel() listModel {
	delegate := fileDelegate{}

	return listModel{
		fileList:     newFileList(delegate, "Filter by path…"),
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (lm listModel) Init() tea.Cmd {
	return tick(time.Second / 2)
}

func (lm listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		lm.width = msg.Width
		lm.height = msg.Height
		lm.fileList.SetWidth(lm.width)

	case tickMsg:
		if lm.fileList.FilterState() != list.Filtering && lm.rendered {
			lm.animOffset++
			lm.delegate.offset = lm.animOffset
			lm.fileList.SetDelegate(lm.delegate)

			return lm, tick(150 * time.Millisecond)
		}

		return lm, nil

	case tea.KeyMsg:
		if quitKey(msg, lm.fileList) {
			return lm, tea.Quit
		}

		lm.fileList, cmd = lm.fileList.Update(msg)

		if lm.fileList.Index() != lm.lastSelected {
			lm.lastSelected = lm.fileList.Index()
			lm.animOffset = 0
			lm.delegate.offset = 0
			lm.fileList.SetDelegate(lm.delegate)
		}

		return lm, cmd

	case estimationMsg:
		lm = lm.handleEstimationMsg(msg)
	}

	return lm, cmd
}

func (lm listModel) handleEstimationMsg(msg estimationMsg) listModel {
	reports := append([]m.FileReport(nil), msg.reports...)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Source.Origin < reports[j].Source.Origin
	})

	lm.literals, lm.files, lm.failed = 0, len(reports), 0

	items := make([]list.Item, 0, len(reports))
	for _, report := range reports {
		items = append(items, newFileItem(report))

		lm.literals += report.Replacements
		if report.Status == m.StatusFailed {
			lm.failed++
		}
	}

	lm.fileList.SetItems(items)
	lm.rendered = true

	if len(items) > 0 && lm.lastSelected == -1 {
		lm.lastSelected = 0
	}

	return lm
}

func (lm listModel) View() string {
	if !lm.rendered {
		return "Scanning source files…\n"
	}

	title := titleStyle.Render("litrep · replaceable literals")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Literals: %s   Files: %s   Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", lm.literals)),
		accentStyle.Render(fmt.Sprintf("%d", lm.files)),
		accentStyle.Render(fmt.Sprintf("%d", lm.failed)),
	))

	footer := footerStyle.Width(lm.width).Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, lm.renderTable(), footer)
}

func (lm listModel) renderTable() string {
	// title (2), summary (2), footer (1), border (2), header (2)
	listHeight := max(lm.height-9, 5)
	// margin (2), border (2), padding (2)
	listWidth := lm.width - 6

	lm.fileList.SetHeight(listHeight)
	lm.fileList.SetWidth(listWidth)

	headers := headerStyle.Width(listWidth).Render(fmt.Sprintf("%6s  %s", "Count", "File Path"))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headers, lm.fileList.View()))
}
