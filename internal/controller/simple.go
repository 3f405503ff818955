package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/litrep/internal/model"
)

var (
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	diffAddStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	diffDelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	diffHunkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// SimpleUI implements UI by printing to the command's output streams.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
	mu    sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, opts ...Option) *SimpleUI {
	s := &SimpleUI{cmd: cmd}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DisplayEstimation prints the replaceable literal count per file, or the error.
func (s *SimpleUI) DisplayEstimation(reports []m.FileReport, err error) error {
	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	if len(reports) == 0 {
		s.printf("No eligible source files found\n")
		return nil
	}

	reports = sortedReports(reports)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Literals"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, report := range reports {
		count := fmt.Sprintf("%d", report.Replacements)
		if report.Status == m.StatusFailed {
			count = s.style(failedStyle, string(m.StatusFailed))
		}

		table.Append([]string{string(report.Source.Origin), count})

		total += report.Replacements
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayTransform prints one row per processed file and a summary footer.
func (s *SimpleUI) DisplayTransform(reports []m.FileReport) error {
	if len(reports) == 0 {
		s.printf("No eligible source files found\n")
		return nil
	}

	reports = sortedReports(reports)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Literals", "Output"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	var changed, failed, cached int

	for _, report := range reports {
		status := string(report.Status)
		if report.Cached {
			status += " (cached)"
			cached++
		}

		switch report.Status {
		case m.StatusChanged:
			changed++
			status = s.style(changedStyle, status)
		case m.StatusFailed:
			failed++
			status = s.style(failedStyle, status)
		case m.StatusUnchanged:
			status = s.style(unchangedStyle, status)
		}

		table.Append([]string{
			string(report.Source.Origin),
			status,
			fmt.Sprintf("%d", report.Replacements),
			string(report.Output),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		fmt.Sprintf("%d changed", changed),
		fmt.Sprintf("%d failed", failed),
		fmt.Sprintf("%d cached", cached),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayDiff prints a unified diff, colored line by line on a terminal.
func (s *SimpleUI) DisplayDiff(_ m.Path, diff string) {
	if !s.color {
		s.printf("%s", diff)
		return
	}

	var out bytes.Buffer

	for _, line := range strings.SplitAfter(diff, "\n") {
		text := strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			out.WriteString(line)
		case strings.HasPrefix(line, "@@"):
			out.WriteString(diffHunkStyle.Render(text) + "\n")
		case strings.HasPrefix(line, "+"):
			out.WriteString(diffAddStyle.Render(text) + "\n")
		case strings.HasPrefix(line, "-"):
			out.WriteString(diffDelStyle.Render(text) + "\n")
		default:
			out.WriteString(line)
		}
	}

	s.printf("%s", out.String())
}

// DisplayWarning prints a failure a plugin reported to the error stream.
func (s *SimpleUI) DisplayWarning(plugin, id string, err error) {
	msg := fmt.Sprintf("(%s plugin) %s: %v", plugin, id, err)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintln(s.cmd.ErrOrStderr(), s.style(warningStyle, "warning:")+" "+msg)
}

func (s *SimpleUI) style(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}

	return style.Render(text)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func sortedReports(reports []m.FileReport) []m.FileReport {
	sorted := append([]m.FileReport(nil), reports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source.Origin < sorted[j].Source.Origin
	})

	return sorted
}
