// Package historyui provides the Bubble Tea run-history browser.
package historyui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textmetrics/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// Model implements the Bubble Tea run-history browser.
type Model struct {
	tool string
	runs []model.RunRecord

	runTable table.Model
	detail   viewport.Model

	width      int
	height     int
	showDetail bool
}

// NewModel constructs a history browser for the given tool's runs,
// most recent run selected.
func NewModel(tool string, runs []model.RunRecord) *Model {
	m := &Model{
		tool:   tool,
		runs:   runs,
		detail: viewport.New(0, 0),
	}
	m.runTable = buildRunTable(runs, 10)
	if len(runs) > 0 {
		m.runTable.SetCursor(len(runs) - 1)
	}
	m.runTable.Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			m.showDetail = !m.showDetail
			m.updateLayout()
			return m, nil
		case "esc":
			if m.showDetail {
				m.showDetail = false
				m.updateLayout()
				return m, nil
			}
			return m, tea.Quit
		case "g", "home":
			m.runTable.GotoTop()
		case "G", "end":
			m.runTable.GotoBottom()
		default:
			var cmd tea.Cmd
			m.runTable, cmd = m.runTable.Update(msg)
			m.refreshDetail()
			return m, cmd
		}
		m.refreshDetail()
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	parts := []string{
		titleStyle.Render(fmt.Sprintf("%s history (%d runs)", m.tool, len(m.runs))),
		m.runTable.View(),
	}
	if m.showDetail {
		parts = append(parts, cardStyle.Render(m.detail.View()))
	}
	parts = append(parts, helpStyle.Render("↑/↓ select · enter detail · q quit"))
	return strings.Join(parts, "\n")
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	tableHeight := m.height - 3
	if m.showDetail {
		tableHeight -= detailHeight + 2
	}
	if tableHeight < 2 {
		tableHeight = 2
	}
	m.runTable.SetWidth(m.width)
	m.runTable.SetHeight(tableHeight)
	m.detail.Width = maxInt(10, m.width-4)
	m.detail.Height = detailHeight
	m.refreshDetail()
}

const detailHeight = 8

func (m *Model) refreshDetail() {
	if !m.showDetail {
		return
	}
	cursor := m.runTable.Cursor()
	if cursor < 0 || cursor >= len(m.runs) {
		m.detail.SetContent("No run selected.")
		return
	}
	run := m.runs[cursor]
	rows := []struct {
		label string
		value string
	}{
		{"Tool", run.Tool},
		{"Input", run.InputPath},
		{"Output", run.OutputPath},
		{"Started", run.StartedAt.Local().Format(time.RFC3339)},
		{"Finished", run.FinishedAt.Local().Format(time.RFC3339)},
		{"Valid lines", strconv.Itoa(run.ValidCount)},
		{"Invalid lines", strconv.Itoa(run.InvalidCount)},
		{"Duration", (time.Duration(run.DurationMs) * time.Millisecond).String()},
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(labelStyle.Render(row.label+": ") + valueStyle.Render(row.value))
	}
	m.detail.SetContent(b.String())
}

func buildRunTable(runs []model.RunRecord, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Finished", Width: 19},
		{Title: "Input", Width: 28},
		{Title: "Valid", Width: 7},
		{Title: "Invalid", Width: 7},
		{Title: "Duration", Width: 10},
	}
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, table.Row{
			strconv.FormatInt(run.ID, 10),
			run.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			run.InputPath,
			strconv.Itoa(run.ValidCount),
			strconv.Itoa(run.InvalidCount),
			(time.Duration(run.DurationMs) * time.Millisecond).String(),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height)),
	)
	t.SetStyles(runTableStyles())
	return t
}

func runTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
