package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/core/snapshot"
)

// NewViewCommand creates the view command
func NewViewCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a published mod list",
		Long: `Open a published mod list in an interactive terminal browser.

Without an argument the configured output path is opened.

Controls: [↑↓/jk] Navigate | [/] Filter | [g/G] Top/Bottom | [q] Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				config, err := loadConfiguration(cmd, container)
				if err != nil {
					return err
				}
				path = config.OutputPath
			}

			return runView(cmd, path)
		},
	}

	return cmd
}

func runView(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mod list: %w", err)
	}

	snap, err := snapshot.DecodeBytes(data)
	if err != nil {
		return fmt.Errorf("failed to parse mod list %s: %w", path, err)
	}

	program := tea.NewProgram(newViewModel(path, snap),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	return nil
}

// viewModel holds the state for the Bubble Tea mod list browser
type viewModel struct {
	path      string
	records   []component.Record
	visible   []int
	cursor    int
	offset    int
	filter    string
	filtering bool
	width     int
	height    int
}

func newViewModel(path string, snap component.Snapshot) viewModel {
	m := viewModel{
		path:    path,
		records: snap.Records(),
	}
	m.applyFilter()
	return m
}

// Init implements the Bubble Tea init method
func (m viewModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}

		case "g", "home":
			m.cursor = 0

		case "G", "end":
			m.cursor = max(len(m.visible)-1, 0)

		case "/":
			m.filtering = true

		case "esc":
			m.filter = ""
			m.applyFilter()
		}

		m.scrollToCursor()
	}

	return m, nil
}

func (m viewModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		m.filtering = false

	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.applyFilter()

	case tea.KeyBackspace:
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.applyFilter()
		}

	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
		m.applyFilter()
	}

	return m, nil
}

// applyFilter recomputes the visible rows. Matching is a case-insensitive
// substring test on name and id.
func (m *viewModel) applyFilter() {
	needle := strings.ToLower(m.filter)
	m.visible = make([]int, 0, len(m.records))
	for i, record := range m.records {
		if needle == "" ||
			strings.Contains(strings.ToLower(record.Name), needle) ||
			strings.Contains(strings.ToLower(record.ID), needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m viewModel) pageSize() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-8, 1) // header, detail and footer
}

func (m *viewModel) scrollToCursor() {
	size := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+size {
		m.offset = m.cursor - size + 1
	}
}

// selected returns the record under the cursor
func (m viewModel) selected() (component.Record, bool) {
	if len(m.visible) == 0 {
		return component.Record{}, false
	}
	return m.records[m.visible[m.cursor]], true
}

// View implements the Bubble Tea view method
func (m viewModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderRows(),
		m.renderDetail(),
		m.renderFooter(),
	)
}

func (m viewModel) renderHeader() string {
	title := titleStyle.Render("Mod List")
	info := fmt.Sprintf("%s | %d of %d mods", m.path, len(m.visible), len(m.records))

	line := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", info)
	if m.filtering || m.filter != "" {
		cursor := ""
		if m.filtering {
			cursor = "_"
		}
		line = lipgloss.JoinVertical(lipgloss.Left, line, fmt.Sprintf("Filter: %s%s", m.filter, cursor))
	}
	return line
}

func (m viewModel) renderRows() string {
	if len(m.visible) == 0 {
		return mutedStyle.Render("\n  No mods match.\n")
	}

	rows := []string{headerStyle.Render(fmt.Sprintf("  "+rowFormat, "NAME", "VERSION", "ID"))}

	end := min(m.offset+m.pageSize(), len(m.visible))
	for i := m.offset; i < end; i++ {
		row := formatRecordRow(m.records[m.visible[i]])
		if i == m.cursor {
			rows = append(rows, selectedStyle.Render("> "+row))
		} else {
			rows = append(rows, "  "+row)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m viewModel) renderDetail() string {
	record, ok := m.selected()
	if !ok {
		return ""
	}

	summary := singleLine(record.Summary)
	if summary == "" {
		summary = "(no summary)"
	}
	if m.width > 4 {
		summary = truncateString(summary, m.width-2)
	}

	return mutedStyle.Render(fmt.Sprintf("\n%s %s\n%s", record.Name, record.Version, summary))
}

func (m viewModel) renderFooter() string {
	return mutedStyle.Render("Controls: [↑↓] Navigate | [/] Filter | [Esc] Clear | [q] Quit")
}
