package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"modlist.dev/cli/internal/core/component"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240"))
)

const rowFormat = "%-28s │ %-16s │ %s"

// renderRecordTable renders records as an aligned table
func renderRecordTable(records []component.Record) string {
	if len(records) == 0 {
		return mutedStyle.Render("No components to display.")
	}

	rows := []string{headerStyle.Render(fmt.Sprintf(rowFormat, "NAME", "VERSION", "ID"))}
	for _, record := range records {
		rows = append(rows, formatRecordRow(record))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatRecordRow(record component.Record) string {
	return fmt.Sprintf(rowFormat,
		truncateString(record.Name, 28),
		truncateString(record.Version, 16),
		record.ID,
	)
}

// truncateString truncates a string to the specified number of runes
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// singleLine collapses whitespace so multi-line summaries fit one row
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
