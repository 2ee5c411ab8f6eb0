package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/manav03panchal/controleplus/internal/classify"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorInfo    = lipgloss.Color("#3B82F6") // Blue
	colorOrange  = lipgloss.Color("#F97316")

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(18)
)

// levelStyles maps a status level to its badge color.
var levelStyles = map[classify.Level]lipgloss.Style{
	classify.LevelCritical:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
	classify.LevelUrgent:    lipgloss.NewStyle().Foreground(colorError),
	classify.LevelToday:     lipgloss.NewStyle().Bold(true).Foreground(colorOrange),
	classify.LevelSoon:      lipgloss.NewStyle().Foreground(colorOrange),
	classify.LevelWarning:   lipgloss.NewStyle().Foreground(colorWarning),
	classify.LevelScheduled: lipgloss.NewStyle().Foreground(colorInfo),
	classify.LevelLater:     lipgloss.NewStyle().Foreground(colorInfo),
	classify.LevelOK:        lipgloss.NewStyle().Foreground(colorSuccess),
	classify.LevelReleased:  lipgloss.NewStyle().Foreground(colorSuccess),
	classify.LevelDone:      lipgloss.NewStyle().Foreground(colorMuted),
	classify.LevelEnded:     lipgloss.NewStyle().Foreground(colorMuted),
	classify.LevelExpired:   lipgloss.NewStyle().Foreground(colorMuted),
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, s string) string {
	if c.IsColorEnabled() {
		return style.Render(s)
	}
	return s
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Bold formats text in bold.
func (c *CLIFormatter) Bold(text string) string {
	return c.render(styleBold, text)
}

// Status formats a classified date as a colored badge. A nil status renders
// as an empty string.
func (c *CLIFormatter) Status(s *classify.Status) string {
	if s == nil {
		return ""
	}
	style, ok := levelStyles[s.Level]
	if !ok {
		return s.Label
	}
	return c.render(style, s.Label)
}

// Field prints one "label  value" line of a detail view. Empty values are
// skipped.
func (c *CLIFormatter) Field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if c.IsColorEnabled() {
		c.Printf("  %s %s\n", styleLabel.Render(label+":"), value)
		return
	}
	c.Printf("  %-18s %s\n", label+":", value)
}

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableRow is one row of a table.
type TableRow struct {
	Columns []string
}

// Table renders rows under headers. Rows shorter than the header are padded;
// extra columns are dropped.
func (c *CLIFormatter) Table(headers []string, rows []TableRow, aligns ...Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if c.IsColorEnabled() {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.Bold}
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row.Columns) {
				r[i] = row.Columns[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// PrintTable prints a table, or nothing when there are no rows.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow, aligns ...Align) {
	if len(rows) == 0 {
		return
	}
	c.Println(c.Table(headers, rows, aligns...))
}
