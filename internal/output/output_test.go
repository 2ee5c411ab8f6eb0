package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/classify"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/views"
)

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
	assert.False(t, f.NoNewline)
	assert.False(t, f.IsJSON())
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_format_disables_color", func(t *testing.T) {
		f := &Formatter{Format: FormatPlain, ColorMode: ColorAlways}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{
			Writer:    &buf,
			ColorMode: ColorAuto,
		}
		// Buffer is not a terminal
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrinting(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("a")
	f.Println("b")
	f.Printf("%d", 3)
	assert.Equal(t, "ab\n3", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.JSON(map[string]int{"radios": 2}))
	assert.Equal(t, "{\n  \"radios\": 2\n}\n", buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m 30s"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", FormatRelative(time.Time{}, now))
	assert.Equal(t, "3 minutes ago", FormatRelative(now.Add(-3*time.Minute), now))
	assert.Equal(t, "2 hours from now", FormatRelative(now.Add(2*time.Hour), now))
}

func TestFormatBytesAndCount(t *testing.T) {
	assert.Equal(t, "10 MiB", FormatBytes(10*1024*1024))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestFormatStamp(t *testing.T) {
	stamp := time.Date(2026, 3, 4, 10, 30, 0, 0, time.Local).Format(time.RFC3339)
	assert.Equal(t, "2026-03-04 10:30", FormatStamp(stamp))
	assert.Equal(t, "yesterday", FormatStamp("yesterday"))
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

func newCLI(mode ColorMode) (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCLIFormatter(&Formatter{Writer: &buf, ColorMode: mode}), &buf
}

func TestCLIFormatterMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(*CLIFormatter)
		want  string
	}{
		{"title", func(c *CLIFormatter) { c.Title("Rádios") }, "Rádios\n"},
		{"success", func(c *CLIFormatter) { c.Success("saved") }, "✓ saved\n"},
		{"warning", func(c *CLIFormatter) { c.Warning("not durable") }, "⚠ not durable\n"},
		{"error", func(c *CLIFormatter) { c.Error("failed") }, "✗ failed\n"},
		{"muted", func(c *CLIFormatter) { c.Muted("nothing here") }, "nothing here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, buf := newCLI(ColorNever)
			tt.print(cli)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestCLIFormatterStatus(t *testing.T) {
	cli, _ := newCLI(ColorNever)

	assert.Empty(t, cli.Status(nil))
	assert.Equal(t, "Faltam 3 dias", cli.Status(&classify.Status{Level: classify.LevelUrgent, Label: "Faltam 3 dias", Days: 3}))
	assert.Equal(t, "custom", cli.Status(&classify.Status{Level: classify.Level("custom"), Label: "custom"}))

	colored, _ := newCLI(ColorAlways)
	assert.Contains(t, colored.Status(&classify.Status{Level: classify.LevelReleased, Label: "Lançado"}), "Lançado")
}

func TestCLIFormatterField(t *testing.T) {
	cli, buf := newCLI(ColorNever)

	cli.Field("Cidade", "Campinas")
	cli.Field("Slogan", "  ")

	out := buf.String()
	assert.Contains(t, out, "Cidade:")
	assert.Contains(t, out, "Campinas")
	assert.NotContains(t, out, "Slogan")
}

func TestCLIFormatterTable(t *testing.T) {
	t.Run("with_rows", func(t *testing.T) {
		cli, buf := newCLI(ColorNever)

		headers := []string{"Nome", "Cidade", "Valor"}
		rows := []TableRow{
			{Columns: []string{"Rádio Sol", "Campinas", "R$ 1.500,00"}},
			{Columns: []string{"Rádio Lua"}},
		}

		cli.PrintTable(headers, rows, AlignLeft, AlignLeft, AlignRight)
		out := buf.String()

		assert.Contains(t, out, "Nome")
		assert.NotContains(t, out, "NOME")
		assert.Contains(t, out, "Rádio Sol")
		assert.Contains(t, out, "Rádio Lua")
		assert.Contains(t, out, "R$ 1.500,00")
		assert.Contains(t, out, "─")
	})

	t.Run("extra_columns_dropped", func(t *testing.T) {
		cli, _ := newCLI(ColorNever)
		out := cli.Table([]string{"Nome"}, []TableRow{{Columns: []string{"a", "overflow"}}})
		assert.NotContains(t, out, "overflow")
	})

	t.Run("no_headers", func(t *testing.T) {
		cli, _ := newCLI(ColorNever)
		assert.Empty(t, cli.Table(nil, []TableRow{{Columns: []string{"a"}}}))
	})

	t.Run("empty_rows", func(t *testing.T) {
		cli, buf := newCLI(ColorNever)
		cli.PrintTable([]string{"Nome"}, []TableRow{})
		assert.Empty(t, buf.String())
	})
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func TestNewJSONFormatter(t *testing.T) {
	f := NewFormatter()
	jf := NewJSONFormatter(f)
	assert.NotNil(t, jf)
	assert.Equal(t, f, jf.Formatter)
}

func TestJSONFormatterPrintError(t *testing.T) {
	var buf bytes.Buffer
	jf := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	require.NoError(t, jf.PrintError(errors.New("radio not found"), "lookup failed", "Run 'controleplus radio list'"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "radio not found", resp.Error)
	assert.Equal(t, "lookup failed", resp.Message)
	assert.Equal(t, "Run 'controleplus radio list'", resp.Suggestion)
}

func TestJSONFormatterPrintList(t *testing.T) {
	var buf bytes.Buffer
	jf := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	radios := []model.RadioStation{{ID: "r1", StationInfo: model.StationInfo{Name: "Rádio Sol"}}}
	require.NoError(t, jf.PrintList("radios", radios, len(radios)))

	var resp struct {
		Kind  string               `json:"kind"`
		Count int                  `json:"count"`
		Items []model.RadioStation `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "radios", resp.Kind)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Rádio Sol", resp.Items[0].Name)
}

func TestNewDashboardResponse(t *testing.T) {
	stats := views.Stats{Radios: 3, Artists: 2, Submissions: 1}
	releases := []views.Release{
		{
			Music:      model.Music{ID: "m1", Title: "Saudade", ReleaseDate: "2026-03-06"},
			ArtistName: "Ana",
			Status:     &classify.Status{Level: classify.LevelUrgent, Label: "Faltam 2 dias", Days: 2},
		},
		{Music: model.Music{ID: "m2", Title: "Sem data"}, ArtistName: "Bia"},
	}

	resp := NewDashboardResponse(stats, releases)
	assert.Equal(t, 3, resp.Stats.Radios)
	assert.Equal(t, 1, resp.Stats.Submissions)
	require.Len(t, resp.Releases, 2)
	assert.Equal(t, "urgent", resp.Releases[0].Level)
	assert.Equal(t, 2, resp.Releases[0].DaysLeft)
	assert.Empty(t, resp.Releases[1].Level)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"pending_submissions":1`))
}

func TestNewDaemonOutput(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	stopped := NewDaemonOutput(0, time.Time{}, now)
	assert.False(t, stopped.Running)

	running := NewDaemonOutput(4242, now.Add(-90*time.Minute), now)
	assert.True(t, running.Running)
	assert.Equal(t, 4242, running.PID)
	assert.Equal(t, "1h 30m", running.Uptime)
}
