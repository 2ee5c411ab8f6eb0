package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/manav03panchal/controleplus/internal/errors"
	"github.com/manav03panchal/controleplus/internal/model"
	"github.com/manav03panchal/controleplus/internal/output"
	"github.com/manav03panchal/controleplus/internal/parser"
	"github.com/manav03panchal/controleplus/internal/runtime"
	"github.com/manav03panchal/controleplus/internal/store"
	"github.com/manav03panchal/controleplus/internal/textutil"
)

// confirm asks a yes/no question on an interactive terminal. yes skips the
// question. Without a terminal it fails with ErrConfirmationRequired, and a
// negative answer returns ErrAborted.
func confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runtime.ErrConfirmationRequired
	}

	fmt.Print(question + " (y/N): ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return nil
	}
	return runtime.ErrAborted
}

// cancelled reports an aborted confirmation as a normal outcome.
func cancelled(err error) error {
	if errors.Is(err, runtime.ErrAborted) {
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}
	return err
}

// splitWarning separates a persistence warning, which leaves the change in
// memory, from a hard failure.
func splitWarning(err error) (warning string, hard error) {
	if err == nil {
		return "", nil
	}
	if store.IsPersistenceWarning(err) {
		return err.Error(), nil
	}
	return "", err
}

func printWarning(warning string) {
	if warning == "" {
		return
	}
	cli := ctx.CLIFormatter()
	cli.Warning(warning)
	cli.Muted(errors.GetSuggestion(errors.ErrNotDurable))
}

// reportSaved prints the outcome of a save.
func reportSaved(kind model.Kind, ids []string, record interface{}, err error) error {
	warning, err := splitWarning(err)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.RecordResponse{
			Status:  "saved",
			Kind:    kind.Tag(),
			IDs:     ids,
			Record:  record,
			Warning: warning,
		})
	}

	cli := ctx.CLIFormatter()
	for _, id := range ids {
		cli.Success(fmt.Sprintf("Saved %s %s", kind.Noun(), id))
	}
	printWarning(warning)
	return nil
}

// reportAction prints the outcome of a lifecycle or maintenance action.
func reportAction(resp output.ActionResponse, message string, err error) error {
	warning, err := splitWarning(err)
	if err != nil {
		return err
	}
	resp.Status = "ok"
	resp.Warning = warning

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(resp)
	}
	ctx.CLIFormatter().Success(message)
	printWarning(warning)
	return nil
}

// parseDate converts a date flag into YYYY-MM-DD.
func parseDate(field, input string) (string, error) {
	date, err := parser.ParseDateField(field, input, ctx.Now())
	if err != nil {
		var dpe *parser.DateParseError
		if errors.As(err, &dpe) {
			return "", dpe.ToUserError()
		}
		return "", err
	}
	return date, nil
}

// notFound is the error for an unknown id.
func notFound(kind model.Kind, id string) error {
	return errors.NotFound(kind.Noun(), id)
}

// orDash returns "-" for blank values in tables.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// shortList joins values for a table cell.
func shortList(values []string) string {
	return orDash(strings.Join(values, ", "))
}

// printList renders items as a JSON list or as a table.
func printList(kind string, items interface{}, count int, headers []string, rows []output.TableRow, aligns ...output.Align) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintList(kind, items, count)
	}
	cli := ctx.CLIFormatter()
	if count == 0 {
		cli.Muted("Nothing found")
		return nil
	}
	cli.PrintTable(headers, rows, aligns...)
	cli.Muted(fmt.Sprintf("%s item(s)", output.FormatCount(count)))
	return nil
}

// printRecord renders a single record as JSON, or runs show for the CLI.
func printRecord(kind model.Kind, record interface{}, show func(cli *output.CLIFormatter)) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.RecordResponse{Status: "ok", Kind: kind.Tag(), Record: record})
	}
	show(ctx.CLIFormatter())
	return nil
}

// archivedMark flags archived records in tables.
func archivedMark(archived bool) string {
	if archived {
		return " (archived)"
	}
	return ""
}

// waLink returns the WhatsApp link of phone, or "" when there is none.
func waLink(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	return textutil.WhatsAppLink(phone)
}
