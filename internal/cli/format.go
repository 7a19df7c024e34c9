package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/mapimp/internal/importlist"
	"github.com/danieljhkim/mapimp/internal/planner"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// initColors honors NO_COLOR on top of fatih/color's own TTY detection.
func initColors() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}
}

// PrintSection prints a section header
func PrintSection(title string) {
	initColors()
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	initColors()
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	initColors()
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintLabelValue prints an indented "label: value" line.
func PrintLabelValue(label, value string) {
	initColors()
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = dimColor.Println(value)
}

// PrintList prints items as bullets, indented by indent levels.
func PrintList(items []string, indent int) {
	initColors()
	pad := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Printf("%s• %s\n", pad, item)
	}
}

// PrintTable prints rows under headers with columns padded to the widest
// cell. Cells beyond the header count are dropped.
func PrintTable(headers []string, rows [][]string) {
	initColors()
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}

	printRow(headerColor, widths, headers)
	printRow(dimColor, widths, rules)
	for _, row := range rows {
		printRow(nil, widths, row)
	}
}

func printRow(c *color.Color, widths []int, cells []string) {
	padded := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	line := "  " + strings.TrimRight(strings.Join(padded, "  "), " ")
	if c == nil {
		fmt.Println(line)
		return
	}
	_, _ = c.Println(line)
}

// PrintEmptyState prints a dimmed placeholder line.
func PrintEmptyState(msg string) {
	initColors()
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintCount returns "n singular" or "n plural".
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// entryRows renders entries for PrintTable as PATH, TYPE, STATE, SOURCE.
func entryRows(entries []*importlist.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		kind := "standard"
		if e.Custom {
			kind = "custom"
		}
		rows = append(rows, []string{e.FullPath(), kind, entryState(e), e.DiskPath})
	}
	return rows
}

func entryState(e *importlist.Entry) string {
	switch {
	case e.Deleted:
		return "deleted"
	case !e.Archived():
		return "new"
	case e.DiskPath != "":
		return "replaced"
	case e.Changed:
		return "moved"
	default:
		return "saved"
	}
}

// operationLines describes plan operations, one line each.
func operationLines(ops []planner.Operation) []string {
	lines := make([]string, len(ops))
	for i, op := range ops {
		switch op.Type {
		case planner.OpRemove:
			lines[i] = fmt.Sprintf("remove %s", op.Source)
		default:
			lines[i] = fmt.Sprintf("%s %s -> %s", op.Type, op.Source, op.Target)
		}
	}
	return lines
}
