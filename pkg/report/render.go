package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/riceup/riceup/pkg/errors"
	"github.com/riceup/riceup/pkg/report/styles"
)

// Render produces the human-readable summary. Styling is applied only
// when stdout is an interactive terminal with color support.
func Render(r *Report) string {
	return render(r, isTerminalStyled())
}

// RenderPlain produces the summary without any styling.
func RenderPlain(r *Report) string {
	return render(r, false)
}

func isTerminalStyled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.NewOutput(os.Stdout).Profile != termenv.Ascii
}

func render(r *Report, styled bool) string {
	paint := func(style, text string) string {
		if !styled {
			return text
		}
		return styles.Get(style).Render(text)
	}

	var b strings.Builder

	title := "Provisioning summary"
	if r.DryRun {
		title += " (dry run)"
	}
	b.WriteString(paint("Title", title) + "\n")
	if r.Vendor != "" {
		b.WriteString(paint("Muted", "gpu: "+r.Vendor) + "\n")
	}
	b.WriteString("\n")

	for _, res := range r.Results {
		var status string
		switch res.Status {
		case StatusDone:
			status = paint("Done", "done   ")
		case StatusSkipped:
			status = paint("Skipped", "skipped")
		case StatusFailed:
			status = paint("Failed", "FAILED ")
		}

		line := fmt.Sprintf("  %s  %-18s %s", status, paint("Target", res.Target), string(res.Kind))
		if res.Message != "" {
			line += paint("Muted", " ("+res.Message+")")
		}
		if res.Status == StatusFailed && res.Err != nil {
			line += paint("Muted", " ["+string(errors.GetErrorCode(res.Err))+"]")
		}
		b.WriteString(line + "\n")
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		b.WriteString("\n" + paint("Warning", "warnings:") + "\n")
		for _, w := range warnings {
			b.WriteString(paint("Warning", fmt.Sprintf("  %s: %v", w.Target, w.Err)) + "\n")
		}
	}

	if len(r.Backups) > 0 {
		b.WriteString("\n" + paint("Muted", "backed up before overwrite:") + "\n")
		for _, backup := range r.Backups {
			b.WriteString(paint("Muted", "  "+backup) + "\n")
		}
	}

	done, skipped, failed := r.Counts()
	b.WriteString(fmt.Sprintf("\n%d done, %d skipped, %d failed\n", done, skipped, failed))

	if r.Aborted {
		b.WriteString(paint("Failed", "run aborted: a required step failed") + "\n")
	}

	return b.String()
}
