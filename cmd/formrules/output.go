package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/randalmurphal/formrules/pkg/formrules"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	fieldColor = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
)

// printReport writes a human-readable validation report.
func printReport(w io.Writer, report *formrules.Report) {
	if report.Valid() {
		okColor.Fprintln(w, "✓ valid")
		return
	}
	failColor.Fprintf(w, "✗ invalid (%d fields)\n", len(report.Messages))
	for _, e := range report.Errors() {
		fmt.Fprintf(w, "  %s: %s\n", fieldColor.Sprint(e.Field), e.Message)
	}
}

// printError writes a command error in red.
func printError(w io.Writer, err error) {
	failColor.Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}
