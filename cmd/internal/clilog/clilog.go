// Package clilog holds the colored diagnostic output shared by the
// indexer and reader CLIs. The root wikidex library never imports
// github.com/fatih/color directly (spec.md §1 excludes progress
// logging from the core engine); only this package and its callers do.
package clilog

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	progressColor = color.New(color.FgCyan)
	infoColor     = color.New(color.FgGreen)
	errorColor    = color.New(color.FgRed, color.Bold)
)

// Progress prints one line of worker/article progress to stderr.
func Progress(workersFinished, workersTotal, articlesIndexed int) {
	progressColor.Fprintf(os.Stderr, "[%d/%d workers done] %d articles indexed\n",
		workersFinished, workersTotal, articlesIndexed)
}

// Info prints an informational line to stderr.
func Info(msg string) {
	infoColor.Fprintln(os.Stderr, msg)
}

// Fatal prints err to stderr in the CLIs' error color.
func Fatal(err error) {
	errorColor.Fprintf(os.Stderr, "error: %v\n", err)
}

// Fatalf formats and prints an error line to stderr.
func Fatalf(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, "error: %s\n", fmt.Sprintf(format, args...))
}
