package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/implementor/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting at the CLI boundary
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(os.Stderr, verbose)
}

// NewDiagnosticReporterTo creates a reporter writing to out
func NewDiagnosticReporterTo(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with its code, location, context and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.out, "\nERROR: ")
	fmt.Fprintf(r.out, "Implementation Failed\n")
	fmt.Fprintf(r.out, "=====================\n\n")

	implErr, ok := errors.As(err)
	if !ok {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
		return
	}

	header := implErr.ErrorCode().String()
	fmt.Fprintf(r.out, "Type: %s\n", header)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(header)+6))

	message := implErr.Error()
	if base, isBase := implErr.(*errors.BaseError); isBase && !r.verbose {
		message = base.Message
	}
	fmt.Fprintf(r.out, "Message: %s\n\n", message)

	if loc := implErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}

	if ctx := implErr.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := implErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(implErr.Unwrap())
	} else {
		fmt.Fprintf(r.out, "Run with -verbose for the underlying cause.\n")
	}
}

// printContext prints context entries, the target type first
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"type", "path", "archive", "stage", "workspace"}
	printed := make(map[string]bool)
	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints numbered suggestions, indenting continuation lines
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.out, "   %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	fmt.Fprintf(r.out, "\n")
}
