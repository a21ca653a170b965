package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with source code snippets and underlines.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string // source text by filename
}

// NewFormatter creates a formatter writing to stderr.
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stderr)
}

// NewFormatterTo creates a formatter writing to the given writer.
func NewFormatterTo(out io.Writer) *Formatter {
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers source text for a filename so spans into it can be
// rendered without touching the filesystem (REPL input, tests).
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format prints a single diagnostic with a source snippet when available.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if !d.Span.IsValid() {
		f.printFooter(d)
		return
	}

	src, err := f.LoadSource(d.Span.Filename)
	if err != nil || src == "" {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
		f.printFooter(d)
		return
	}

	f.printSnippet(src, d.Span)
	f.printFooter(d)
}

// FormatAll prints every diagnostic in order.
func (f *Formatter) FormatAll(diags []Diagnostic) {
	for _, d := range diags {
		f.Format(d)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the offending line with an underline beneath the span.
func (f *Formatter) printSnippet(src string, span Span) {
	lines := strings.Split(src, "\n")
	if span.Line < 1 || span.Line > len(lines) {
		fmt.Fprintf(f.out, "  --> %s\n", span.String())
		return
	}

	lineContent := lines[span.Line-1]
	lineNumWidth := len(fmt.Sprintf("%d", span.Line))

	fmt.Fprintf(f.out, "  --> %s\n", span.String())
	fmt.Fprintf(f.out, "   %s |\n", strings.Repeat(" ", lineNumWidth))
	fmt.Fprintf(f.out, " %d | %s\n", span.Line, lineContent)

	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	if span.Column-1+width > len(lineContent) {
		width = max(1, len(lineContent)-(span.Column-1))
	}
	pad := strings.Repeat(" ", max(0, span.Column-1))
	fmt.Fprintf(f.out, "   %s | %s%s\n", strings.Repeat(" ", lineNumWidth), pad, strings.Repeat("^", width))
}

// printFooter prints related locations, notes and help text.
func (f *Formatter) printFooter(d Diagnostic) {
	for _, related := range d.Related {
		if related.IsValid() {
			fmt.Fprintf(f.out, "  = note: related location at %s\n", related.String())
		}
	}
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}
