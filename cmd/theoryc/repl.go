package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/parser"
)

const (
	historyFile = ".theoryc_history"
	promptMain  = "theoryc> "
	promptCont  = "     ... "
	replName    = "<repl>"
)

func runRepl() int {
	fmt.Println("theoryc interactive session. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		src, ok := readTheory(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		thy, diags := parser.ParseSource(src, parser.WithFilename(replName))

		f := diag.NewFormatterTo(os.Stdout)
		f.AddSource(replName, src)
		f.FormatAll(diags)

		if !diag.HasErrors(diags) && thy.Name != nil {
			fmt.Printf("%s: %d parameter(s), %d import(s), %d declaration(s)\n",
				thy.Name.Name, len(thy.Params), len(thy.Imports), len(thy.Decls))
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readTheory accumulates lines until the buffer parses without stopping at
// end of input, so a theory can be typed across multiple prompts.
func readTheory(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", true
		}

		if b.Len() == 0 && strings.TrimSpace(line) == "" {
			return line, true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether every parse error sits at the end of the input,
// meaning more lines could still complete the theory.
func incomplete(src string) bool {
	_, diags := parser.ParseSource(src)

	sawError := false
	end := len([]rune(src))
	for _, d := range diags {
		if d.Severity != diag.SeverityError {
			continue
		}
		sawError = true
		if d.Span.Start < end {
			return false
		}
	}
	return sawError
}
