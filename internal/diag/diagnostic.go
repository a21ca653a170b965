package diag

import (
	"fmt"
	"sort"
)

// Stage identifies which frontend phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalRune            Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerUnterminatedDocComment Code = "LEXER_UNTERMINATED_DOC_COMMENT"

	// Parser errors
	CodeParseExpectedToken      Code = "PARSE_EXPECTED_TOKEN"
	CodeParseUnexpectedToken    Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseTheoryNameMismatch Code = "PARSE_THEORY_NAME_MISMATCH"
	CodeParseMisplacedElse      Code = "PARSE_MISPLACED_ELSE"
	CodeParseDuplicateName      Code = "PARSE_DUPLICATE_NAME"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Before reports whether s starts strictly before other in the source.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

// Diagnostic is a frontend diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Help     string   // optional suggestion for fixing the problem
	Related  []Span   // optional related locations (e.g. the opening name)
	Notes    []string // additional notes to display
}

// WithHelp returns a copy of the diagnostic with help text attached.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithRelated returns a copy of the diagnostic with a related span added.
func (d Diagnostic) WithRelated(span Span) Diagnostic {
	d.Related = append(d.Related, span)
	return d
}

// WithNote returns a copy of the diagnostic with a note added.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// SortByPosition orders diagnostics by source position, stably, so a report
// reads top to bottom regardless of which stage produced each entry.
func SortByPosition(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Before(diags[j].Span)
	})
}

// HasErrors reports whether any diagnostic in the list is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
