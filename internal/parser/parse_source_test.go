package parser_test

import (
	"testing"

	"github.com/theorylang/theorylang/internal/diag"
	"github.com/theorylang/theorylang/internal/parser"
)

func TestParseSourceCleanInput(t *testing.T) {
	thy, diags := parser.ParseSource(`
%%% Infusion pump model. %%%
pump: THEORY
BEGIN
  level: nat = 0
END pump`)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if thy.Name.Name != "pump" {
		t.Errorf("expected theory pump, got %q", thy.Name.Name)
	}
	if len(thy.Docs) != 1 {
		t.Errorf("expected the header doc attached, got %d", len(thy.Docs))
	}
}

func TestParseSourceMergesStages(t *testing.T) {
	// '@' is a lexer error, the missing '=' body a parser error.
	_, diags := parser.ParseSource(`
pump: THEORY
BEGIN
  x: nat = @
END pump`)

	var stages []diag.Stage
	for _, d := range diags {
		stages = append(stages, d.Stage)
	}
	if len(diags) < 2 {
		t.Fatalf("expected diagnostics from both stages, got %v", diags)
	}

	haveLexer, haveParser := false, false
	for _, s := range stages {
		switch s {
		case diag.StageLexer:
			haveLexer = true
		case diag.StageParser:
			haveParser = true
		}
	}
	if !haveLexer || !haveParser {
		t.Errorf("expected lexer and parser diagnostics, got %v", stages)
	}
}

func TestParseSourceOrdersDiagnostics(t *testing.T) {
	_, diags := parser.ParseSource(`
pump: THEORY
BEGIN
  x: nat = @
  y: nat = #
END other`)

	for i := 1; i < len(diags); i++ {
		if diags[i].Span.Before(diags[i-1].Span) {
			t.Errorf("diagnostics out of order at %d: %v before %v", i, diags[i].Span, diags[i-1].Span)
		}
	}
}

func TestParseSourceStampsFilename(t *testing.T) {
	_, diags := parser.ParseSource("pump: THEORY BEGIN x: nat = @ END pump",
		parser.WithFilename("pump.tl"))

	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	for _, d := range diags {
		if d.Span.Filename != "pump.tl" {
			t.Errorf("expected filename on %v", d)
		}
	}
}
