package diag_test

import (
	"strings"
	"testing"

	"github.com/theorylang/theorylang/internal/diag"
)

func TestSortByPositionIsStable(t *testing.T) {
	diags := []diag.Diagnostic{
		{Message: "third", Span: diag.Span{Line: 3, Column: 1, Start: 20, End: 21}},
		{Message: "first", Span: diag.Span{Line: 1, Column: 1, Start: 0, End: 1}},
		{Message: "second-a", Span: diag.Span{Line: 2, Column: 1, Start: 10, End: 11}},
		{Message: "second-b", Span: diag.Span{Line: 2, Column: 1, Start: 10, End: 11}},
	}

	diag.SortByPosition(diags)

	want := []string{"first", "second-a", "second-b", "third"}
	for i, w := range want {
		if diags[i].Message != w {
			t.Errorf("position %d: expected %q, got %q", i, w, diags[i].Message)
		}
	}
}

func TestHasErrors(t *testing.T) {
	if diag.HasErrors(nil) {
		t.Error("empty list should report no errors")
	}

	warnOnly := []diag.Diagnostic{{Severity: diag.SeverityWarning}}
	if diag.HasErrors(warnOnly) {
		t.Error("warnings alone should not count as errors")
	}

	mixed := append(warnOnly, diag.Diagnostic{Severity: diag.SeverityError})
	if !diag.HasErrors(mixed) {
		t.Error("expected errors to be detected")
	}
}

func TestSpanString(t *testing.T) {
	withFile := diag.Span{Filename: "pump.tl", Line: 3, Column: 7}
	if got := withFile.String(); got != "pump.tl:3:7" {
		t.Errorf("unexpected span string: %q", got)
	}

	bare := diag.Span{Line: 3, Column: 7}
	if got := bare.String(); got != "3:7" {
		t.Errorf("unexpected span string: %q", got)
	}
}

func TestFormatUnderlinesSpan(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatterTo(&buf)
	f.AddSource("pump.tl", "x: nat = (1 +\ny: nat = 2\n")

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedToken,
		Message:  "unexpected token `y` in expression",
		Span:     diag.Span{Filename: "pump.tl", Line: 2, Column: 1, Start: 14, End: 15},
	})

	out := buf.String()
	if !strings.Contains(out, "error[PARSE_UNEXPECTED_TOKEN]: unexpected token `y` in expression") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "--> pump.tl:2:1") {
		t.Errorf("missing location line in:\n%s", out)
	}
	if !strings.Contains(out, "y: nat = 2") {
		t.Errorf("missing source line in:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing underline in:\n%s", out)
	}
}

func TestFormatWithoutSourceFallsBackToLocation(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  "something went wrong",
		Span:     diag.Span{Line: 1, Column: 1, Start: 0, End: 1},
	})

	out := buf.String()
	if !strings.Contains(out, "error: something went wrong") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "--> 1:1") {
		t.Errorf("missing location fallback in:\n%s", out)
	}
}

func TestFormatFooter(t *testing.T) {
	var buf strings.Builder
	f := diag.NewFormatterTo(&buf)

	d := diag.Diagnostic{
		Severity: diag.SeverityError,
		Message:  "closing name does not match",
		Span:     diag.Span{Line: 3, Column: 5, Start: 30, End: 34},
	}
	d = d.WithRelated(diag.Span{Filename: "pump.tl", Line: 1, Column: 1, Start: 0, End: 4})
	d = d.WithNote("theories close with END followed by their own name")
	d = d.WithHelp("rename the closing identifier")

	f.Format(d)

	out := buf.String()
	if !strings.Contains(out, "= note: related location at pump.tl:1:1") {
		t.Errorf("missing related location in:\n%s", out)
	}
	if !strings.Contains(out, "= note: theories close with END followed by their own name") {
		t.Errorf("missing note in:\n%s", out)
	}
	if !strings.Contains(out, "help: rename the closing identifier") {
		t.Errorf("missing help in:\n%s", out)
	}
}
