// Package trivia extracts documentation comments from source text and
// attaches them to the declarations they precede.
package trivia

import (
	"sort"
	"strings"

	"github.com/theorylang/theorylang/internal/ast"
	"github.com/theorylang/theorylang/internal/lexer"
)

// Extract runs a trivia-emitting lexing pass over the source and returns its
// documentation comments in source order. Lexing problems are ignored here;
// the parsing pass over the same input reports them.
func Extract(src, filename string) []*ast.DocComment {
	lx := lexer.NewWithTrivia(src)
	if filename != "" {
		lx.SetFilename(filename)
	}

	var docs []*ast.DocComment
	for {
		tok := lx.NextToken()
		if tok.Type == lexer.EOF {
			return docs
		}
		if tok.Type != lexer.DOC_COMMENT {
			continue
		}
		docs = append(docs, ast.NewDocComment(commentText(tok.Raw), tok.Span))
	}
}

// commentText strips the %%% delimiters and surrounding whitespace from a
// documentation block's raw text.
func commentText(raw string) string {
	text := strings.TrimPrefix(raw, "%%%")
	text = strings.TrimSuffix(text, "%%%")
	return strings.TrimSpace(text)
}

// attachPoint is a place a documentation block can land: the start offset of
// a declaration plus a hook that appends the comment to it.
type attachPoint struct {
	start  int
	attach func(*ast.DocComment)
}

// Attach associates each documentation comment with the syntactic
// declaration immediately following it. Comments before the theory header
// document the theory itself; comments with no following declaration are
// retained as trailing comments so no documentation is silently dropped.
func Attach(thy *ast.Theory, docs []*ast.DocComment) {
	if thy == nil || len(docs) == 0 {
		return
	}

	points := collectPoints(thy)

	headerStart := -1
	if thy.Name != nil {
		headerStart = thy.Name.Span().Start
	}

	for _, doc := range docs {
		end := doc.Span().End

		if headerStart >= 0 && end <= headerStart {
			thy.Docs = append(thy.Docs, doc)
			continue
		}

		idx := sort.Search(len(points), func(i int) bool {
			return points[i].start >= end
		})
		if idx == len(points) {
			thy.TrailingDocs = append(thy.TrailingDocs, doc)
			continue
		}
		points[idx].attach(doc)
	}
}

// collectPoints gathers every attachable declaration in the theory, sorted
// by start offset.
func collectPoints(thy *ast.Theory) []attachPoint {
	var points []attachPoint

	for _, assume := range thy.Assumes {
		points = append(points, attachPoint{assume.Span().Start, assume.AttachDoc})
	}
	for _, imp := range thy.Imports {
		points = append(points, attachPoint{imp.Span().Start, imp.AttachDoc})
	}
	for _, decl := range thy.Decls {
		points = append(points, attachPoint{decl.Span().Start, decl.AttachDoc})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].start < points[j].start
	})

	return points
}
