// Package pdf extracts transactions from bank statement text.
//
// Statements arrive as one string per page, rendered upstream from the
// original PDF. Each institution gets a Definition: a declarative catalog
// of document types, bounded text blocks and capture rules, all evaluated
// by one shared engine. The definitions are data, not code, so the engine's
// control flow stays uniform across banks and testable without any bank's
// format.
package pdf

import (
	"fmt"
	"strings"

	"github.com/etnz/statements"
)

// Document is one statement: the ordered page texts plus a name used in
// error messages, typically the source file name.
type Document struct {
	Name  string
	Pages []string
}

// NewDocument builds a document from page strings.
func NewDocument(name string, pages ...string) Document {
	return Document{Name: name, Pages: pages}
}

// Text returns the full document text with pages joined by newlines.
func (d Document) Text() string { return strings.Join(d.Pages, "\n") }

// Extractor converts one document into items, resolving securities against
// the caller-owned catalog. All decode, structural and reconciliation
// failures are collected into the returned error list; extraction never
// panics on malformed input.
type Extractor interface {
	Label() string
	Extract(doc Document, catalog *statements.Catalog) ([]statements.Item, []error)
}

// DecodeError reports a captured text fragment that does not parse as its
// declared field kind. It is local to one block; extraction continues.
type DecodeError struct {
	Doc     string
	Rule    string
	Field   string
	Capture string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: rule %s: field %s: cannot decode %q: %v", e.Doc, e.Rule, e.Field, e.Capture, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StructuralError reports a required block or rule whose pattern is absent
// from the document. It aborts only that block's construction.
type StructuralError struct {
	Doc   string
	Block string
	Rule  string
}

func (e *StructuralError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%s: required block %s not found", e.Doc, e.Block)
	}
	return fmt.Sprintf("%s: block %s: required rule %s not matched", e.Doc, e.Block, e.Rule)
}
