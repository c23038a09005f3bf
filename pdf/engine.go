package pdf

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"time"

	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

// FieldKind declares how a captured group decodes into the context.
type FieldKind int

const (
	Text     FieldKind = iota // trimmed free text
	Number                    // localized decimal number
	Day                       // statement date
	Clock                     // time of day
	Currency                  // ISO-4217 code
)

// CaptureRule is one pattern applied inside a block's section. Named groups
// listed in Fields decode into the shared document context; OnMatch, if
// set, runs after each successful match with the freshly decoded fields.
type CaptureRule struct {
	Name     string
	Pattern  *regexp.Regexp
	Fields   map[string]FieldKind
	Optional bool // a missing match is not an error
	Repeat   bool // apply to every match in the section, not just the first
	OnMatch  Action
}

// BlockDef bounds the section of text its rules are allowed to match
// within. The section starts at the Begin match and extends through the End
// match, or to the end of the document when End is nil or absent.
type BlockDef struct {
	Name     string
	Begin    *regexp.Regexp
	End      *regexp.Regexp
	Required bool
	Rules    []CaptureRule
}

// DocType is one kind of statement an institution produces: a marker the
// document must contain, the blocks to decode, and the builder that turns
// the decoded context into items. The builder is queued and runs after all
// blocks resolved, together with any actions the rules deferred.
type DocType struct {
	Name   string
	Match  *regexp.Regexp
	Blocks []BlockDef
	Build  Action
}

// Definition is an institution's complete catalog of document types.
// It is immutable and safe to share; all per-document state lives in the
// Context.
type Definition struct {
	label string
	types []DocType
}

// NewDefinition assembles an institution catalog.
func NewDefinition(label string, types ...DocType) *Definition {
	return &Definition{label: label, types: types}
}

// Action is a deferred step operating on the decoded context.
type Action func(*Context) error

// Context is the per-document field store shared by all rules of a
// document type, plus the queues the rules and builders fill: units
// collected from repeated tax/fee lines, deferred actions, emitted items
// and collected errors.
type Context struct {
	doc     Document
	fields  map[string]any
	units   []statements.Unit
	actions []Action
	items   []statements.Item
	errs    []error
}

func newContext(doc Document) *Context {
	return &Context{doc: doc, fields: make(map[string]any)}
}

// Doc returns the document under extraction.
func (c *Context) Doc() Document { return c.doc }

// Has reports whether the named field was captured.
func (c *Context) Has(name string) bool { _, ok := c.fields[name]; return ok }

// Text returns a captured free-text field, "" when absent.
func (c *Context) Text(name string) string {
	v, _ := c.fields[name].(string)
	return v
}

// Number returns a captured numeric field, zero when absent.
func (c *Context) Number(name string) decimal.Decimal {
	v, _ := c.fields[name].(decimal.Decimal)
	return v
}

// Quantity returns a captured numeric field as a share count.
func (c *Context) Quantity(name string) statements.Quantity {
	return statements.Q(c.Number(name))
}

// Day returns a captured date field.
func (c *Context) Day(name string) statements.Date {
	v, _ := c.fields[name].(statements.Date)
	return v
}

// Clock returns a captured time-of-day field as an offset from midnight.
func (c *Context) Clock(name string) time.Duration {
	v, _ := c.fields[name].(time.Duration)
	return v
}

// Currency returns a captured currency-code field, "" when absent.
func (c *Context) Currency(name string) string {
	v, _ := c.fields[name].(string)
	return v
}

// Amount combines a currency field and a number field into a Money.
func (c *Context) Amount(currencyField, numberField string) statements.Money {
	return statements.M(c.Number(numberField), c.Currency(currencyField))
}

// DateTime combines a date field and an optional time-of-day field.
func (c *Context) DateTime(dayField, clockField string) time.Time {
	return c.Day(dayField).Time().Add(c.Clock(clockField))
}

// AddUnit queues a sub-amount collected by a repeated rule for the builder.
func (c *Context) AddUnit(u statements.Unit) { c.units = append(c.units, u) }

// Units returns the queued sub-amounts in capture order.
func (c *Context) Units() []statements.Unit { return c.units }

// Defer queues an action to run after all blocks of the type resolved.
func (c *Context) Defer(a Action) { c.actions = append(c.actions, a) }

// Emit appends items to the extraction result.
func (c *Context) Emit(items ...statements.Item) { c.items = append(c.items, items...) }

// Error collects a non-fatal extraction failure.
func (c *Context) Error(err error) { c.errs = append(c.errs, err) }

// Label implements Extractor.
func (d *Definition) Label() string { return d.label }

// Extract implements Extractor. Every matching document type runs with a
// fresh context; items from all types are resolved against the catalog in
// emission order. A programmer-error panic (currency mismatch, negative
// shares) aborts this document only and surfaces as a single fatal error.
func (d *Definition) Extract(doc Document, catalog *statements.Catalog) (items []statements.Item, errs []error) {
	defer func() {
		if r := recover(); r != nil {
			items, errs = nil, []error{fmt.Errorf("%s: extraction aborted: %v", doc.Name, r)}
		}
	}()

	text := doc.Text()
	var collected []statements.Item
	for i := range d.types {
		t := &d.types[i]
		if !t.Match.MatchString(text) {
			continue
		}
		ctx := newContext(doc)
		d.runType(t, text, ctx)
		collected = append(collected, ctx.items...)
		errs = append(errs, ctx.errs...)
	}
	return statements.Resolve(catalog, collected), errs
}

// runType decodes all blocks of one document type and, unless a required
// block failed, runs the deferred actions and the builder.
func (d *Definition) runType(t *DocType, text string, ctx *Context) {
	failed := false
	for i := range t.Blocks {
		b := &t.Blocks[i]
		section, ok := d.section(text, b)
		if !ok {
			if b.Required {
				ctx.Error(&StructuralError{Doc: ctx.doc.Name, Block: b.Name})
				failed = true
			}
			continue
		}
		if !d.runBlock(ctx, b, section) && b.Required {
			failed = true
		}
	}
	if failed {
		return
	}
	if t.Build != nil {
		ctx.Defer(t.Build)
	}
	for _, act := range ctx.actions {
		if err := act(ctx); err != nil {
			ctx.Error(err)
		}
	}
}

// section bounds the text a block's rules may match within.
func (d *Definition) section(text string, b *BlockDef) (string, bool) {
	loc := b.Begin.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	if b.End == nil {
		return text[loc[0]:], true
	}
	end := b.End.FindStringIndex(text[loc[1]:])
	if end == nil {
		return text[loc[0]:], true
	}
	return text[loc[0] : loc[1]+end[1]], true
}

// runBlock applies the rules in order. It reports false when a required
// rule found no match or a capture failed to decode, aborting this block's
// construction while other blocks still run.
func (d *Definition) runBlock(ctx *Context, b *BlockDef, section string) bool {
	for i := range b.Rules {
		r := &b.Rules[i]
		var matches [][]string
		if r.Repeat {
			matches = r.Pattern.FindAllStringSubmatch(section, -1)
		} else if m := r.Pattern.FindStringSubmatch(section); m != nil {
			matches = [][]string{m}
		}
		if len(matches) == 0 {
			if r.Optional {
				continue
			}
			ctx.Error(&StructuralError{Doc: ctx.doc.Name, Block: b.Name, Rule: r.Name})
			return false
		}
		for _, m := range matches {
			if !d.decodeMatch(ctx, b, r, m) {
				return false
			}
			if r.OnMatch != nil {
				if err := r.OnMatch(ctx); err != nil {
					ctx.Error(err)
					return false
				}
			}
		}
	}
	return true
}

// decodeMatch decodes every declared group of one match into the context.
// Fields are visited in name order so the same malformed document always
// reports the same decode error.
func (d *Definition) decodeMatch(ctx *Context, b *BlockDef, r *CaptureRule, match []string) bool {
	for _, field := range slices.Sorted(maps.Keys(r.Fields)) {
		kind := r.Fields[field]
		idx := r.Pattern.SubexpIndex(field)
		if idx < 0 || idx >= len(match) {
			continue
		}
		capture := match[idx]
		if capture == "" {
			continue // optional group not present in this match
		}
		value, err := decodeField(kind, capture)
		if err != nil {
			ctx.Error(&DecodeError{Doc: ctx.doc.Name, Rule: r.Name, Field: field, Capture: capture, Err: err})
			return false
		}
		ctx.fields[field] = value
	}
	return true
}
