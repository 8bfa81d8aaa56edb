package attr

import (
	"io"
	"log/slog"
	"maps"
	"slices"
)

// Result is the outcome of an edit.
type Result uint8

const (
	Unchanged Result = iota
	Changed
	Failed
)

func (r Result) String() string {
	switch r {
	case Changed:
		return "changed"
	case Failed:
		return "failed"
	}
	return "unchanged"
}

// Modifiable is a validated, addressable root that view models edit through.
type Modifiable interface {
	Lookup(addr Address) (Attribute, bool)
	Resolves(addr Address) bool
	Modify(addr Address, v Attribute) Result
	AddItem(addr Address, item Attribute) Result
	AddRow(addr Address, row []LineAttribute) Result
	DeleteItems(addr Address, offsets []int) Result
	MoveItems(addr Address, from []int, to int) Result
	Errors(addr Address) []string
}

// Group is a named set of fields with their values and free-form metadata.
type Group struct {
	Name       string
	Fields     []Field
	Attributes map[string]Attribute
	Metadata   map[string]string
}

// Document owns an attribute tree and its error bag. It is not safe for
// concurrent use; all edits are expected on the UI goroutine.
type Document struct {
	name     string
	metadata map[string]string
	root     Complex
	bag      ErrorBag
	logger   *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for edit diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.logger = l }
}

// NewDocument builds a document over g. Fields without a value take their
// type's default.
func NewDocument(g Group, opts ...Option) *Document {
	values := maps.Clone(g.Attributes)
	if values == nil {
		values = map[string]Attribute{}
	}
	for _, f := range g.Fields {
		if _, ok := values[f.Name]; !ok {
			values[f.Name] = f.Type.Default()
		}
	}
	d := &Document{
		name:     g.Name,
		metadata: maps.Clone(g.Metadata),
		root:     Complex{Fields: slices.Clone(g.Fields), Values: values},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.bag = Validate(d.root)
	return d
}

func (d *Document) Name() string                { return d.name }
func (d *Document) Metadata() map[string]string { return d.metadata }
func (d *Document) Root() Complex               { return d.root }
func (d *Document) ErrorBag() ErrorBag          { return d.bag }

// Group returns a snapshot of the document as a group.
func (d *Document) Group() Group {
	return Group{
		Name:       d.name,
		Fields:     d.root.Fields,
		Attributes: d.root.Values,
		Metadata:   d.metadata,
	}
}

func (d *Document) Lookup(addr Address) (Attribute, bool) {
	return Lookup(d.root, addr)
}

// LookupRow returns the table row at addr.
func (d *Document) LookupRow(addr Address) ([]LineAttribute, bool) {
	return LookupRow(d.root, addr)
}

func (d *Document) Resolves(addr Address) bool {
	return Resolves(d.root, addr)
}

func (d *Document) Errors(addr Address) []string {
	return d.bag.Errors(addr)
}

// Modify replaces the value at addr. Invalid values are still stored so
// they can be corrected; the result is then Failed and the error bag
// carries the messages. Structural edits only fail when they were not
// applied.
func (d *Document) Modify(addr Address, v Attribute) Result {
	cur, ok := d.Lookup(addr)
	if !ok {
		d.logger.Debug("modify: unresolved address", "addr", addr.String())
		return Failed
	}
	if Equal(cur, v) {
		return Unchanged
	}
	next, ok := Replace(d.root, addr, v)
	if !ok {
		d.logger.Debug("modify: replace rejected", "addr", addr.String(), "kind", v.Kind())
		return Failed
	}
	if d.commit("modify", addr, next) == Failed {
		return Failed
	}
	if errs := d.bag.Within(addr); len(errs) > 0 {
		d.logger.Debug("modify: invalid", "addr", addr.String(), "errors", errs)
		return Failed
	}
	return Changed
}

func (d *Document) AddItem(addr Address, item Attribute) Result {
	next, ok := Append(d.root, addr, item)
	if !ok {
		d.logger.Debug("add item: rejected", "addr", addr.String())
		return Failed
	}
	return d.commit("add item", addr, next)
}

func (d *Document) AddRow(addr Address, row []LineAttribute) Result {
	next, ok := AppendRow(d.root, addr, row)
	if !ok {
		d.logger.Debug("add row: rejected", "addr", addr.String())
		return Failed
	}
	return d.commit("add row", addr, next)
}

func (d *Document) DeleteItems(addr Address, offsets []int) Result {
	if len(offsets) == 0 {
		return Unchanged
	}
	next, ok := Delete(d.root, addr, offsets)
	if !ok {
		d.logger.Debug("delete items: rejected", "addr", addr.String(), "offsets", offsets)
		return Failed
	}
	return d.commit("delete items", addr, next)
}

func (d *Document) MoveItems(addr Address, from []int, to int) Result {
	if len(from) == 0 {
		return Unchanged
	}
	next, ok := MoveItems(d.root, addr, from, to)
	if !ok {
		d.logger.Debug("move items: rejected", "addr", addr.String(), "from", from, "to", to)
		return Failed
	}
	if n, _ := Count(d.root, addr); !Reorders(n, from, to) {
		return Unchanged
	}
	return d.commit("move items", addr, next)
}

func (d *Document) commit(op string, addr Address, next Attribute) Result {
	c, ok := next.(Complex)
	if !ok {
		return Failed
	}
	d.root = c
	d.bag = Validate(d.root)
	d.logger.Debug(op, "addr", addr.String())
	return Changed
}

var _ Modifiable = (*Document)(nil)
