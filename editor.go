package attrview

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/attrview/attr"
)

// item is one focusable row of the editor. Exactly one of attr, cell, row
// or set is non-nil.
type item struct {
	depth int
	label string

	attr   *AttributeViewModel
	cell   *LineAttributeViewModel
	row    *TableRowViewModel
	set    *EnumerableCollectionViewModel
	member string

	coll  *CollectionViewModel // parent of an element
	table *TableViewModel      // parent of a row
	index int
}

// Editor is a bubbletea model that edits a document through view models.
type Editor struct {
	root    *ComplexViewModel
	theme   Theme
	title   string
	state   RenderState
	logger  *slog.Logger
	items   []item
	cursor  int
	width   int
	changes int
	status  string

	editing  bool
	input    textinput.Model
	original string
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

func WithTheme(th Theme) EditorOption     { return func(e *Editor) { e.theme = th } }
func WithTitle(title string) EditorOption { return func(e *Editor) { e.title = title } }

// WithEditorLogger sets the logger for structural edits.
func WithEditorLogger(l *slog.Logger) EditorOption {
	return func(e *Editor) { e.logger = l }
}

// NewEditor builds an editor over the top level of doc.
func NewEditor(doc attr.Modifiable, opts ...EditorOption) *Editor {
	e := &Editor{
		theme:  ThemeDark,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		width:  80,
		input:  textinput.New(),
	}
	e.input.Prompt = ""
	for _, opt := range opts {
		opt(e)
	}
	e.root = NewRootViewModel(doc, SinkFunc(func() { e.changes++ }))
	e.rebuild()
	return e
}

// Root returns the top-level view model.
func (e *Editor) Root() *ComplexViewModel { return e.root }

// Changes counts the edits reported by the view models.
func (e *Editor) Changes() int { return e.changes }

func (e *Editor) Init() tea.Cmd { return nil }

func (e *Editor) rebuild() {
	e.items = e.items[:0]
	e.walkComplex(e.root, 0)
	e.cursor = min(max(e.cursor, 0), max(len(e.items)-1, 0))
}

func (e *Editor) walkComplex(vm *ComplexViewModel, depth int) {
	for _, f := range vm.Fields() {
		child, err := vm.Field(f.Name)
		if err != nil {
			continue
		}
		e.walkAttribute(item{depth: depth, label: f.Name, attr: child, index: -1})
	}
}

func (e *Editor) walkAttribute(it item) {
	e.items = append(e.items, it)
	block, err := it.attr.Block()
	if err != nil || !e.state.IsExpanded(it.attr.Binding().Address()) {
		return
	}
	active, err := block.Active()
	if err != nil {
		return
	}
	depth := it.depth + 1
	switch c := active.(type) {
	case *ComplexViewModel:
		e.walkComplex(c, depth)
	case *CollectionViewModel:
		for i := range c.Len() {
			e.walkAttribute(item{depth: depth, label: strconv.Itoa(i), attr: c.Element(i), coll: c, index: i})
		}
	case *TableViewModel:
		for i := range c.Len() {
			row := c.Row(i)
			e.items = append(e.items, item{depth: depth, label: strconv.Itoa(i), row: row, table: c, index: i})
			if !e.state.IsExpanded(row.Binding().Address()) {
				continue
			}
			for col, column := range c.Columns() {
				if cell, err := row.Cell(col); err == nil {
					e.items = append(e.items, item{depth: depth + 1, label: column.Name, cell: cell, index: -1})
				}
			}
		}
	case *EnumerableCollectionViewModel:
		for _, v := range c.ValidValues() {
			e.items = append(e.items, item{depth: depth, label: v, set: c, member: v, index: -1})
		}
	}
}

func (e *Editor) focused() (item, bool) {
	if e.cursor < 0 || e.cursor >= len(e.items) {
		return item{}, false
	}
	return e.items[e.cursor], true
}

// line returns the line view model of a row, if it has one.
func (it item) line() *LineAttributeViewModel {
	if it.cell != nil {
		return it.cell
	}
	if it.attr != nil {
		if l, err := it.attr.Line(); err == nil {
			return l
		}
	}
	return nil
}

func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
	case tea.KeyMsg:
		if e.editing {
			cmd = e.updateInput(msg)
			break
		}
		cmd = e.updateKey(msg.String())
	default:
		// cursor blink
		if e.editing {
			e.input, cmd = e.input.Update(msg)
		}
	}
	e.rebuild()
	return e, cmd
}

func (e *Editor) updateKey(key string) tea.Cmd {
	e.status = ""
	it, ok := e.focused()
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		e.cursor--
	case "down", "j":
		e.cursor++
	case "r":
		e.root.Send()
		e.status = "resynced"
	case " ":
		if ok {
			e.toggle(it)
		}
	case "+", "=":
		if ok {
			e.step(it, 1)
		}
	case "-":
		if ok {
			e.step(it, -1)
		}
	case "enter":
		if ok {
			return e.activate(it)
		}
	case "a":
		if ok {
			e.add(it)
		}
	case "x":
		if ok {
			e.remove(it)
		}
	case "s":
		if ok {
			e.selectRow(it)
		}
	case "X":
		if ok {
			e.removeSelected(it)
		}
	case "K":
		if ok && it.index > 0 {
			e.move(it, it.index-1, -1)
		}
	case "J":
		if ok && it.index >= 0 {
			e.move(it, it.index+2, 1)
		}
	}
	return nil
}

func (e *Editor) toggle(it item) {
	if it.set != nil {
		e.report(it.set.Toggle(it.member))
		return
	}
	line := it.line()
	if line == nil {
		return
	}
	switch c := activeOrNil(line).(type) {
	case *BoolViewModel:
		e.report(c.Toggle())
	case *EnumeratedViewModel:
		e.report(c.Cycle(1))
	}
}

func (e *Editor) step(it item, delta int) {
	line := it.line()
	if line == nil {
		return
	}
	switch c := activeOrNil(line).(type) {
	case *IntegerViewModel:
		e.report(c.Step(delta))
	case *FloatViewModel:
		e.report(c.Step(float64(delta)))
	case *EnumeratedViewModel:
		e.report(c.Cycle(delta))
	}
}

// activeOrNil returns the live child of l, or nil when it does not resolve.
func activeOrNil(l *LineAttributeViewModel) LineChild {
	c, err := l.Active()
	if err != nil {
		return nil
	}
	return c
}

// activate expands composites and starts inline editing of text values.
func (e *Editor) activate(it item) tea.Cmd {
	if it.row != nil {
		e.state.Toggle(it.row.Binding().Address())
		return nil
	}
	if v, ok := e.editableValue(it); ok {
		e.editing = true
		e.input.SetValue(v)
		e.input.CursorEnd()
		e.original = e.input.Value()
		return e.input.Focus()
	}
	if it.attr != nil {
		if _, err := it.attr.Block(); err == nil {
			e.state.Toggle(it.attr.Binding().Address())
		}
	}
	return nil
}

func (e *Editor) editableValue(it item) (string, bool) {
	if line := it.line(); line != nil {
		switch c := activeOrNil(line).(type) {
		case *IntegerViewModel:
			return strconv.Itoa(c.Value()), true
		case *FloatViewModel:
			return strconv.FormatFloat(c.Value(), 'g', -1, 64), true
		case *ExpressionViewModel:
			return c.Value(), true
		case *LineViewModel:
			return c.Value(), true
		}
		return "", false
	}
	if it.attr == nil {
		return "", false
	}
	block, err := it.attr.Block()
	if err != nil {
		return "", false
	}
	switch c, _ := block.Active(); c := c.(type) {
	case *TextViewModel:
		return c.Value(), true
	case *CodeViewModel:
		return c.Value(), true
	}
	return "", false
}

// updateInput forwards keys to the text input. Enter commits, Esc discards.
// Newlines of text and code values are flattened by the input, so an
// untouched value is never written back.
func (e *Editor) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		e.stopEditing()
		return nil
	case tea.KeyEnter:
		v := e.input.Value()
		e.stopEditing()
		if it, ok := e.focused(); ok && v != e.original {
			e.commitInput(it, v)
		}
		return nil
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *Editor) stopEditing() {
	e.editing = false
	e.input.Blur()
}

func (e *Editor) commitInput(it item, s string) {
	if line := it.line(); line != nil {
		switch c := activeOrNil(line).(type) {
		case *IntegerViewModel:
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				e.status = fmt.Sprintf("not an integer: %q", s)
				return
			}
			e.report(c.Set(n))
		case *FloatViewModel:
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				e.status = fmt.Sprintf("not a number: %q", s)
				return
			}
			e.report(c.Set(f))
		case *ExpressionViewModel:
			e.report(c.Set(s))
		case *LineViewModel:
			e.report(c.Set(s))
		}
		return
	}
	if it.attr == nil {
		return
	}
	block, err := it.attr.Block()
	if err != nil {
		return
	}
	switch c, _ := block.Active(); c := c.(type) {
	case *TextViewModel:
		e.report(c.Set(s))
	case *CodeViewModel:
		e.report(c.Set(s))
	}
}

// container resolves the collection or table an edit applies to: the
// focused one itself, or the parent of a focused element or row.
func (e *Editor) container(it item) (*CollectionViewModel, *TableViewModel) {
	if it.coll != nil || it.table != nil {
		return it.coll, it.table
	}
	if it.attr == nil {
		return nil, nil
	}
	block, err := it.attr.Block()
	if err != nil {
		return nil, nil
	}
	switch c, _ := block.Active(); c := c.(type) {
	case *CollectionViewModel:
		return c, nil
	case *TableViewModel:
		return nil, c
	}
	return nil, nil
}

func (e *Editor) expand(b Binding) {
	if !e.state.IsExpanded(b.Address()) {
		e.state.Toggle(b.Address())
	}
}

func (e *Editor) add(it item) {
	coll, tbl := e.container(it)
	switch {
	case coll != nil:
		e.expand(coll.Binding())
		e.structural("add element", coll.Binding(), coll.CommitDraft())
	case tbl != nil:
		e.expand(tbl.Binding())
		e.structural("add row", tbl.Binding(), tbl.CommitDraft())
	}
}

func (e *Editor) remove(it item) {
	switch {
	case it.coll != nil:
		e.structural("delete element", it.coll.Binding(), it.coll.DeleteElements([]int{it.index}))
	case it.table != nil:
		e.structural("delete row", it.table.Binding(), it.table.DeleteRows([]int{it.index}))
	}
}

func (e *Editor) selectRow(it item) {
	switch {
	case it.coll != nil && it.coll.IsSelected(it.index):
		it.coll.Deselect(it.index)
	case it.coll != nil:
		it.coll.Select(it.index)
	case it.table != nil && it.table.IsSelected(it.index):
		it.table.Deselect(it.index)
	case it.table != nil:
		it.table.Select(it.index)
	}
}

func (e *Editor) removeSelected(it item) {
	coll, tbl := e.container(it)
	switch {
	case coll != nil:
		e.structural("delete selected elements", coll.Binding(), coll.DeleteSelected())
	case tbl != nil:
		e.structural("delete selected rows", tbl.Binding(), tbl.DeleteSelected())
	}
}

// move shifts the focused element or row to before index to and keeps the
// cursor on it.
func (e *Editor) move(it item, to, dir int) {
	var r attr.Result
	switch {
	case it.coll != nil && to <= it.coll.Len():
		r = it.coll.MoveElements([]int{it.index}, to)
		e.structural("move element", it.coll.Binding(), r)
	case it.table != nil && to <= it.table.Len():
		r = it.table.MoveRows([]int{it.index}, to)
		e.structural("move row", it.table.Binding(), r)
	default:
		return
	}
	if r == attr.Changed {
		e.cursor += dir
	}
}

func (e *Editor) structural(op string, b Binding, r attr.Result) {
	e.logger.Info(op, "addr", b.Address().String(), "result", r.String())
	e.report(r)
}

func (e *Editor) report(r attr.Result) {
	if r == attr.Failed {
		e.status = "invalid value"
	}
}

func (e *Editor) View() string {
	th := e.theme
	var b strings.Builder
	title := e.title
	if title == "" {
		title = "attributes"
	}
	if e.changes > 0 {
		title += " *"
	}
	b.WriteString(th.Accent.Render(title))
	b.WriteByte('\n')
	for i, it := range e.items {
		b.WriteString(e.renderItem(it, i == e.cursor))
		b.WriteByte('\n')
	}
	if e.status != "" {
		b.WriteString(th.Error.Render(e.status))
		b.WriteByte('\n')
	}
	b.WriteString(th.Muted.Render("↑↓ move · space toggle · +/- step · enter edit/expand · a add · x delete · s select · X delete selected · K/J reorder · r resync · q quit"))
	return lipgloss.NewStyle().MaxWidth(e.width).Render(b.String())
}

func (e *Editor) renderItem(it item, focused bool) string {
	th := e.theme
	marker := "  "
	if focused {
		marker = th.Accent.Render("› ")
	}
	label := it.label
	if (it.coll != nil && it.coll.IsSelected(it.index)) || (it.table != nil && it.table.IsSelected(it.index)) {
		label = "*" + label
	}
	head := strings.Repeat("  ", it.depth) + marker + th.Muted.Render(label+":") + " "

	if focused && e.editing {
		return head + e.input.View()
	}

	var value string
	var errs []string
	switch {
	case it.set != nil:
		mark := "[ ]"
		if it.set.Contains(it.member) {
			mark = "[x]"
		}
		head = strings.Repeat("  ", it.depth) + marker
		value = th.Base.Render(mark + " " + it.member)
	case it.row != nil:
		cells, _ := it.row.Values()
		parts := make([]string, len(cells))
		for i, c := range cells {
			if c != nil {
				parts[i] = attr.Format(c)
			}
		}
		value = th.Base.Render(strings.Join(parts, " │ "))
		errs = it.row.Errors()
	case it.line() != nil:
		line := it.line()
		value = LineAttributeView(line, th)
		errs = line.Errors()
	case it.attr != nil:
		value = e.blockSummary(it.attr)
		errs = it.attr.Errors()
	}
	out := head + value
	for _, err := range errs {
		out += " " + th.Error.Render("! "+err)
	}
	return out
}

func (e *Editor) blockSummary(vm *AttributeViewModel) string {
	th := e.theme
	a, ok := vm.Attribute()
	if !ok {
		return th.Muted.Render("-")
	}
	switch a.Kind() {
	case attr.KindText, attr.KindCode:
		return th.Base.Render(attr.Summary(a))
	}
	arrow := "▸ "
	if e.state.IsExpanded(vm.Binding().Address()) {
		arrow = "▾ "
	}
	return th.Muted.Render(arrow + a.Kind().String() + " · " + attr.Summary(a))
}
