package attrview

import (
	"fmt"

	"github.com/kungfusheep/attrview/attr"
)

// TableViewModel exposes the rows of a table attribute through the same row
// cache collections use.
type TableViewModel struct {
	Notifier
	binding Binding
	rows    *RowCache[*TableRowViewModel]
	draft   *TableRowViewModel
	pending Ref[attr.Attribute]
}

func NewTableViewModel(b Binding) *TableViewModel {
	vm := &TableViewModel{binding: b}
	vm.rows = NewRowCache(func(pos *attr.Position) *TableRowViewModel {
		return newTableRowViewModel(vm.binding.Row(pos), vm.Columns)
	})
	return vm
}

func (vm *TableViewModel) Binding() Binding { return vm.binding }
func (vm *TableViewModel) Label() string    { return vm.binding.Label() }
func (vm *TableViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *TableViewModel) Errors() []string { return vm.binding.Errors() }
func (vm *TableViewModel) Len() int         { return vm.binding.Count() }

// Columns is the live column schema.
func (vm *TableViewModel) Columns() []attr.Column {
	a, _ := vm.binding.Attribute()
	t, _ := a.(attr.Table)
	return t.Columns
}

func (vm *TableViewModel) Row(i int) *TableRowViewModel {
	return vm.rows.Row(i)
}

func (vm *TableViewModel) Cached(i int) (*TableRowViewModel, bool) {
	return vm.rows.Cached(i)
}

func (vm *TableViewModel) changed(r attr.Result) attr.Result {
	notify(r, &vm.Notifier, vm.binding.Sink())
	return r
}

// AddRow appends row. Cached rows are unaffected.
func (vm *TableViewModel) AddRow(row []attr.LineAttribute) attr.Result {
	return vm.changed(vm.binding.AddRow(row))
}

// AddDefaultRow appends a row of column defaults.
func (vm *TableViewModel) AddDefaultRow() attr.Result {
	return vm.AddRow(attr.DefaultRow(vm.Columns()))
}

// DeleteRows removes the rows at offsets, clearing the selection and
// renumbering surviving row view models.
func (vm *TableViewModel) DeleteRows(offsets []int) attr.Result {
	vm.rows.ClearSelection()
	r := vm.binding.DeleteItems(offsets)
	if r == attr.Changed {
		vm.rows.Delete(offsets, vm.Len())
	}
	return vm.changed(r)
}

// MoveRows moves the rows at from to before the row currently at to.
func (vm *TableViewModel) MoveRows(from []int, to int) attr.Result {
	vm.rows.ClearSelection()
	r := vm.binding.MoveItems(from, to)
	if r == attr.Changed {
		vm.rows.Move(from, to, vm.Len())
	}
	return vm.changed(r)
}

func (vm *TableViewModel) Select(i int)          { vm.rows.Select(i) }
func (vm *TableViewModel) Deselect(i int)        { vm.rows.Deselect(i) }
func (vm *TableViewModel) IsSelected(i int) bool { return vm.rows.IsSelected(i) }
func (vm *TableViewModel) Selected() []int       { return vm.rows.Selected() }

func (vm *TableViewModel) DeleteSelected() attr.Result {
	return vm.DeleteRows(vm.Selected())
}

// Draft returns a detached row of column defaults, edited in place before
// CommitDraft appends it.
func (vm *TableViewModel) Draft() *TableRowViewModel {
	if vm.draft == nil {
		cols := vm.Columns()
		vm.pending = Cell[attr.Attribute](attr.Table{
			Columns: cols,
			Rows:    [][]attr.LineAttribute{attr.DefaultRow(cols)},
		})
		b := BindRef(vm.pending, vm.binding.Sink()).Row(attr.NewPosition(0))
		vm.draft = newTableRowViewModel(b, vm.Columns)
	}
	return vm.draft
}

func (vm *TableViewModel) CommitDraft() attr.Result {
	if vm.draft == nil {
		return vm.AddDefaultRow()
	}
	row, _ := vm.draft.Values()
	r := vm.AddRow(row)
	if r != attr.Failed {
		vm.draft = nil
	}
	return r
}

// Send notifies subscribers and evicts every cached row.
func (vm *TableViewModel) Send() {
	vm.WillChange()
	vm.rows.Reset()
}

func (*TableViewModel) blockChild() {}

// TableRowViewModel is one row of a table, with a lazily built line
// attribute view model per cell.
type TableRowViewModel struct {
	Notifier
	binding Binding
	columns func() []attr.Column
	cells   map[int]*LineAttributeViewModel
}

func newTableRowViewModel(b Binding, columns func() []attr.Column) *TableRowViewModel {
	return &TableRowViewModel{binding: b, columns: columns, cells: map[int]*LineAttributeViewModel{}}
}

func (vm *TableRowViewModel) Binding() Binding { return vm.binding }
func (vm *TableRowViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *TableRowViewModel) Errors() []string { return vm.binding.Errors() }

// Index is the row's current position in its table.
func (vm *TableRowViewModel) Index() int {
	i, _ := vm.binding.Index()
	return i
}

// Values returns the live cells of the row.
func (vm *TableRowViewModel) Values() ([]attr.LineAttribute, bool) {
	return vm.binding.TableRow()
}

// Cell returns the view model for column c.
func (vm *TableRowViewModel) Cell(c int) (*LineAttributeViewModel, error) {
	if c < 0 || c >= len(vm.columns()) {
		return nil, fmt.Errorf("%s: column %d: %w", vm.binding.Address(), c, ErrNoField)
	}
	if cell, ok := vm.cells[c]; ok {
		return cell, nil
	}
	cell := NewLineAttributeViewModel(vm.binding.Column(c))
	vm.cells[c] = cell
	return cell, nil
}

// Send notifies subscribers and forwards to cells of columns that still
// exist.
func (vm *TableRowViewModel) Send() {
	vm.WillChange()
	n := len(vm.columns())
	for c, cell := range vm.cells {
		if c >= n {
			delete(vm.cells, c)
			continue
		}
		cell.Send()
	}
}
