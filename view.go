package attrview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kungfusheep/attrview/attr"
)

// RenderState holds UI-only flags. None of it is attribute data.
//
// Expansion is keyed by attr.Address.Key, so an expanded row stays expanded
// when its neighbours are deleted or moved, and a row appended later starts
// collapsed.
type RenderState struct {
	Expanded  map[string]bool
	ExpandAll bool
}

// IsExpanded reports whether the block at addr is shown open.
func (s RenderState) IsExpanded(addr attr.Address) bool {
	return s.ExpandAll || s.Expanded[addr.Key()]
}

// Toggle flips the expansion of the block at addr.
func (s *RenderState) Toggle(addr attr.Address) {
	if s.Expanded == nil {
		s.Expanded = map[string]bool{}
	}
	key := addr.Key()
	s.Expanded[key] = !s.Expanded[key]
}

var indent = lipgloss.NewStyle().PaddingLeft(2)

func BoolView(vm *BoolViewModel, th Theme) string {
	if vm.Value() {
		return th.Base.Render("[x]")
	}
	return th.Base.Render("[ ]")
}

func IntegerView(vm *IntegerViewModel, th Theme) string {
	return th.Base.Render(strconv.Itoa(vm.Value()))
}

func FloatView(vm *FloatViewModel, th Theme) string {
	return th.Base.Render(strconv.FormatFloat(vm.Value(), 'g', -1, 64))
}

func ExpressionView(vm *ExpressionViewModel, th Theme) string {
	out := th.Base.Render(vm.Value())
	if lang := vm.Language(); lang != "" {
		out += " " + th.Muted.Render("("+lang+")")
	}
	if p, ok := vm.Preview(); ok {
		out += " " + th.Muted.Render("= "+p)
	}
	return out
}

// EnumeratedView renders a picker over the sorted valid values with the
// selection highlighted.
func EnumeratedView(vm *EnumeratedViewModel, th Theme) string {
	cur := vm.Value()
	opts := make([]string, 0, len(vm.ValidValues()))
	for _, v := range vm.ValidValues() {
		if v == cur {
			opts = append(opts, th.Accent.Render("<"+v+">"))
		} else {
			opts = append(opts, th.Muted.Render(v))
		}
	}
	return strings.Join(opts, " ")
}

func LineView(vm *LineViewModel, th Theme) string {
	return th.Base.Render(vm.Value())
}

func TextView(vm *TextViewModel, th Theme) string {
	return th.Base.Render(vm.Value())
}

func CodeView(vm *CodeViewModel, th Theme) string {
	header := th.Muted.Render("```" + vm.Language())
	return lipgloss.JoinVertical(lipgloss.Left, header, th.Base.Render(vm.Value()), th.Muted.Render("```"))
}

func EnumerableCollectionView(vm *EnumerableCollectionViewModel, th Theme) string {
	opts := make([]string, 0, len(vm.ValidValues()))
	for _, v := range vm.ValidValues() {
		mark := "[ ] "
		if vm.Contains(v) {
			mark = "[x] "
		}
		opts = append(opts, th.Base.Render(mark+v))
	}
	return strings.Join(opts, "  ")
}

// TableView renders every row through lipgloss/table.
func TableView(vm *TableViewModel, th Theme) string {
	cols := vm.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}
	rows := make([][]string, 0, vm.Len())
	for i := range vm.Len() {
		cells, _ := vm.Row(i).Values()
		row := make([]string, len(cols))
		for c := range row {
			if c < len(cells) && cells[c] != nil {
				row[c] = attr.Format(cells[c])
			}
		}
		rows = append(rows, row)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(th.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.Muted.Padding(0, 1)
			}
			if vm.IsSelected(row) {
				return th.Accent.Padding(0, 1)
			}
			return th.Base.Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// ErrorsView renders validation messages, one per line.
func ErrorsView(errs []string, th Theme) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = th.Error.Render("! " + e)
	}
	return strings.Join(lines, "\n")
}

// LineAttributeView renders the live kind of a line attribute.
func LineAttributeView(vm *LineAttributeViewModel, th Theme) string {
	c, err := vm.Active()
	if err != nil {
		return th.Muted.Render("-")
	}
	switch c := c.(type) {
	case *BoolViewModel:
		return BoolView(c, th)
	case *IntegerViewModel:
		return IntegerView(c, th)
	case *FloatViewModel:
		return FloatView(c, th)
	case *ExpressionViewModel:
		return ExpressionView(c, th)
	case *EnumeratedViewModel:
		return EnumeratedView(c, th)
	case *LineViewModel:
		return LineView(c, th)
	}
	panic("unreachable")
}

// BlockAttributeView renders the live kind of a block attribute. Composite
// blocks show a summary unless expanded in st.
func BlockAttributeView(vm *BlockAttributeViewModel, st RenderState, th Theme) string {
	c, err := vm.Active()
	if err != nil {
		return th.Muted.Render("-")
	}
	switch c := c.(type) {
	case *TextViewModel:
		return TextView(c, th)
	case *CodeViewModel:
		return CodeView(c, th)
	case *EnumerableCollectionViewModel:
		return EnumerableCollectionView(c, th)
	case *TableViewModel:
		if !st.IsExpanded(c.Binding().Address()) {
			return summary(c.binding, th)
		}
		return TableView(c, th)
	case *ComplexViewModel:
		if !st.IsExpanded(c.Binding().Address()) {
			return summary(c.binding, th)
		}
		return ComplexView(c, st, th)
	case *CollectionViewModel:
		if !st.IsExpanded(c.Binding().Address()) {
			return summary(c.binding, th)
		}
		return CollectionView(c, st, th)
	}
	panic("unreachable")
}

func summary(b Binding, th Theme) string {
	a, ok := b.Attribute()
	if !ok {
		return th.Muted.Render("-")
	}
	return th.Muted.Render("▸ " + attr.Summary(a))
}

// AttributeView renders any attribute with its validation messages.
func AttributeView(vm *AttributeViewModel, st RenderState, th Theme) string {
	var body string
	if line, err := vm.Line(); err == nil {
		body = LineAttributeView(line, th)
	} else if block, err := vm.Block(); err == nil {
		body = BlockAttributeView(block, st, th)
	} else {
		body = th.Muted.Render("-")
	}
	if errs := vm.Errors(); len(errs) > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, ErrorsView(errs, th))
	}
	return body
}

// labelled places a label before a value; multi-line values go underneath.
func labelled(label, value string, th Theme) string {
	if !strings.Contains(value, "\n") {
		return th.Muted.Render(label+":") + " " + value
	}
	return lipgloss.JoinVertical(lipgloss.Left, th.Muted.Render(label+":"), indent.Render(value))
}

// ComplexView renders every field of a complex attribute in schema order.
func ComplexView(vm *ComplexViewModel, st RenderState, th Theme) string {
	lines := make([]string, 0, len(vm.Fields()))
	for _, f := range vm.Fields() {
		child, err := vm.Field(f.Name)
		if err != nil {
			continue
		}
		lines = append(lines, labelled(f.Name, AttributeView(child, st, th), th))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// CollectionView renders every element prefixed by its index.
func CollectionView(vm *CollectionViewModel, st RenderState, th Theme) string {
	n := vm.Len()
	if n == 0 {
		return th.Muted.Render("(empty)")
	}
	lines := make([]string, 0, n)
	for i := range n {
		label := strconv.Itoa(i)
		if vm.IsSelected(i) {
			label = th.Accent.Render("*" + label)
		}
		lines = append(lines, labelled(label, AttributeView(vm.Element(i), st, th), th))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
