// Package attr is the attribute data model edited through attrview: a closed
// set of line and block attribute kinds, addresses into a tree of them, typed
// lenses, validation and a Document that owns the tree.
package attr

// Kind identifies the active case of an attribute.
type Kind uint8

const (
	KindBool Kind = iota
	KindInteger
	KindFloat
	KindExpression
	KindEnumerated
	KindLine

	KindText
	KindCode
	KindTable
	KindComplex
	KindCollection
	KindEnumerableCollection
)

var kindNames = [...]string{
	KindBool:                 "bool",
	KindInteger:              "integer",
	KindFloat:                "float",
	KindExpression:           "expression",
	KindEnumerated:           "enumerated",
	KindLine:                 "line",
	KindText:                 "text",
	KindCode:                 "code",
	KindTable:                "table",
	KindComplex:              "complex",
	KindCollection:           "collection",
	KindEnumerableCollection: "enumerable_collection",
}

// IsLine reports whether k is one of the single-line kinds.
func (k Kind) IsLine() bool {
	return k <= KindLine
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// LineKinds and BlockKinds list every kind of each family in declaration order.
var (
	LineKinds  = []Kind{KindBool, KindInteger, KindFloat, KindExpression, KindEnumerated, KindLine}
	BlockKinds = []Kind{KindText, KindCode, KindTable, KindComplex, KindCollection, KindEnumerableCollection}
)
