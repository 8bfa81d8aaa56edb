package attr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// LanguageHCL marks expressions and code written in HCL native syntax.
const LanguageHCL = "hcl"

// StringValidator validates a string value.
type StringValidator func(string) error

// VSingleLine rejects strings containing a line break.
func VSingleLine(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("must be a single line")
	}
	return nil
}

// VOneOf rejects strings outside valid.
func VOneOf(valid []string) StringValidator {
	return func(s string) error {
		if !slices.Contains(valid, s) {
			return fmt.Errorf("%q is not one of %s", s, strings.Join(SortedValues(valid), ", "))
		}
		return nil
	}
}

// VExpression rejects source that does not parse in lang. Languages other
// than HCL are not checked. Empty source is allowed.
func VExpression(lang string) StringValidator {
	return func(s string) error {
		if lang != LanguageHCL || strings.TrimSpace(s) == "" {
			return nil
		}
		_, diags := hclsyntax.ParseExpression([]byte(s), "expression.hcl", hcl.Pos{Line: 1, Column: 1})
		if diags.HasErrors() {
			return fmt.Errorf("%s", diagSummary(diags))
		}
		return nil
	}
}

func diagSummary(diags hcl.Diagnostics) string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			msgs = append(msgs, d.Summary)
		}
	}
	return strings.Join(msgs, "; ")
}

// ErrorBag holds validation messages keyed by Address.String().
type ErrorBag map[string][]string

// Errors returns the messages recorded exactly at addr.
func (b ErrorBag) Errors(addr Address) []string {
	return b[addr.String()]
}

// Within returns every message at or below addr, in address order.
func (b ErrorBag) Within(addr Address) []string {
	prefix := addr.String()
	var keys []string
	for k := range b {
		if prefix == "/" || k == prefix || strings.HasPrefix(k, prefix+"/") {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	var out []string
	for _, k := range keys {
		out = append(out, b[k]...)
	}
	return out
}

// Len returns the number of addresses with at least one message.
func (b ErrorBag) Len() int { return len(b) }

func (b ErrorBag) add(key string, err error) {
	if err != nil {
		b[key] = append(b[key], err.Error())
	}
}

// Validate checks the whole tree under root.
func Validate(root Attribute) ErrorBag {
	bag := ErrorBag{}
	validate(bag, "/", root, nil)
	return bag
}

func joinKey(base, seg string) string {
	if base == "/" {
		return "/" + seg
	}
	return base + "/" + seg
}

func validate(bag ErrorBag, key string, a Attribute, want *Type) {
	if a == nil {
		bag.add(key, fmt.Errorf("missing value"))
		return
	}
	if want != nil && a.Kind() != want.Kind {
		bag.add(key, fmt.Errorf("expected %s, got %s", want.Kind, a.Kind()))
		return
	}
	switch v := a.(type) {
	case Line:
		bag.add(key, VSingleLine(string(v)))
	case Expression:
		bag.add(key, VSingleLine(v.Value))
		bag.add(key, VExpression(v.Language)(v.Value))
	case Enumerated:
		bag.add(key, VOneOf(v.ValidValues)(v.Value))
	case EnumerableCollection:
		oneOf := VOneOf(v.ValidValues)
		for _, m := range v.Values {
			bag.add(key, oneOf(m))
		}
	case Collection:
		for i, e := range v.Values {
			validate(bag, joinKey(key, strconv.Itoa(i)), e, &v.Element)
		}
	case Table:
		for r, row := range v.Rows {
			rowKey := joinKey(key, strconv.Itoa(r))
			if len(row) != len(v.Columns) {
				bag.add(rowKey, fmt.Errorf("expected %d columns, got %d", len(v.Columns), len(row)))
			}
			for c, cell := range row {
				var colType *Type
				if c < len(v.Columns) {
					colType = &v.Columns[c].Type
				}
				validate(bag, joinKey(rowKey, strconv.Itoa(c)), cell, colType)
			}
		}
	case Complex:
		for _, f := range v.Fields {
			value, ok := v.Values[f.Name]
			if !ok {
				bag.add(key, fmt.Errorf("missing field %q", f.Name))
				continue
			}
			validate(bag, joinKey(key, f.Name), value, &f.Type)
		}
	}
}
