package attr

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Preview evaluates a constant HCL expression and renders its value.
// Expressions that reference variables, call functions or fail to
// evaluate have no preview.
func Preview(e Expression) (string, bool) {
	if e.Language != LanguageHCL || strings.TrimSpace(e.Value) == "" {
		return "", false
	}
	expr, diags := hclsyntax.ParseExpression([]byte(e.Value), "expression.hcl", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() || len(expr.Variables()) > 0 {
		return "", false
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.IsWhollyKnown() {
		return "", false
	}
	if s, err := convert.Convert(v, cty.String); err == nil {
		return s.AsString(), true
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", false
	}
	return string(b), true
}
