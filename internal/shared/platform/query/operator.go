package query

import (
	"slices"
	"strings"
)

// ---------------- Operadores ----------------

// Operator es el prefijo de una expresión de filtro ("gte:10" -> gte).
type Operator string

const (
	OpEq     Operator = "eq"
	OpNe     Operator = "ne"
	OpGt     Operator = "gt"
	OpGte    Operator = "gte"
	OpLt     Operator = "lt"
	OpLte    Operator = "lte"
	OpIn     Operator = "in"
	OpNin    Operator = "nin"
	OpExists Operator = "exists"
	OpRegex  Operator = "regex"
	OpText   Operator = "text"
)

// Operadores permitidos por tipo de dato, en el orden en que se muestran en los errores.
var (
	stringOperators     = []Operator{OpEq, OpNe, OpIn, OpNin, OpExists, OpRegex, OpText}
	numericOperators    = []Operator{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpExists}
	booleanOperators    = []Operator{OpEq, OpNe, OpExists}
	identifierOperators = []Operator{OpEq, OpNe, OpIn, OpNin, OpExists}
	datetimeOperators   = []Operator{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpExists}
)

// SplitExpression separa "op:valor" en el primer ':'.
// Sin ':' la expresión completa es el valor y el operador es eq.
func SplitExpression(expr string) (Operator, string) {
	op, val, found := strings.Cut(expr, ":")
	if !found {
		return OpEq, expr
	}
	return Operator(op), val
}

func joinOperators(ops []Operator) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ", ")
}

func isAllowed(op Operator, allowed []Operator) bool {
	return slices.Contains(allowed, op)
}
