package query

import (
	"fmt"
	"slices"
)

// operatorTracker registra los operadores ya usados en un campo durante un parseo.
type operatorTracker struct {
	used []Operator
}

// record falla si op ya se usó o si eq convive con cualquier otro operador (en cualquier orden).
func (t *operatorTracker) record(op Operator) error {
	if slices.Contains(t.used, op) {
		return NewFieldError(
			CodeDuplicateOperator, fmt.Sprintf("cannot use %s operator multiple times", op),
		).WithParam("operator", string(op))
	}
	t.used = append(t.used, op)

	if len(t.used) > 1 && slices.Contains(t.used, OpEq) {
		return NewFieldError(
			CodeIncompatibleOperators,
			fmt.Sprintf("eq can only be used exclusively. %s used at the same time", joinOperators(t.used)),
		).WithParam("operators", joinOperators(t.used))
	}
	return nil
}
