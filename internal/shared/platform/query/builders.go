package query

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildCriteria recorre las expresiones de un campo: separa operador, comprueba que el
// tipo lo admite, pasa el filtro opcional gate, registra el uso y delega en apply.
// El primer error aborta el campo.
func buildCriteria(
	exprs []string,
	allowed []Operator,
	gate func(Operator) error,
	apply func(op Operator, raw string) error,
) error {
	var tracker operatorTracker
	for _, expr := range exprs {
		op, raw := SplitExpression(expr)
		if !isAllowed(op, allowed) {
			return NewFieldError(
				CodeUnknownOperator, fmt.Sprintf("%s not valid! use: %s", op, joinOperators(allowed)),
			).WithParam("operator", string(op))
		}
		if gate != nil {
			if err := gate(op); err != nil {
				return err
			}
		}
		if err := tracker.record(op); err != nil {
			return err
		}
		if err := apply(op, raw); err != nil {
			return err
		}
	}
	return nil
}

// scalar convierte raw, aplica las reglas y guarda el resultado en *slot.
func scalar[T any](slot **T, raw string, parse func(string) (T, error), rules []Rule[T]) error {
	val, err := parse(raw)
	if err != nil {
		return err
	}
	if err := applyRules(val, rules); err != nil {
		return err
	}
	*slot = &val
	return nil
}

// list convierte raw separado por comas y aplica las reglas a cada elemento.
func list[T any](slot *[]T, raw string, parse func(string) (T, error), rules []Rule[T]) error {
	vals, err := parseList(raw, parse)
	if err != nil {
		return err
	}
	if err := applyRulesToSlice(vals, rules); err != nil {
		return err
	}
	*slot = vals
	return nil
}

// exists no pasa por las reglas semánticas.
func exists(slot **bool, raw string) error {
	return scalar(slot, raw, ParseBool, nil)
}

func textGate(indexed bool) func(Operator) error {
	return func(op Operator) error {
		if op == OpText && !indexed {
			return NewFieldError(CodeBadOperator, "cannot use text operator on non-indexed fields").
				WithParam("operator", string(op))
		}
		return nil
	}
}

// ---------------- Builders por tipo ----------------

// BuildStringCriteria construye el filtro de un campo de texto.
// text solo se admite si indexed es true; regex y text no pasan por las reglas.
func BuildStringCriteria(exprs []string, indexed bool, rules ...Rule[string]) (*StringCriteria, error) {
	c := &StringCriteria{}
	err := buildCriteria(exprs, stringOperators, textGate(indexed), func(op Operator, raw string) error {
		switch op {
		case OpEq:
			return scalar(&c.Eq, raw, parseString, rules)
		case OpNe:
			return scalar(&c.Ne, raw, parseString, rules)
		case OpIn:
			return list(&c.In, raw, parseString, rules)
		case OpNin:
			return list(&c.Nin, raw, parseString, rules)
		case OpExists:
			return exists(&c.Exists, raw)
		case OpRegex:
			return scalar(&c.Regex, raw, parseString, nil)
		case OpText:
			return scalar(&c.Text, raw, parseString, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func BuildNumericCriteria(exprs []string, rules ...Rule[float64]) (*NumericCriteria, error) {
	c := &NumericCriteria{}
	err := buildCriteria(exprs, numericOperators, nil, func(op Operator, raw string) error {
		switch op {
		case OpEq:
			return scalar(&c.Eq, raw, ParseNumber, rules)
		case OpNe:
			return scalar(&c.Ne, raw, ParseNumber, rules)
		case OpGt:
			return scalar(&c.Gt, raw, ParseNumber, rules)
		case OpGte:
			return scalar(&c.Gte, raw, ParseNumber, rules)
		case OpLt:
			return scalar(&c.Lt, raw, ParseNumber, rules)
		case OpLte:
			return scalar(&c.Lte, raw, ParseNumber, rules)
		case OpIn:
			return list(&c.In, raw, ParseNumber, rules)
		case OpNin:
			return list(&c.Nin, raw, ParseNumber, rules)
		case OpExists:
			return exists(&c.Exists, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func BuildBooleanCriteria(exprs []string, rules ...Rule[bool]) (*BooleanCriteria, error) {
	c := &BooleanCriteria{}
	err := buildCriteria(exprs, booleanOperators, nil, func(op Operator, raw string) error {
		switch op {
		case OpEq:
			return scalar(&c.Eq, raw, ParseBool, rules)
		case OpNe:
			return scalar(&c.Ne, raw, ParseBool, rules)
		case OpExists:
			return exists(&c.Exists, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func BuildIdentifierCriteria(exprs []string, rules ...Rule[primitive.ObjectID]) (*IdentifierCriteria, error) {
	c := &IdentifierCriteria{}
	err := buildCriteria(exprs, identifierOperators, nil, func(op Operator, raw string) error {
		switch op {
		case OpEq:
			return scalar(&c.Eq, raw, ParseObjectID, rules)
		case OpNe:
			return scalar(&c.Ne, raw, ParseObjectID, rules)
		case OpIn:
			return list(&c.In, raw, ParseObjectID, rules)
		case OpNin:
			return list(&c.Nin, raw, ParseObjectID, rules)
		case OpExists:
			return exists(&c.Exists, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuildDateTimeCriteria admite RFC 3339; los elementos de in/nin se recortan antes de convertir.
func BuildDateTimeCriteria(exprs []string, rules ...Rule[time.Time]) (*DateTimeCriteria, error) {
	c := &DateTimeCriteria{}
	err := buildCriteria(exprs, datetimeOperators, nil, func(op Operator, raw string) error {
		switch op {
		case OpEq:
			return scalar(&c.Eq, raw, ParseDateTime, rules)
		case OpNe:
			return scalar(&c.Ne, raw, ParseDateTime, rules)
		case OpGt:
			return scalar(&c.Gt, raw, ParseDateTime, rules)
		case OpGte:
			return scalar(&c.Gte, raw, ParseDateTime, rules)
		case OpLt:
			return scalar(&c.Lt, raw, ParseDateTime, rules)
		case OpLte:
			return scalar(&c.Lte, raw, ParseDateTime, rules)
		case OpIn:
			return list(&c.In, raw, parseTrimmedDateTime, rules)
		case OpNin:
			return list(&c.Nin, raw, parseTrimmedDateTime, rules)
		case OpExists:
			return exists(&c.Exists, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
