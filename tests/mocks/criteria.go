package mocks

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// matchesFilters evalúa en memoria los criterios contra los valores de una entidad
// (campo -> string | float64 | bool | ObjectID | time.Time).
func matchesFilters(values map[string]interface{}, filters map[string]query.Criteria) bool {
	for field, criteria := range filters {
		val := values[field]
		for _, cond := range criteria.Conditions() {
			if !matchCondition(val, cond) {
				return false
			}
		}
	}
	return true
}

func matchCondition(val interface{}, cond query.Condition) bool {
	switch cond.Op {
	case query.OpEq:
		return compare(val, cond.Value) == 0
	case query.OpNe:
		return compare(val, cond.Value) != 0
	case query.OpGt:
		return compare(val, cond.Value) > 0
	case query.OpGte:
		return compare(val, cond.Value) >= 0
	case query.OpLt:
		return compare(val, cond.Value) < 0
	case query.OpLte:
		return compare(val, cond.Value) <= 0
	case query.OpIn:
		return contains(cond.Value, val)
	case query.OpNin:
		return !contains(cond.Value, val)
	case query.OpExists:
		return isPresent(val) == cond.Value.(bool)
	case query.OpRegex:
		s, _ := val.(string)
		ok, err := regexp.MatchString(cond.Value.(string), s)
		return err == nil && ok
	case query.OpText:
		s, _ := val.(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(cond.Value.(string)))
	}
	return false
}

// compare devuelve -1, 0 o 1; tipos distintos cuentan como "distinto" (1).
func compare(a, b interface{}) int {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok && x == y {
			return 0
		}
	case primitive.ObjectID:
		if y, ok := b.(primitive.ObjectID); ok {
			return strings.Compare(x.Hex(), y.Hex())
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return 1
}

func contains(list interface{}, val interface{}) bool {
	switch items := list.(type) {
	case []string:
		for _, it := range items {
			if compare(val, it) == 0 {
				return true
			}
		}
	case []float64:
		for _, it := range items {
			if compare(val, it) == 0 {
				return true
			}
		}
	case []primitive.ObjectID:
		for _, it := range items {
			if compare(val, it) == 0 {
				return true
			}
		}
	case []time.Time:
		for _, it := range items {
			if compare(val, it) == 0 {
				return true
			}
		}
	}
	return false
}

func isPresent(val interface{}) bool {
	switch v := val.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case primitive.ObjectID:
		return !v.IsZero()
	}
	return true
}

// sortAndPage ordena por las claves de q y recorta la página pedida.
func sortAndPage[T any](items []T, q *query.FindQuery, values func(T) map[string]interface{}) []T {
	sort.SliceStable(items, func(i, j int) bool {
		vi, vj := values(items[i]), values(items[j])
		for _, key := range q.Sort {
			c := compare(vi[key.Field], vj[key.Field])
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	start := q.Offset()
	if start > len(items) {
		return []T{}
	}
	end := start + q.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
