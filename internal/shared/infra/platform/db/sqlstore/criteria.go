package sqlstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

var (
	ErrUnknownColumn       = errors.New("unknown column")
	ErrUnsupportedOperator = errors.New("operator not supported by dialect")
)

// Columns es la lista blanca campo -> columna. Ningún nombre llega al SQL sin pasar por aquí.
type Columns map[string]string

// builder acumula condiciones y argumentos numerando los placeholders.
type builder struct {
	dialect Dialect
	conds   []string
	args    []interface{}
}

func (b *builder) arg(v interface{}) string {
	switch val := v.(type) {
	case primitive.ObjectID:
		v = val.Hex()
	case time.Time:
		v = b.dialect.TimeValue(val)
	}
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

func (b *builder) list(v interface{}) string {
	var items []interface{}
	switch vals := v.(type) {
	case []string:
		for _, s := range vals {
			items = append(items, s)
		}
	case []float64:
		for _, f := range vals {
			items = append(items, f)
		}
	case []primitive.ObjectID:
		for _, id := range vals {
			items = append(items, id)
		}
	case []time.Time:
		for _, t := range vals {
			items = append(items, t)
		}
	}

	marks := make([]string, len(items))
	for i, item := range items {
		marks[i] = b.arg(item)
	}
	return "(" + strings.Join(marks, ", ") + ")"
}

func (b *builder) condition(col string, cond query.Condition) error {
	switch cond.Op {
	case query.OpEq:
		b.conds = append(b.conds, col+" = "+b.arg(cond.Value))
	case query.OpNe:
		b.conds = append(b.conds, col+" <> "+b.arg(cond.Value))
	case query.OpGt:
		b.conds = append(b.conds, col+" > "+b.arg(cond.Value))
	case query.OpGte:
		b.conds = append(b.conds, col+" >= "+b.arg(cond.Value))
	case query.OpLt:
		b.conds = append(b.conds, col+" < "+b.arg(cond.Value))
	case query.OpLte:
		b.conds = append(b.conds, col+" <= "+b.arg(cond.Value))
	case query.OpIn:
		b.conds = append(b.conds, col+" IN "+b.list(cond.Value))
	case query.OpNin:
		b.conds = append(b.conds, col+" NOT IN "+b.list(cond.Value))
	case query.OpExists:
		if cond.Value.(bool) {
			b.conds = append(b.conds, col+" IS NOT NULL")
		} else {
			b.conds = append(b.conds, col+" IS NULL")
		}
	case query.OpRegex:
		if !b.dialect.regex {
			return fmt.Errorf("%w: regex on %s", ErrUnsupportedOperator, b.dialect.Name)
		}
		b.conds = append(b.conds, col+" ~ "+b.arg(cond.Value))
	case query.OpText:
		b.conds = append(b.conds, col+" "+b.dialect.likeOperator()+" "+b.arg("%"+cond.Value.(string)+"%"))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOperator, cond.Op)
	}
	return nil
}

// BuildWhere traduce los criterios a "WHERE ..." (o "" sin filtros) y sus argumentos.
func BuildWhere(d Dialect, filters map[string]query.Criteria, cols Columns) (string, []interface{}, error) {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	b := &builder{dialect: d}
	for _, name := range names {
		col, ok := cols[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		for _, cond := range filters[name].Conditions() {
			if err := b.condition(col, cond); err != nil {
				return "", nil, err
			}
		}
	}

	if len(b.conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args, nil
}

// BuildOrderBy traduce las claves de orden. Sin claves devuelve "".
func BuildOrderBy(keys []query.Sort, cols Columns) (string, error) {
	if len(keys) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		col, ok := cols[k.Field]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownColumn, k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// BuildLimitOffset añade la paginación; los valores ya vienen validados.
func BuildLimitOffset(q *query.FindQuery) string {
	return fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit(), q.Offset())
}
