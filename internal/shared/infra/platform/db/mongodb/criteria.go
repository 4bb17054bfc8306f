package mongodb

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// FieldMap traduce nombres de filtro/orden a rutas del documento ("id" -> "_id").
// Los nombres ausentes se usan tal cual.
type FieldMap map[string]string

func (m FieldMap) path(field string) string {
	if p, ok := m[field]; ok {
		return p
	}
	return field
}

// Collation insensible a mayúsculas y acentos para búsquedas y ordenación.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// ToFilter convierte los criterios tipados en un filtro de MongoDB.
// text se emite como $text de nivel superior (requiere índice de texto en la colección).
func ToFilter(filters map[string]query.Criteria, fields FieldMap) bson.D {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	filter := bson.D{}
	var search []string
	for _, name := range names {
		ops := bson.D{}
		for _, cond := range filters[name].Conditions() {
			if cond.Op == query.OpText {
				search = append(search, cond.Value.(string))
				continue
			}
			ops = append(ops, bson.E{Key: "$" + string(cond.Op), Value: cond.Value})
		}
		if len(ops) > 0 {
			filter = append(filter, bson.E{Key: fields.path(name), Value: ops})
		}
	}

	// Solo puede haber un $text por consulta: los términos de varios campos se unen.
	if len(search) > 0 {
		terms := search[0]
		for _, s := range search[1:] {
			terms += " " + s
		}
		filter = append(filter, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: terms}}})
	}
	return filter
}

// ToSort convierte las claves de orden en un documento de ordenación.
func ToSort(keys []query.Sort, fields FieldMap) bson.D {
	sortDoc := bson.D{}
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: fields.path(k.Field), Value: dir})
	}
	return sortDoc
}

// FindOptions aplica paginación, orden y collation de q.
func FindOptions(q *query.FindQuery, fields FieldMap) *options.FindOptions {
	opts := options.Find().
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit())).
		SetCollation(caseInsensitive)
	if len(q.Sort) > 0 {
		opts.SetSort(ToSort(q.Sort, fields))
	}
	return opts
}

// CountOptions usa la misma collation que FindOptions para que el total cuadre.
func CountOptions() *options.CountOptions {
	return options.Count().SetCollation(caseInsensitive)
}
