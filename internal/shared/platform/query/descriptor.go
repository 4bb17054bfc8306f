package query

import "strings"

// ---------- Paginación / ordenamiento ----------

// Sort indica campo y dirección.
type Sort struct {
	Field string // ej. "createdAt", "title"
	Desc  bool
}

// ParseSort interpreta el prefijo '-' como orden descendente.
func ParseSort(key string) Sort {
	if field, ok := strings.CutPrefix(key, "-"); ok {
		return Sort{Field: field, Desc: true}
	}
	return Sort{Field: key}
}

func (s Sort) String() string {
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

// ---------- FindQuery ----------

// FindQuery es la descripción completa de una búsqueda, lista para el repositorio.
// Se construye una vez por petición y no se modifica después.
type FindQuery struct {
	Page    int
	Size    int
	Sort    []Sort
	Fields  []string // vacío = todos los campos
	Filters map[string]Criteria
}

// NewFindQuery convierte los enums de orden y selección a texto. No puede fallar.
func NewFindQuery[S ~string, F ~string](page, size int, sort []S, fields []F, filters map[string]Criteria) *FindQuery {
	q := &FindQuery{
		Page:    page,
		Size:    size,
		Sort:    make([]Sort, 0, len(sort)),
		Fields:  make([]string, 0, len(fields)),
		Filters: filters,
	}
	for _, s := range sort {
		q.Sort = append(q.Sort, ParseSort(string(s)))
	}
	for _, f := range fields {
		q.Fields = append(q.Fields, string(f))
	}
	if q.Filters == nil {
		q.Filters = map[string]Criteria{}
	}
	return q
}

// Offset devuelve cuántos documentos saltar.
func (q *FindQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

func (q *FindQuery) Limit() int {
	return q.Size
}

// TotalPages calcula el número de páginas para total elementos.
func (q *FindQuery) TotalPages(total int64) int64 {
	if q.Size <= 0 {
		return 0
	}
	return (total + int64(q.Size) - 1) / int64(q.Size)
}
