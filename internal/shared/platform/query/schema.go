package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultMaxSize = 100

// FilterField declara un campo filtrable y cómo se lee.
type FilterField struct {
	Name string
	Kind Kind
	read func(r *FiltersReader, exprs []string)
}

func StringField(name string, indexed bool, rules ...Rule[string]) FilterField {
	return FilterField{Name: name, Kind: KindString, read: func(r *FiltersReader, exprs []string) {
		r.ReadString(name, exprs, indexed, rules...)
	}}
}

func NumericField(name string, rules ...Rule[float64]) FilterField {
	return FilterField{Name: name, Kind: KindNumeric, read: func(r *FiltersReader, exprs []string) {
		r.ReadNumeric(name, exprs, rules...)
	}}
}

func BooleanField(name string, rules ...Rule[bool]) FilterField {
	return FilterField{Name: name, Kind: KindBoolean, read: func(r *FiltersReader, exprs []string) {
		r.ReadBoolean(name, exprs, rules...)
	}}
}

func IdentifierField(name string, rules ...Rule[primitive.ObjectID]) FilterField {
	return FilterField{Name: name, Kind: KindIdentifier, read: func(r *FiltersReader, exprs []string) {
		r.ReadIdentifier(name, exprs, rules...)
	}}
}

func DateTimeField(name string, rules ...Rule[time.Time]) FilterField {
	return FilterField{Name: name, Kind: KindDateTime, read: func(r *FiltersReader, exprs []string) {
		r.ReadDateTime(name, exprs, rules...)
	}}
}

// RawQuery es la entrada sin tipar, venga de la query string o de un cuerpo JSON.
type RawQuery struct {
	Page    string
	Size    string
	Sort    []string
	Fields  []string
	Filters map[string][]string
}

// Schema describe lo que una entidad permite filtrar, ordenar y seleccionar.
// S y F son los enums (constantes string) de orden y selección de la entidad.
type Schema[S ~string, F ~string] struct {
	Filters     []FilterField
	Sortable    []S
	DefaultSort []S
	Selectable  []F
	MaxSize     int
}

// FilterNames devuelve los nombres de los campos filtrables en orden de declaración.
func (s Schema[S, F]) FilterNames() []string {
	names := make([]string, len(s.Filters))
	for i, f := range s.Filters {
		names[i] = f.Name
	}
	return names
}

// Read valida raw completo. Todos los problemas (filtros, página, tamaño, orden y
// selección) acaban en un único ErrorReport; si hay alguno no se devuelve FindQuery.
func (s Schema[S, F]) Read(raw RawQuery) (*FindQuery, error) {
	reader := NewFiltersReader()
	for _, field := range s.Filters {
		field.read(reader, raw.Filters[field.Name])
	}

	maxSize := s.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	page, err := parsePage(raw.Page)
	if err != nil {
		reader.AddError("page", err)
	}
	size, err := parseSize(raw.Size, maxSize)
	if err != nil {
		reader.AddError("size", err)
	}
	sort, err := ParseEnumList(raw.Sort, s.Sortable)
	if err != nil {
		reader.AddError("sort", err)
	}
	fields, err := ParseEnumList(raw.Fields, s.Selectable)
	if err != nil {
		reader.AddError("fields", err)
	}

	filters, evalErr := reader.Eval()
	if evalErr != nil {
		return nil, evalErr
	}
	if len(sort) == 0 {
		sort = s.DefaultSort
	}
	return NewFindQuery(page, size, sort, fields, filters), nil
}

// ParseEnumList convierte valores de texto a los enums permitidos.
// Los valores vacíos se ignoran; el primero desconocido es un error invalid_choice.
func ParseEnumList[E ~string](values []string, allowed []E) ([]E, *FieldError) {
	result := make([]E, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		found := false
		for _, a := range allowed {
			if string(a) == v {
				result = append(result, a)
				found = true
				break
			}
		}
		if !found {
			names := make([]string, len(allowed))
			for i, a := range allowed {
				names[i] = string(a)
			}
			return nil, NewFieldError(
				CodeInvalidChoice, fmt.Sprintf("'%s' is not a valid choice. use: %s", v, strings.Join(names, ", ")),
			).WithParam("value", v)
		}
	}
	return result, nil
}

func parsePage(raw string) (int, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1, NewFieldError(CodeInvalidPage, "page must be a positive integer").WithParam("value", raw)
	}
	return page, nil
}

func parseSize(raw string, maxSize int) (int, *FieldError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return maxSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 || size > maxSize {
		return maxSize, NewFieldError(
			CodeInvalidSize, fmt.Sprintf("size must be an integer between 1 and %d", maxSize),
		).WithParam("value", raw).WithParam("max", maxSize)
	}
	return size, nil
}
