package query

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FiltersReader ejecuta los builders campo a campo sin detenerse en el primer fallo
// y acumula un ErrorReport con todo lo que falló.
type FiltersReader struct {
	filters map[string]Criteria
	errors  ErrorReport
}

func NewFiltersReader() *FiltersReader {
	return &FiltersReader{
		filters: make(map[string]Criteria),
		errors:  make(ErrorReport),
	}
}

func (r *FiltersReader) ReadString(field string, exprs []string, indexed bool, rules ...Rule[string]) *FiltersReader {
	if len(exprs) == 0 {
		return r
	}
	c, err := BuildStringCriteria(exprs, indexed, rules...)
	return store(r, field, c, err)
}

func (r *FiltersReader) ReadNumeric(field string, exprs []string, rules ...Rule[float64]) *FiltersReader {
	if len(exprs) == 0 {
		return r
	}
	c, err := BuildNumericCriteria(exprs, rules...)
	return store(r, field, c, err)
}

func (r *FiltersReader) ReadBoolean(field string, exprs []string, rules ...Rule[bool]) *FiltersReader {
	if len(exprs) == 0 {
		return r
	}
	c, err := BuildBooleanCriteria(exprs, rules...)
	return store(r, field, c, err)
}

func (r *FiltersReader) ReadIdentifier(field string, exprs []string, rules ...Rule[primitive.ObjectID]) *FiltersReader {
	if len(exprs) == 0 {
		return r
	}
	c, err := BuildIdentifierCriteria(exprs, rules...)
	return store(r, field, c, err)
}

func (r *FiltersReader) ReadDateTime(field string, exprs []string, rules ...Rule[time.Time]) *FiltersReader {
	if len(exprs) == 0 {
		return r
	}
	c, err := BuildDateTimeCriteria(exprs, rules...)
	return store(r, field, c, err)
}

// AddError registra un error ajeno a los filtros (página, orden...) en el mismo informe.
func (r *FiltersReader) AddError(field string, err *FieldError) {
	r.errors.Add(field, err)
}

// Eval devuelve los filtros solo si ningún campo falló; en otro caso devuelve el informe completo
// y ningún filtro.
func (r *FiltersReader) Eval() (map[string]Criteria, error) {
	if len(r.errors) > 0 {
		return nil, r.errors
	}
	return r.filters, nil
}

// store guarda el criterio en el mapa. El puntero tipado se desreferencia para que
// los consumidores hagan type switch sobre valores.
func store[C Criteria](r *FiltersReader, field string, c *C, err error) *FiltersReader {
	if err != nil {
		r.errors.Add(field, asFieldError(err))
		return r
	}
	r.filters[field] = *c
	return r
}

func asFieldError(err error) *FieldError {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return NewFieldError("invalid", err.Error())
}
