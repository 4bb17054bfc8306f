package query

import (
	"fmt"
	"sort"
	"strings"
)

// ---------- Códigos de error ----------

const (
	// Gramática
	CodeUnknownOperator       = "unknown_operator"
	CodeDuplicateOperator     = "duplicate_operator"
	CodeIncompatibleOperators = "incompatible_operators"
	CodeBadOperator           = "bad_operator"

	// Conversión de tipos
	CodeNotANumber      = "not_a_number"
	CodeInvalidBoolean  = "invalid_boolean"
	CodeInvalidObjectID = "invalid_object_id"
	CodeInvalidDatetime = "invalid_datetime"

	// Paginación, orden y selección
	CodeInvalidPage   = "invalid_page"
	CodeInvalidSize   = "invalid_size"
	CodeInvalidChoice = "invalid_choice"
)

// FieldError describe un único problema de un campo. Se serializa tal cual en la respuesta 422.
type FieldError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params"`
}

// NewFieldError crea un FieldError con params vacíos (nunca null en JSON).
func NewFieldError(code, message string) *FieldError {
	return &FieldError{Code: code, Message: message, Params: map[string]any{}}
}

// WithParam añade un parámetro y devuelve el mismo error para encadenar.
func (e *FieldError) WithParam(key string, value any) *FieldError {
	if e.Params == nil {
		e.Params = map[string]any{}
	}
	e.Params[key] = value
	return e
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorReport agrupa los errores por nombre de campo.
// Un campo ausente del mapa se ha procesado sin problemas.
type ErrorReport map[string][]*FieldError

// Add añade err bajo field, respetando el orden de llegada.
func (r ErrorReport) Add(field string, err *FieldError) {
	r[field] = append(r[field], err)
}

func (r ErrorReport) Error() string {
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, err := range r[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, err.Message))
		}
	}
	return "invalid query: " + strings.Join(parts, "; ")
}
