package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---------------- Tipos de dato ----------------

// Kind identifica la variante de Criteria (y el conversor que la produce).
type Kind string

const (
	KindString     Kind = "string"
	KindNumeric    Kind = "numeric"
	KindBoolean    Kind = "boolean"
	KindIdentifier Kind = "objectId"
	KindDateTime   Kind = "datetime"
)

// ---------------- Condition ----------------

// Condition es un par operador/valor neutral, listo para traducir a cualquier store.
type Condition struct {
	Op    Operator
	Value any
}

// ---------------- Criteria ----------------

// Criteria es la unión cerrada de filtros tipados de un campo.
// Las únicas implementaciones son StringCriteria, NumericCriteria, BooleanCriteria,
// IdentifierCriteria y DateTimeCriteria; los consumidores hacen type switch sobre ellas.
type Criteria interface {
	Kind() Kind
	// Conditions devuelve los slots rellenos en orden fijo: eq, ne, gt, gte, lt, lte, in, nin, exists, regex, text.
	Conditions() []Condition
	sealed()
}

type StringCriteria struct {
	Eq     *string
	Ne     *string
	In     []string
	Nin    []string
	Exists *bool
	Regex  *string
	Text   *string
}

type NumericCriteria struct {
	Eq     *float64
	Ne     *float64
	Gt     *float64
	Gte    *float64
	Lt     *float64
	Lte    *float64
	In     []float64
	Nin    []float64
	Exists *bool
}

type BooleanCriteria struct {
	Eq     *bool
	Ne     *bool
	Exists *bool
}

// IdentifierCriteria filtra por ObjectID (24 hex).
type IdentifierCriteria struct {
	Eq     *primitive.ObjectID
	Ne     *primitive.ObjectID
	In     []primitive.ObjectID
	Nin    []primitive.ObjectID
	Exists *bool
}

type DateTimeCriteria struct {
	Eq     *time.Time
	Ne     *time.Time
	Gt     *time.Time
	Gte    *time.Time
	Lt     *time.Time
	Lte    *time.Time
	In     []time.Time
	Nin    []time.Time
	Exists *bool
}

func (StringCriteria) Kind() Kind     { return KindString }
func (NumericCriteria) Kind() Kind    { return KindNumeric }
func (BooleanCriteria) Kind() Kind    { return KindBoolean }
func (IdentifierCriteria) Kind() Kind { return KindIdentifier }
func (DateTimeCriteria) Kind() Kind   { return KindDateTime }

func (StringCriteria) sealed()     {}
func (NumericCriteria) sealed()    {}
func (BooleanCriteria) sealed()    {}
func (IdentifierCriteria) sealed() {}
func (DateTimeCriteria) sealed()   {}

func (c StringCriteria) Conditions() []Condition {
	var conds conditions
	addScalar(&conds, OpEq, c.Eq)
	addScalar(&conds, OpNe, c.Ne)
	addList(&conds, OpIn, c.In)
	addList(&conds, OpNin, c.Nin)
	addScalar(&conds, OpExists, c.Exists)
	addScalar(&conds, OpRegex, c.Regex)
	addScalar(&conds, OpText, c.Text)
	return conds
}

func (c NumericCriteria) Conditions() []Condition {
	var conds conditions
	addScalar(&conds, OpEq, c.Eq)
	addScalar(&conds, OpNe, c.Ne)
	addScalar(&conds, OpGt, c.Gt)
	addScalar(&conds, OpGte, c.Gte)
	addScalar(&conds, OpLt, c.Lt)
	addScalar(&conds, OpLte, c.Lte)
	addList(&conds, OpIn, c.In)
	addList(&conds, OpNin, c.Nin)
	addScalar(&conds, OpExists, c.Exists)
	return conds
}

func (c BooleanCriteria) Conditions() []Condition {
	var conds conditions
	addScalar(&conds, OpEq, c.Eq)
	addScalar(&conds, OpNe, c.Ne)
	addScalar(&conds, OpExists, c.Exists)
	return conds
}

func (c IdentifierCriteria) Conditions() []Condition {
	var conds conditions
	addScalar(&conds, OpEq, c.Eq)
	addScalar(&conds, OpNe, c.Ne)
	addList(&conds, OpIn, c.In)
	addList(&conds, OpNin, c.Nin)
	addScalar(&conds, OpExists, c.Exists)
	return conds
}

func (c DateTimeCriteria) Conditions() []Condition {
	var conds conditions
	addScalar(&conds, OpEq, c.Eq)
	addScalar(&conds, OpNe, c.Ne)
	addScalar(&conds, OpGt, c.Gt)
	addScalar(&conds, OpGte, c.Gte)
	addScalar(&conds, OpLt, c.Lt)
	addScalar(&conds, OpLte, c.Lte)
	addList(&conds, OpIn, c.In)
	addList(&conds, OpNin, c.Nin)
	addScalar(&conds, OpExists, c.Exists)
	return conds
}

// ---------------- Helpers ----------------

type conditions = []Condition

func addScalar[T any](conds *conditions, op Operator, val *T) {
	if val != nil {
		*conds = append(*conds, Condition{Op: op, Value: *val})
	}
}

func addList[T any](conds *conditions, op Operator, vals []T) {
	if vals != nil {
		*conds = append(*conds, Condition{Op: op, Value: vals})
	}
}

var (
	_ Criteria = StringCriteria{}
	_ Criteria = NumericCriteria{}
	_ Criteria = BooleanCriteria{}
	_ Criteria = IdentifierCriteria{}
	_ Criteria = DateTimeCriteria{}
)
