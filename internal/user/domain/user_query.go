package domain

import (
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

type UserSort string

const (
	SortCreatedAtAsc  UserSort = "createdAt"
	SortCreatedAtDesc UserSort = "-createdAt"
	SortNameAsc       UserSort = "name"
	SortNameDesc      UserSort = "-name"
	SortEmailAsc      UserSort = "email"
	SortEmailDesc     UserSort = "-email"
)

type UserField string

const (
	FieldID       UserField = "id"
	FieldName     UserField = "name"
	FieldEmail    UserField = "email"
	FieldIsAdmin  UserField = "isAdmin"
	FieldImageURL UserField = "imageUrl"
)

// NewQuerySchema declara qué se puede filtrar, ordenar y seleccionar en los usuarios.
// Ningún campo tiene índice de texto.
func NewQuerySchema(maxSize int) query.Schema[UserSort, UserField] {
	return query.Schema[UserSort, UserField]{
		Filters: []query.FilterField{
			query.IdentifierField("id"),
			query.StringField("name", false, query.Tag[string]("min=2")),
			query.StringField("email", false, query.EmailStrict()),
			query.BooleanField("isAdmin"),
			query.DateTimeField("createdAt"),
		},
		Sortable: []UserSort{
			SortCreatedAtAsc, SortCreatedAtDesc,
			SortNameAsc, SortNameDesc,
			SortEmailAsc, SortEmailDesc,
		},
		DefaultSort: []UserSort{SortCreatedAtDesc},
		Selectable:  []UserField{FieldID, FieldName, FieldEmail, FieldIsAdmin, FieldImageURL},
		MaxSize:     maxSize,
	}
}
