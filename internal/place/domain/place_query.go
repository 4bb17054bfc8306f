package domain

import (
	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

// PlaceSort son las claves de orden admitidas; '-' indica descendente.
type PlaceSort string

const (
	SortCreatedAtAsc    PlaceSort = "createdAt"
	SortCreatedAtDesc   PlaceSort = "-createdAt"
	SortTitleAsc        PlaceSort = "title"
	SortTitleDesc       PlaceSort = "-title"
	SortDescriptionAsc  PlaceSort = "description"
	SortDescriptionDesc PlaceSort = "-description"
	SortAddressAsc      PlaceSort = "address"
	SortAddressDesc     PlaceSort = "-address"
)

// PlaceField son los campos seleccionables en la respuesta.
type PlaceField string

const (
	FieldID          PlaceField = "id"
	FieldTitle       PlaceField = "title"
	FieldDescription PlaceField = "description"
	FieldAddress     PlaceField = "address"
	FieldLocationLat PlaceField = "location.lat"
	FieldLocationLng PlaceField = "location.lng"
	FieldImageURL    PlaceField = "imageUrl"
	FieldCreatorID   PlaceField = "creatorId"
)

// NewQuerySchema declara qué se puede filtrar, ordenar y seleccionar en los lugares.
// title y description tienen índice de texto.
func NewQuerySchema(maxSize int) query.Schema[PlaceSort, PlaceField] {
	return query.Schema[PlaceSort, PlaceField]{
		Filters: []query.FilterField{
			query.IdentifierField("id"),
			query.StringField("title", true, query.Tag[string]("min=10")),
			query.StringField("description", true, query.Tag[string]("min=10")),
			query.StringField("address", false, query.Tag[string]("min=10")),
			query.IdentifierField("creatorId"),
			query.NumericField("locationLat", query.Tag[float64]("gte=-90,lte=90")),
			query.NumericField("locationLng", query.Tag[float64]("gte=-180,lte=180")),
			query.DateTimeField("createdAt"),
		},
		Sortable: []PlaceSort{
			SortCreatedAtAsc, SortCreatedAtDesc,
			SortTitleAsc, SortTitleDesc,
			SortDescriptionAsc, SortDescriptionDesc,
			SortAddressAsc, SortAddressDesc,
		},
		DefaultSort: []PlaceSort{SortCreatedAtDesc},
		Selectable: []PlaceField{
			FieldID, FieldTitle, FieldDescription, FieldAddress,
			FieldLocationLat, FieldLocationLng, FieldImageURL, FieldCreatorID,
		},
		MaxSize: maxSize,
	}
}
