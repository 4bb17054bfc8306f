package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place es un lugar publicado por un usuario.
type Place struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Location    Location           `json:"location"`
	ImageURL    string             `json:"imageUrl,omitempty"`
	CreatorID   primitive.ObjectID `json:"creatorId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// NewPlace crea un lugar con id y fechas nuevas.
func NewPlace(title, description, address string, loc Location, creatorID primitive.ObjectID) *Place {
	now := time.Now().UTC()
	return &Place{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Address:     address,
		Location:    loc,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Place) PartitionKey() string {
	return p.ID.Hex()
}

// Patch aplica solo los campos presentes.
func (p *Place) Patch(changes PlacePatch) {
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.Address != nil {
		p.Address = *changes.Address
	}
	if changes.Location != nil {
		p.Location = *changes.Location
	}
	if changes.CreatorID != nil {
		p.CreatorID = *changes.CreatorID
	}
	p.UpdatedAt = time.Now().UTC()
}

// PlacePatch describe una actualización parcial.
type PlacePatch struct {
	Title       *string
	Description *string
	Address     *string
	Location    *Location
	CreatorID   *primitive.ObjectID
}

var _ sharedBus.Keyer = (*Place)(nil)
