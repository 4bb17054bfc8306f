package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	sharedBus "github.com/davicafu/hexaplaces/internal/shared/infra/platform/bus"
)

// User representa un usuario del sistema.
type User struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	IsAdmin   bool               `json:"isAdmin"`
	ImageURL  string             `json:"imageUrl,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewUser crea un usuario con id y fechas nuevas. El email se guarda en minúsculas.
func NewUser(name, email string, isAdmin bool) *User {
	now := time.Now().UTC()
	return &User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     NormalizeEmail(email),
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) PartitionKey() string {
	return u.ID.Hex()
}

// UserPatch describe una actualización parcial.
type UserPatch struct {
	Name    *string
	Email   *string
	IsAdmin *bool
}

func (u *User) Patch(changes UserPatch) {
	if changes.Name != nil {
		u.Name = *changes.Name
	}
	if changes.Email != nil {
		u.Email = NormalizeEmail(*changes.Email)
	}
	if changes.IsAdmin != nil {
		u.IsAdmin = *changes.IsAdmin
	}
	u.UpdatedAt = time.Now().UTC()
}

// Verificación estática para asegurar que User implementa la interfaz
var _ sharedBus.Keyer = (*User)(nil)
