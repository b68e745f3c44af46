package actor

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

func (a Actor) RequireAdmin() error {
	if !a.IsAdmin {
		return httperr.ErrBusiness(httperr.CodeUnauthorized)
	}
	return nil
}

// CanActOn reports whether the actor may touch a record owned by owner.
func (a Actor) CanActOn(owner uuid.UUID) bool {
	return a.IsAdmin || (a.ID != uuid.Nil && a.ID == owner)
}
