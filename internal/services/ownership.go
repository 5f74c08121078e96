package services

import (
	"fmt"

	"github.com/google/uuid"

	"mindcare/internal/models/db_models"
	"mindcare/pkg/utils"
)

// Principal is the authenticated caller as resolved by the JWT middleware.
type Principal struct {
	ID   uuid.UUID
	Role db_models.Role
}

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Authorize allows the owner or an admin; everyone else gets ErrNotAuthorized.
// The rule is the same for every resource type.
func Authorize(p Principal, ownerID uuid.UUID, action Action) error {
	if p.ID != uuid.Nil && p.ID == ownerID {
		return nil
	}
	if p.Role == db_models.RoleAdmin {
		return nil
	}
	return fmt.Errorf("%w: %s denied", utils.ErrNotAuthorized, action)
}
