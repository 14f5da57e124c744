package services

import "github.com/yukikurage/homebase/internal/models"

// CanMutate reports whether actorID may edit or delete owned.
func CanMutate(actorID uint64, owned models.Owned) bool {
	return actorID != 0 && owned != nil && owned.OwnerID() == actorID
}

func ensureOwner(actorID uint64, owned models.Owned) error {
	if !CanMutate(actorID, owned) {
		return ErrPermissionDenied
	}
	return nil
}
