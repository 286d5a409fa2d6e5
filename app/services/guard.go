package services

import "blogstore/app/models"

// IsOwner reports whether caller may mutate a resource owned by owner. There
// is no role hierarchy and no admin override.
func IsOwner(caller, owner models.Principal) bool {
	return caller == owner
}
