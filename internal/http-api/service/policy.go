package service

import (
	"errors"

	"mangaist/internal/http-api/models"
)

var ErrForbidden = errors.New("forbidden")

// Caller identifies the authenticated user behind a request, as extracted
// from the access token by the auth middleware.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// IsOwnerOrAdmin is the gate for every owner-scoped mutation.
func IsOwnerOrAdmin(caller Caller, ownerID string) bool {
	return caller.IsAdmin() || caller.ID == ownerID
}

// CanViewFullProfile: the full user record is visible to its owner, to an
// admin, or to anyone when the profile is public. Everyone else gets the
// reduced projection.
func CanViewFullProfile(caller Caller, user *models.User) bool {
	return user.ProfilePublic || IsOwnerOrAdmin(caller, user.ID)
}

// ResolveRole applies the admin email allowlist at identity-resolution
// time. It only ever promotes: an existing admin keeps the role even if the
// email later leaves the list.
func ResolveRole(email, current string, isAdminEmail func(string) bool) string {
	if current == models.RoleAdmin {
		return models.RoleAdmin
	}
	if isAdminEmail(email) {
		return models.RoleAdmin
	}
	return models.RoleUser
}
