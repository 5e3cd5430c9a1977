package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mangaist/internal/http-api/models"
)

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := Caller{ID: "u1", Role: models.RoleUser}
	admin := Caller{ID: "a1", Role: models.RoleAdmin}
	other := Caller{ID: "u2", Role: models.RoleUser}

	assert.True(t, IsOwnerOrAdmin(owner, "u1"))
	assert.True(t, IsOwnerOrAdmin(admin, "u1"))
	assert.False(t, IsOwnerOrAdmin(other, "u1"))
}

func TestCanViewFullProfile(t *testing.T) {
	publicUser := &models.User{ID: "u1", ProfilePublic: true}
	privateUser := &models.User{ID: "u1", ProfilePublic: false}

	stranger := Caller{ID: "u2", Role: models.RoleUser}
	owner := Caller{ID: "u1", Role: models.RoleUser}
	admin := Caller{ID: "a1", Role: models.RoleAdmin}

	assert.True(t, CanViewFullProfile(stranger, publicUser))
	assert.False(t, CanViewFullProfile(stranger, privateUser))
	assert.True(t, CanViewFullProfile(owner, privateUser))
	assert.True(t, CanViewFullProfile(admin, privateUser))
}

func TestResolveRole_PromotesAllowlistedEmail(t *testing.T) {
	isAdmin := func(email string) bool { return email == "boss@example.com" }

	assert.Equal(t, models.RoleAdmin, ResolveRole("boss@example.com", models.RoleUser, isAdmin))
	assert.Equal(t, models.RoleUser, ResolveRole("user@example.com", models.RoleUser, isAdmin))
}

func TestResolveRole_NeverDemotes(t *testing.T) {
	// Email no longer on the allowlist, but the user is already an admin
	isAdmin := func(string) bool { return false }

	assert.Equal(t, models.RoleAdmin, ResolveRole("former@example.com", models.RoleAdmin, isAdmin))
}
