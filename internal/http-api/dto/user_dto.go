package dto

import (
	"time"

	"mangaist/internal/http-api/models"
)

// CreateUserRequest used for the admin-only POST /api/users.
type CreateUserRequest struct {
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email" binding:"required,email"`
	AuthID        string `json:"auth_id" binding:"required"`
	ProfilePublic bool   `json:"profile_public"`
}

// UpdateUserDTO used for PATCH /api/users/:id. Explicit allow-list: the
// auth identity, role and email of a user are never patchable here.
type UpdateUserDTO struct {
	Name             *string `json:"name,omitempty"`
	Surname          *string `json:"surname,omitempty"`
	Nickname         *string `json:"nickname,omitempty"`
	ProfilePublic    *bool   `json:"profile_public,omitempty"`
	ProfileCompleted *bool   `json:"profile_completed,omitempty"`
}

func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Name != nil {
		u.Name = *d.Name
	}
	if d.Surname != nil {
		u.Surname = *d.Surname
	}
	if d.Nickname != nil {
		u.Nickname = *d.Nickname
	}
	if d.ProfilePublic != nil {
		u.ProfilePublic = *d.ProfilePublic
	}
	if d.ProfileCompleted != nil {
		u.ProfileCompleted = *d.ProfileCompleted
	}
}

// UserResponse is the full profile, returned only to the owner, an admin, or
// anyone when the profile is public.
type UserResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Surname          string                 `json:"surname"`
	Nickname         string                 `json:"nickname"`
	Email            string                 `json:"email"`
	ProfileImage     string                 `json:"profile_image"`
	ProfilePublic    bool                   `json:"profile_public"`
	Role             string                 `json:"role"`
	ProfileCompleted bool                   `json:"profile_completed"`
	CreatedAt        time.Time              `json:"created_at"`
	Catalog          []CatalogEntryResponse `json:"catalog"`
	FavoritePanels   []PanelResponse        `json:"favorite_panels"`
}

// PublicUserResponse is the reduced projection for private profiles.
type PublicUserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Nickname      string `json:"nickname"`
	ProfileImage  string `json:"profile_image"`
	ProfilePublic bool   `json:"profile_public"`
}

type UserListResponse struct {
	Items    []UserResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func FromModelToUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Surname:          u.Surname,
		Nickname:         u.Nickname,
		Email:            u.Email,
		ProfileImage:     u.ProfileImage,
		ProfilePublic:    u.ProfilePublic,
		Role:             u.Role,
		ProfileCompleted: u.ProfileCompleted,
		CreatedAt:        u.CreatedAt,
		Catalog:          []CatalogEntryResponse{},
		FavoritePanels:   []PanelResponse{},
	}
}

func FromModelToPublicUser(u models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Nickname:      u.Nickname,
		ProfileImage:  u.ProfileImage,
		ProfilePublic: u.ProfilePublic,
	}
}
