package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailInUse   = errors.New("email already in use")
)

type UserService interface {
	List(ctx context.Context, caller Caller, page, pageSize int) (*dto.UserListResponse, error)
	ListPublic(ctx context.Context) ([]dto.PublicUserResponse, error)
	GetPublic(ctx context.Context, userID string) (*dto.PublicUserResponse, error)
	// Get returns the full profile (catalog and panels included) when the
	// caller may see it, otherwise the reduced public projection.
	Get(ctx context.Context, caller Caller, userID string) (*dto.UserResponse, *dto.PublicUserResponse, error)
	Create(ctx context.Context, caller Caller, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, caller Caller, userID string, d dto.UpdateUserDTO) (*dto.UserResponse, error)
	SetProfileImage(ctx context.Context, caller Caller, userID, imageURL string) (*dto.UserResponse, error)
	Delete(ctx context.Context, caller Caller, userID string) error
}

type userService struct {
	repo        repository.UserRepository
	catalogRepo repository.CatalogRepository
	panelRepo   repository.PanelRepository
}

func NewUserService(
	repo repository.UserRepository,
	catalogRepo repository.CatalogRepository,
	panelRepo repository.PanelRepository,
) UserService {
	return &userService{
		repo:        repo,
		catalogRepo: catalogRepo,
		panelRepo:   panelRepo,
	}
}

func (s *userService) find(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// fullResponse assembles the complete profile with catalog and panels.
func (s *userService) fullResponse(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	resp := dto.FromModelToUserResponse(*user)

	entries, err := s.catalogRepo.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		resp.Catalog = append(resp.Catalog, dto.FromModelToCatalogEntryResponse(e))
	}

	panels, err := s.panelRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range panels {
		resp.FavoritePanels = append(resp.FavoritePanels, dto.FromModelToPanelResponse(p))
	}

	return &resp, nil
}

func (s *userService) List(ctx context.Context, caller Caller, page, pageSize int) (*dto.UserListResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	users, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.FromModelToUserResponse(u))
	}

	return &dto.UserListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *userService) ListPublic(ctx context.Context) ([]dto.PublicUserResponse, error) {
	users, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PublicUserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.FromModelToPublicUser(u))
	}
	return items, nil
}

func (s *userService) GetPublic(ctx context.Context, userID string) (*dto.PublicUserResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Private profiles are not discoverable through the public routes
	if !user.ProfilePublic {
		return nil, ErrUserNotFound
	}

	resp := dto.FromModelToPublicUser(*user)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, caller Caller, userID string) (*dto.UserResponse, *dto.PublicUserResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if !CanViewFullProfile(caller, user) {
		resp := dto.FromModelToPublicUser(*user)
		return nil, &resp, nil
	}

	full, err := s.fullResponse(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return full, nil, nil
}

func (s *userService) Create(ctx context.Context, caller Caller, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	}

	user := &models.User{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Surname:       req.Surname,
		Nickname:      req.Nickname,
		Email:         req.Email,
		AuthID:        req.AuthID,
		ProfilePublic: req.ProfilePublic,
		Role:          models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.FromModelToUserResponse(*user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, caller Caller, userID string, d dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if !IsOwnerOrAdmin(caller, userID) {
		return nil, ErrForbidden
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.ApplyTo(user)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.fullResponse(ctx, user)
}

func (s *userService) SetProfileImage(ctx context.Context, caller Caller, userID, imageURL string) (*dto.UserResponse, error) {
	if !IsOwnerOrAdmin(caller, userID) {
		return nil, ErrForbidden
	}

	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ProfileImage = imageURL
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.fullResponse(ctx, user)
}

func (s *userService) Delete(ctx context.Context, caller Caller, userID string) error {
	if !IsOwnerOrAdmin(caller, userID) {
		return ErrForbidden
	}

	// Hard delete of the account record only; manga and messages referencing
	// the user are kept, matching the documented lifecycle
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
