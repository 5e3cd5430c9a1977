package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mangaist/internal/cache"
	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
)

var (
	ErrAlreadyInCatalog   = errors.New("manga already in catalog")
	ErrEntryNotFound      = errors.New("manga not in catalog")
	ErrInvalidCatalogBody = errors.New("exactly one of manga_id or manga payload is required")
)

type CatalogService interface {
	Add(ctx context.Context, caller Caller, userID string, req dto.AddToCatalogRequest) (*dto.CatalogEntryResponse, error)
	List(ctx context.Context, caller Caller, userID string) (*dto.CatalogListResponse, error)
	Get(ctx context.Context, caller Caller, userID string, mangaID int64) (*dto.CatalogEntryResponse, error)
	UpdateProgress(ctx context.Context, caller Caller, userID string, mangaID int64, req dto.UpdateProgressRequest) (*dto.CatalogEntryResponse, error)
	// Remove deletes the catalog entry; a personal (non-default) manga is
	// cascade-deleted globally, pulling it from every user's catalog.
	Remove(ctx context.Context, caller Caller, userID string, mangaID int64) error
}

type catalogService struct {
	repo      repository.CatalogRepository
	mangaRepo repository.MangaRepository
	userRepo  repository.UserRepository
	cache     *cache.Cache
}

func NewCatalogService(
	repo repository.CatalogRepository,
	mangaRepo repository.MangaRepository,
	userRepo repository.UserRepository,
	c *cache.Cache,
) CatalogService {
	return &catalogService{
		repo:      repo,
		mangaRepo: mangaRepo,
		userRepo:  userRepo,
		cache:     c,
	}
}

func (s *catalogService) Add(ctx context.Context, caller Caller, userID string, req dto.AddToCatalogRequest) (*dto.CatalogEntryResponse, error) {
	if !IsOwnerOrAdmin(caller, userID) {
		return nil, ErrForbidden
	}
	if (req.MangaID == nil) == (req.Manga == nil) {
		return nil, ErrInvalidCatalogBody
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := &models.CatalogEntry{
		UserID:        userID,
		ReadingStatus: models.ReadingStatusToRead,
		CreatedBy:     caller.ID,
	}

	if req.MangaID != nil {
		// Reference an existing manga (typically a default one)
		if _, err := s.mangaRepo.GetByID(ctx, *req.MangaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMangaNotFound
			}
			return nil, err
		}

		exists, err := s.repo.Exists(ctx, userID, *req.MangaID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyInCatalog
		}

		entry.MangaID = *req.MangaID
		if err := s.repo.Add(ctx, entry); err != nil {
			return nil, err
		}
	} else {
		// Create a personal manga plus its entry in one transaction
		manga := req.Manga.ToModel()
		manga.IsDefault = false
		owner := userID
		manga.CreatedBy = &owner

		if err := s.repo.AddWithManga(ctx, &manga, entry); err != nil {
			return nil, err
		}
		s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	}

	created, err := s.repo.Get(ctx, userID, entry.MangaID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCatalogEntryResponse(*created)
	return &resp, nil
}

// canRead: a user's catalog is visible to its owner, an admin, or anyone
// when the profile is public.
func (s *catalogService) canRead(ctx context.Context, caller Caller, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !CanViewFullProfile(caller, user) {
		return ErrForbidden
	}
	return nil
}

func (s *catalogService) List(ctx context.Context, caller Caller, userID string) (*dto.CatalogListResponse, error) {
	if err := s.canRead(ctx, caller, userID); err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromModelToCatalogEntryResponse(e))
	}

	return &dto.CatalogListResponse{Items: items, Total: len(items)}, nil
}

func (s *catalogService) Get(ctx context.Context, caller Caller, userID string, mangaID int64) (*dto.CatalogEntryResponse, error) {
	if err := s.canRead(ctx, caller, userID); err != nil {
		return nil, err
	}

	entry, err := s.repo.Get(ctx, userID, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToCatalogEntryResponse(*entry)
	return &resp, nil
}

func (s *catalogService) UpdateProgress(ctx context.Context, caller Caller, userID string, mangaID int64, req dto.UpdateProgressRequest) (*dto.CatalogEntryResponse, error) {
	if !IsOwnerOrAdmin(caller, userID) {
		return nil, ErrForbidden
	}

	entry, err := s.repo.Get(ctx, userID, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	// Progress is overwritten as given. There is deliberately no upper
	// bound against the manga's listed totals: unofficial chapter counts
	// regularly run ahead of the record.
	entry.CurrentChapter = *req.CurrentChapter
	entry.CurrentVolume = *req.CurrentVolume
	if req.ReadingStatus != nil {
		entry.ReadingStatus = *req.ReadingStatus
	}

	if err := s.repo.UpdateProgress(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	updated, err := s.repo.Get(ctx, userID, mangaID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCatalogEntryResponse(*updated)
	return &resp, nil
}

func (s *catalogService) Remove(ctx context.Context, caller Caller, userID string, mangaID int64) error {
	if !IsOwnerOrAdmin(caller, userID) {
		return ErrForbidden
	}

	entry, err := s.repo.Get(ctx, userID, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	if entry.Manga != nil && entry.Manga.IsDefault {
		// Shared manga stay in the global catalog; only this user's entry goes
		return s.repo.Remove(ctx, userID, mangaID)
	}

	// Personal manga: deleting the last reference deletes the record, and
	// with it every other catalog entry still pointing at it
	if _, err := s.mangaRepo.DeleteCascade(ctx, mangaID); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	return nil
}
