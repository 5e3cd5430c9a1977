package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mangaist/internal/cache"
	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
)

var (
	ErrMangaNotFound     = errors.New("manga not found")
	ErrDefaultManga      = errors.New("default manga cannot be deleted")
	ErrCharacterNotFound = errors.New("character not found")
)

const mangaCachePrefix = "manga:"

type MangaService interface {
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedMangaResponse, error)
	Get(ctx context.Context, id int64) (*dto.MangaResponse, error)
	Create(ctx context.Context, caller Caller, d dto.CreateMangaDTO) (*dto.MangaResponse, error)
	Update(ctx context.Context, caller Caller, id int64, d dto.UpdateMangaDTO) (*dto.MangaResponse, error)
	// Delete is the direct global deletion entry point; it refuses default
	// manga and cascades catalog entries for everything else. Returns the
	// number of users whose catalogs referenced the manga.
	Delete(ctx context.Context, caller Caller, id int64) (int64, error)
	SetCoverImage(ctx context.Context, caller Caller, id int64, imageURL string) (*dto.MangaResponse, error)
	AddCharacter(ctx context.Context, caller Caller, id int64, name string, imageURL *string) (*dto.MangaResponse, error)
	UpdateCharacter(ctx context.Context, caller Caller, mangaID, characterID int64, name *string, imageURL *string) (*dto.MangaResponse, error)
}

type mangaService struct {
	repo  repository.MangaRepository
	cache *cache.Cache
}

func NewMangaService(repo repository.MangaRepository, c *cache.Cache) MangaService {
	return &mangaService{repo: repo, cache: c}
}

func (s *mangaService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedMangaResponse, error) {
	key := fmt.Sprintf("%slist:%d:%d", mangaCachePrefix, page, pageSize)
	var cached dto.PaginatedMangaResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	list, total, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MangaResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromModelToMangaResponse(m))
	}

	resp := &dto.PaginatedMangaResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	s.cache.SetJSON(ctx, key, resp)
	return resp, nil
}

func (s *mangaService) Get(ctx context.Context, id int64) (*dto.MangaResponse, error) {
	key := fmt.Sprintf("%sid:%d", mangaCachePrefix, id)
	var cached dto.MangaResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToMangaResponse(*m)
	s.cache.SetJSON(ctx, key, &resp)
	return &resp, nil
}

func (s *mangaService) Create(ctx context.Context, caller Caller, d dto.CreateMangaDTO) (*dto.MangaResponse, error) {
	m := d.ToModel()
	if d.IsDefault != nil && *d.IsDefault {
		// Only admins may add shared catalog-wide manga
		if !caller.IsAdmin() {
			return nil, ErrForbidden
		}
		m.IsDefault = true
	} else {
		creator := caller.ID
		m.CreatedBy = &creator
	}

	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	resp := dto.FromModelToMangaResponse(m)
	return &resp, nil
}

// canMutate: default manga belong to everyone, so only admins may change
// them; personal manga follow the owner-or-admin rule.
func (s *mangaService) canMutate(caller Caller, m *models.Manga) bool {
	if caller.IsAdmin() {
		return true
	}
	if m.IsDefault || m.CreatedBy == nil {
		return false
	}
	return *m.CreatedBy == caller.ID
}

func (s *mangaService) Update(ctx context.Context, caller Caller, id int64, d dto.UpdateMangaDTO) (*dto.MangaResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, err
	}

	if !s.canMutate(caller, m) {
		return nil, ErrForbidden
	}

	d.ApplyTo(m)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	resp := dto.FromModelToMangaResponse(*m)
	return &resp, nil
}

func (s *mangaService) Delete(ctx context.Context, caller Caller, id int64) (int64, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrMangaNotFound
		}
		return 0, err
	}

	if m.IsDefault {
		return 0, ErrDefaultManga
	}
	if !s.canMutate(caller, m) {
		return 0, ErrForbidden
	}

	usersAffected, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return 0, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	return usersAffected, nil
}

func (s *mangaService) SetCoverImage(ctx context.Context, caller Caller, id int64, imageURL string) (*dto.MangaResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, err
	}

	if !s.canMutate(caller, m) {
		return nil, ErrForbidden
	}

	m.CoverImage = &imageURL
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	resp := dto.FromModelToMangaResponse(*m)
	return &resp, nil
}

func (s *mangaService) AddCharacter(ctx context.Context, caller Caller, id int64, name string, imageURL *string) (*dto.MangaResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, err
	}

	if !s.canMutate(caller, m) {
		return nil, ErrForbidden
	}

	ch := &models.Character{
		MangaID: id,
		Name:    name,
		Image:   imageURL,
	}
	if err := s.repo.AddCharacter(ctx, ch); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	return s.reload(ctx, id)
}

func (s *mangaService) UpdateCharacter(ctx context.Context, caller Caller, mangaID, characterID int64, name *string, imageURL *string) (*dto.MangaResponse, error) {
	m, err := s.repo.GetByID(ctx, mangaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, err
	}

	if !s.canMutate(caller, m) {
		return nil, ErrForbidden
	}

	ch, err := s.repo.GetCharacter(ctx, mangaID, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}

	if name != nil {
		ch.Name = *name
	}
	if imageURL != nil {
		ch.Image = imageURL
	}
	if err := s.repo.UpdateCharacter(ctx, ch); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, mangaCachePrefix)
	return s.reload(ctx, mangaID)
}

func (s *mangaService) reload(ctx context.Context, id int64) (*dto.MangaResponse, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToMangaResponse(*m)
	return &resp, nil
}
