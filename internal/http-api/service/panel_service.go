package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mangaist/internal/http-api/dto"
	"mangaist/internal/http-api/models"
	"mangaist/internal/http-api/repository"
)

var ErrPanelNotFound = errors.New("panel not found")

type PanelService interface {
	Create(ctx context.Context, caller Caller, userID, imageURL string, d dto.CreatePanelDTO) (*dto.PanelResponse, error)
	// Get fetches a panel by id alone, for the shared panel routes.
	Get(ctx context.Context, panelID int64) (*dto.PanelResponse, error)
	// GetForUser fetches a panel scoped to its owning user's routes.
	GetForUser(ctx context.Context, userID string, panelID int64) (*dto.PanelResponse, error)
	Update(ctx context.Context, caller Caller, userID string, panelID int64, d dto.UpdatePanelDTO, newImageURL *string) (*dto.PanelResponse, error)
	// Delete removes the panel and returns the stored image URL so the
	// caller can clean up the media object.
	Delete(ctx context.Context, caller Caller, userID string, panelID int64) (string, error)
	// ToggleLike inserts or removes the caller's like; calling it twice is
	// a no-op overall.
	ToggleLike(ctx context.Context, caller Caller, panelID int64) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, caller Caller, panelID int64, text string) (*dto.PanelCommentResponse, error)
}

type panelService struct {
	repo repository.PanelRepository
}

func NewPanelService(repo repository.PanelRepository) PanelService {
	return &panelService{repo: repo}
}

func (s *panelService) Create(ctx context.Context, caller Caller, userID, imageURL string, d dto.CreatePanelDTO) (*dto.PanelResponse, error) {
	if !IsOwnerOrAdmin(caller, userID) {
		return nil, ErrForbidden
	}

	panel := &models.FavoritePanel{
		UserID:        userID,
		PanelImage:    imageURL,
		Description:   d.Description,
		MangaID:       d.MangaID,
		ChapterNumber: d.ChapterNumber,
		VolumeNumber:  d.VolumeNumber,
	}
	if err := s.repo.Create(ctx, panel); err != nil {
		return nil, err
	}

	resp := dto.FromModelToPanelResponse(*panel)
	return &resp, nil
}

func (s *panelService) Get(ctx context.Context, panelID int64) (*dto.PanelResponse, error) {
	panel, err := s.repo.GetByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToPanelResponse(*panel)
	return &resp, nil
}

func (s *panelService) GetForUser(ctx context.Context, userID string, panelID int64) (*dto.PanelResponse, error) {
	panel, err := s.repo.GetByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}
	if panel.UserID != userID {
		return nil, ErrPanelNotFound
	}

	resp := dto.FromModelToPanelResponse(*panel)
	return &resp, nil
}

// ownedPanel loads a panel and enforces the owner-only mutation rule.
func (s *panelService) ownedPanel(ctx context.Context, caller Caller, userID string, panelID int64) (*models.FavoritePanel, error) {
	panel, err := s.repo.GetByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}
	if panel.UserID != userID {
		return nil, ErrPanelNotFound
	}
	if !IsOwnerOrAdmin(caller, panel.UserID) {
		return nil, ErrForbidden
	}
	return panel, nil
}

func (s *panelService) Update(ctx context.Context, caller Caller, userID string, panelID int64, d dto.UpdatePanelDTO, newImageURL *string) (*dto.PanelResponse, error) {
	panel, err := s.ownedPanel(ctx, caller, userID, panelID)
	if err != nil {
		return nil, err
	}

	d.ApplyTo(panel)
	if newImageURL != nil {
		panel.PanelImage = *newImageURL
	}

	if err := s.repo.Update(ctx, panel); err != nil {
		return nil, err
	}

	resp := dto.FromModelToPanelResponse(*panel)
	return &resp, nil
}

func (s *panelService) Delete(ctx context.Context, caller Caller, userID string, panelID int64) (string, error) {
	panel, err := s.ownedPanel(ctx, caller, userID, panelID)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, panelID); err != nil {
		return "", err
	}
	return panel.PanelImage, nil
}

func (s *panelService) ToggleLike(ctx context.Context, caller Caller, panelID int64) (*dto.LikeResponse, error) {
	// Any authenticated user may like a panel; no owner restriction
	if _, err := s.repo.GetByID(ctx, panelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}

	liked, err := s.repo.HasLike(ctx, panelID, caller.ID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.repo.RemoveLike(ctx, panelID, caller.ID)
	} else {
		err = s.repo.AddLike(ctx, panelID, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountLikes(ctx, panelID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{
		PanelID:   panelID,
		Liked:     !liked,
		LikeCount: count,
	}, nil
}

func (s *panelService) AddComment(ctx context.Context, caller Caller, panelID int64, text string) (*dto.PanelCommentResponse, error) {
	// Comments are open to any authenticated user and append-only
	if _, err := s.repo.GetByID(ctx, panelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}

	comment := &models.PanelComment{
		PanelID: panelID,
		UserID:  caller.ID,
		Text:    text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.PanelCommentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}, nil
}
