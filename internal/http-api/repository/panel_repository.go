package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mangaist/internal/http-api/models"
)

type PanelRepository interface {
	Create(ctx context.Context, panel *models.FavoritePanel) error
	GetByID(ctx context.Context, id int64) (*models.FavoritePanel, error)
	ListByUser(ctx context.Context, userID string) ([]models.FavoritePanel, error)
	Update(ctx context.Context, panel *models.FavoritePanel) error
	Delete(ctx context.Context, id int64) error
	HasLike(ctx context.Context, panelID int64, userID string) (bool, error)
	AddLike(ctx context.Context, panelID int64, userID string) error
	RemoveLike(ctx context.Context, panelID int64, userID string) error
	CountLikes(ctx context.Context, panelID int64) (int64, error)
	AddComment(ctx context.Context, comment *models.PanelComment) error
}

type panelRepository struct {
	db *gorm.DB
}

func NewPanelRepository(db *gorm.DB) PanelRepository {
	return &panelRepository{db: db}
}

func (r *panelRepository) Create(ctx context.Context, panel *models.FavoritePanel) error {
	if err := r.db.WithContext(ctx).Create(panel).Error; err != nil {
		return fmt.Errorf("create panel: %w", err)
	}
	return nil
}

func (r *panelRepository) GetByID(ctx context.Context, id int64) (*models.FavoritePanel, error) {
	var panel models.FavoritePanel
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("panel_comments.created_at asc")
		}).
		Preload("Likes").
		First(&panel, id).Error; err != nil {
		return nil, err
	}
	return &panel, nil
}

func (r *panelRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoritePanel, error) {
	var panels []models.FavoritePanel
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("panel_comments.created_at asc")
		}).
		Preload("Likes").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&panels).Error; err != nil {
		return nil, fmt.Errorf("list panels: %w", err)
	}
	return panels, nil
}

func (r *panelRepository) Update(ctx context.Context, panel *models.FavoritePanel) error {
	if err := r.db.WithContext(ctx).Save(panel).Error; err != nil {
		return fmt.Errorf("update panel: %w", err)
	}
	return nil
}

func (r *panelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("panel_id = ?", id).Delete(&models.PanelLike{}).Error; err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := tx.Where("panel_id = ?", id).Delete(&models.PanelComment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		result := tx.Delete(&models.FavoritePanel{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete panel: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *panelRepository) HasLike(ctx context.Context, panelID int64, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PanelLike{}).
		Where("panel_id = ? AND user_id = ?", panelID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *panelRepository) AddLike(ctx context.Context, panelID int64, userID string) error {
	like := &models.PanelLike{PanelID: panelID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (r *panelRepository) RemoveLike(ctx context.Context, panelID int64, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("panel_id = ? AND user_id = ?", panelID, userID).
		Delete(&models.PanelLike{}).Error; err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	return nil
}

func (r *panelRepository) CountLikes(ctx context.Context, panelID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PanelLike{}).
		Where("panel_id = ?", panelID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *panelRepository) AddComment(ctx context.Context, comment *models.PanelComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}
