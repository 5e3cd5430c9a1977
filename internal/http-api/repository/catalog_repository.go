package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mangaist/internal/http-api/models"
)

type CatalogRepository interface {
	Add(ctx context.Context, entry *models.CatalogEntry) error
	// AddWithManga creates a personal manga and its catalog entry in one
	// transaction, so a failure can never leave an orphaned manga behind.
	AddWithManga(ctx context.Context, manga *models.Manga, entry *models.CatalogEntry) error
	Get(ctx context.Context, userID string, mangaID int64) (*models.CatalogEntry, error)
	Exists(ctx context.Context, userID string, mangaID int64) (bool, error)
	List(ctx context.Context, userID string) ([]models.CatalogEntry, error)
	UpdateProgress(ctx context.Context, entry *models.CatalogEntry) error
	Remove(ctx context.Context, userID string, mangaID int64) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Add(ctx context.Context, entry *models.CatalogEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("add to catalog: %w", err)
	}
	return nil
}

func (r *catalogRepository) AddWithManga(ctx context.Context, manga *models.Manga, entry *models.CatalogEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(manga).Error; err != nil {
			return fmt.Errorf("create manga: %w", err)
		}
		entry.MangaID = manga.ID
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("add to catalog: %w", err)
		}
		return nil
	})
}

func (r *catalogRepository) Get(ctx context.Context, userID string, mangaID int64) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := r.db.WithContext(ctx).
		Preload("Manga").
		Preload("Manga.Characters").
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) Exists(ctx context.Context, userID string, mangaID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *catalogRepository) List(ctx context.Context, userID string) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	if err := r.db.WithContext(ctx).
		Preload("Manga").
		Preload("Manga.Characters").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return entries, nil
}

func (r *catalogRepository) UpdateProgress(ctx context.Context, entry *models.CatalogEntry) error {
	result := r.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Where("user_id = ? AND manga_id = ?", entry.UserID, entry.MangaID).
		Updates(map[string]interface{}{
			"current_chapter": entry.CurrentChapter,
			"current_volume":  entry.CurrentVolume,
			"reading_status":  entry.ReadingStatus,
		})
	if result.Error != nil {
		return fmt.Errorf("update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) Remove(ctx context.Context, userID string, mangaID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		Delete(&models.CatalogEntry{})
	if result.Error != nil {
		return fmt.Errorf("remove from catalog: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
