package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mangaist/internal/http-api/models"
)

type MangaRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Manga, error)
	Create(ctx context.Context, m *models.Manga) error
	Update(ctx context.Context, m *models.Manga) error
	// DeleteCascade removes the manga together with every catalog entry that
	// references it, in one transaction. Returns the number of users whose
	// catalogs were touched.
	DeleteCascade(ctx context.Context, id int64) (int64, error)
	AddCharacter(ctx context.Context, ch *models.Character) error
	GetCharacter(ctx context.Context, mangaID, characterID int64) (*models.Character, error)
	UpdateCharacter(ctx context.Context, ch *models.Character) error
}

type mangaRepository struct {
	db *gorm.DB
}

func NewMangaRepository(db *gorm.DB) MangaRepository {
	return &mangaRepository{db: db}
}

func (r *mangaRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Manga, int64, error) {
	var list []models.Manga
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Manga{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Characters").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *mangaRepository) GetByID(ctx context.Context, id int64) (*models.Manga, error) {
	var m models.Manga
	if err := r.db.WithContext(ctx).Preload("Characters").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mangaRepository) Create(ctx context.Context, m *models.Manga) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create manga: %w", err)
	}
	return nil
}

func (r *mangaRepository) Update(ctx context.Context, m *models.Manga) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update manga: %w", err)
	}
	return nil
}

func (r *mangaRepository) DeleteCascade(ctx context.Context, id int64) (int64, error) {
	var usersAffected int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CatalogEntry{}).
			Where("manga_id = ?", id).
			Distinct("user_id").
			Count(&usersAffected).Error; err != nil {
			return fmt.Errorf("count referencing users: %w", err)
		}
		if err := tx.Where("manga_id = ?", id).Delete(&models.CatalogEntry{}).Error; err != nil {
			return fmt.Errorf("delete catalog entries: %w", err)
		}
		if err := tx.Where("manga_id = ?", id).Delete(&models.Character{}).Error; err != nil {
			return fmt.Errorf("delete characters: %w", err)
		}
		result := tx.Delete(&models.Manga{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete manga: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return usersAffected, nil
}

func (r *mangaRepository) AddCharacter(ctx context.Context, ch *models.Character) error {
	if err := r.db.WithContext(ctx).Create(ch).Error; err != nil {
		return fmt.Errorf("add character: %w", err)
	}
	return nil
}

func (r *mangaRepository) GetCharacter(ctx context.Context, mangaID, characterID int64) (*models.Character, error) {
	var ch models.Character
	if err := r.db.WithContext(ctx).
		Where("manga_id = ?", mangaID).
		First(&ch, characterID).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *mangaRepository) UpdateCharacter(ctx context.Context, ch *models.Character) error {
	if err := r.db.WithContext(ctx).Save(ch).Error; err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	return nil
}
