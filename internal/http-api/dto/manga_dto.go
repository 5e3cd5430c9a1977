package dto

import (
	"time"

	"mangaist/internal/http-api/models"
)

// CreateMangaDTO used for POST /api/manga and for catalog adds that carry a
// full manga payload.
type CreateMangaDTO struct {
	Title       string   `json:"title" form:"title" binding:"required"`
	Author      string   `json:"author" form:"author" binding:"required"`
	Description *string  `json:"description,omitempty" form:"description"`
	Status      *string  `json:"status,omitempty" form:"status" binding:"omitempty,oneof=ongoing completed"`
	Volumes     *int     `json:"volumes,omitempty" form:"volumes" binding:"omitempty,gte=0"`
	Chapters    *int     `json:"chapters,omitempty" form:"chapters" binding:"omitempty,gte=0"`
	Genres      []string `json:"genres,omitempty" form:"genres"`
	CoverImage  *string  `json:"cover_image,omitempty"`
	IsDefault   *bool    `json:"is_default,omitempty"`
}

// UpdateMangaDTO used for PATCH /api/manga/:id. Only the listed fields can
// ever be patched; unknown request keys are simply ignored by the binder.
type UpdateMangaDTO struct {
	Title       *string  `json:"title,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty" binding:"omitempty,oneof=ongoing completed"`
	Volumes     *int     `json:"volumes,omitempty" binding:"omitempty,gte=0"`
	Chapters    *int     `json:"chapters,omitempty" binding:"omitempty,gte=0"`
	Genres      []string `json:"genres,omitempty"`
}

type CharacterDTO struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type UpdateCharacterDTO struct {
	Name *string `json:"name,omitempty" form:"name"`
}

type CharacterResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// MangaResponse DTO for responses
type MangaResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Author      string              `json:"author"`
	Description *string             `json:"description,omitempty"`
	Status      string              `json:"status"`
	Volumes     *int                `json:"volumes,omitempty"`
	Chapters    *int                `json:"chapters,omitempty"`
	Genres      []string            `json:"genres,omitempty"`
	CoverImage  *string             `json:"cover_image,omitempty"`
	IsDefault   bool                `json:"is_default"`
	CreatedBy   *string             `json:"created_by,omitempty"`
	Characters  []CharacterResponse `json:"characters,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type PaginatedMangaResponse struct {
	Items    []MangaResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Converters
func (d CreateMangaDTO) ToModel() models.Manga {
	m := models.Manga{
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Status:      models.MangaStatusOngoing,
		Volumes:     d.Volumes,
		Chapters:    d.Chapters,
		Genres:      d.Genres,
		CoverImage:  d.CoverImage,
	}
	if d.Status != nil {
		m.Status = *d.Status
	}
	return m
}

func (d UpdateMangaDTO) ApplyTo(m *models.Manga) {
	if d.Title != nil {
		m.Title = *d.Title
	}
	if d.Author != nil {
		m.Author = *d.Author
	}
	if d.Description != nil {
		m.Description = d.Description
	}
	if d.Status != nil {
		m.Status = *d.Status
	}
	if d.Volumes != nil {
		m.Volumes = d.Volumes
	}
	if d.Chapters != nil {
		m.Chapters = d.Chapters
	}
	if d.Genres != nil {
		m.Genres = d.Genres
	}
}

func FromModelToMangaResponse(m models.Manga) MangaResponse {
	characters := make([]CharacterResponse, 0, len(m.Characters))
	for _, ch := range m.Characters {
		characters = append(characters, CharacterResponse{
			ID:    ch.ID,
			Name:  ch.Name,
			Image: ch.Image,
		})
	}
	return MangaResponse{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		Status:      m.Status,
		Volumes:     m.Volumes,
		Chapters:    m.Chapters,
		Genres:      m.Genres,
		CoverImage:  m.CoverImage,
		IsDefault:   m.IsDefault,
		CreatedBy:   m.CreatedBy,
		Characters:  characters,
		CreatedAt:   m.CreatedAt,
	}
}
