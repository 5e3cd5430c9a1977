package models

import "time"

const (
	MangaStatusOngoing   = "ongoing"
	MangaStatusCompleted = "completed"
)

type Manga struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Author      string    `json:"author" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status" gorm:"default:'ongoing'"`
	Volumes     *int      `json:"volumes,omitempty"`
	Chapters    *int      `json:"chapters,omitempty"`
	Genres      []string  `json:"genres,omitempty" gorm:"type:jsonb;serializer:json"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	IsDefault   bool      `json:"is_default" gorm:"default:false;index"`
	CreatedBy   *string   `json:"created_by,omitempty" gorm:"type:uuid;index"` // owning user for personal manga, nil for defaults
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// association
	Characters []Character `json:"characters,omitempty" gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE;"`
}

func (Manga) TableName() string {
	return "manga"
}

type Character struct {
	ID      int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	MangaID int64   `json:"manga_id" gorm:"not null;index"`
	Name    string  `json:"name" gorm:"not null"`
	Image   *string `json:"image,omitempty"`
}

func (Character) TableName() string {
	return "manga_characters"
}
