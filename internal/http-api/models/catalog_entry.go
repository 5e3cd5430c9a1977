package models

import "time"

const (
	ReadingStatusToRead    = "to-read"
	ReadingStatusReading   = "reading"
	ReadingStatusCompleted = "completed"
)

// CatalogEntry links a user to a manga with personal reading-progress fields.
// One row per (user, manga) pair.
type CatalogEntry struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_catalog_user_manga" json:"user_id"`
	MangaID        int64     `gorm:"not null;uniqueIndex:idx_catalog_user_manga;index" json:"manga_id"`
	ReadingStatus  string    `gorm:"default:'to-read';not null" json:"reading_status"`
	CurrentChapter int       `gorm:"default:0" json:"current_chapter"`
	CurrentVolume  int       `gorm:"default:0" json:"current_volume"`
	CreatedBy      string    `gorm:"type:uuid" json:"created_by"` // who added the entry, for authorization
	AddedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	Manga *Manga `gorm:"foreignKey:MangaID" json:"manga,omitempty"`
}

func (CatalogEntry) TableName() string {
	return "catalog_entries"
}
