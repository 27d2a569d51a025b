package model

import "time"

// SitemapEntry is the minimal projection used to build sitemaps
type SitemapEntry struct {
	ID        string    `gorm:"column:id" json:"id"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}
