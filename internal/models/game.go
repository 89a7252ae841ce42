package models

import "gorm.io/gorm"

// Game represents one tracked entry in the catalog.
type Game struct {
	gorm.Model
	Title string `gorm:"size:255;not null"`

	// Platforms is stored as an ordered JSON array. Duplicates are kept
	// as entered; the client never deduplicates.
	Platforms   []string `gorm:"serializer:json"`
	HoursPlayed float64  `gorm:"not null;default:0"`
	Completed   bool     `gorm:"not null;default:false"`
	ImageURL    string   `gorm:"size:512"`

	Reviews []Review `gorm:"constraint:OnDelete:CASCADE"`
}
