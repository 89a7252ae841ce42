package models

import "gorm.io/gorm"

// Review is a single rated, commented opinion attached to exactly one game.
// The game reference is set at creation and never changes.
type Review struct {
	gorm.Model
	GameID  uint   `gorm:"not null;index"`
	Rating  int    `gorm:"not null"`
	Comment string `gorm:"not null"`
}
