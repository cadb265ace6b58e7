package models

import "time"

// MenuItem belongs to a Category through CategoryID. Category is only filled
// when the query preloads it.
type MenuItem struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:150;not null"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"not null"`
	Image       string  `gorm:"size:255"`

	CategoryID uint      `gorm:"not null;index"`
	Category   *Category `gorm:"constraint:OnDelete:RESTRICT"`

	// no gorm default here: a default tag would turn an explicit false into true on insert
	Active       bool `gorm:"not null"`
	Featured     bool `gorm:"not null"`
	Seasonal     bool `gorm:"not null"`
	SpecialOffer bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
