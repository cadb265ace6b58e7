package models

import "time"

type OfferType string

const (
	OfferTypePromotion OfferType = "promotion"
	OfferTypeEvent     OfferType = "event"
)

func (t OfferType) Valid() bool {
	return t == OfferTypePromotion || t == OfferTypeEvent
}

type SpecialOffer struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:150;not null"`
	Description string    `gorm:"type:text;not null"`
	Image       string    `gorm:"size:255;not null"`
	ValidUntil  time.Time `gorm:"not null"`
	Type        OfferType `gorm:"size:20;not null"`
	Active      bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
