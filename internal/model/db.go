package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null"` // catalog id used in /product/:id
	Name        string          `gorm:"size:128;not null"`
	Description string          `gorm:"size:512"`
	Images      []string        `gorm:"serializer:json;not null"` // first image is the cover
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency    string          `gorm:"size:8;not null"`
	Position    int             `gorm:"index;not null"` // display order on the product list
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slide is one image in the home page carousel.
type Slide struct {
	ID       uint   `gorm:"primaryKey"`
	Image    string `gorm:"size:256;not null"`
	Alt      string `gorm:"size:64"`
	Position int    `gorm:"index;not null"`
}
