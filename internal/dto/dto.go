package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=999"` // defaults to 1
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}

type PayerRequest struct {
	Name  string `json:"name" validate:"max=128"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=32"`
}

type RecipientRequest struct {
	SameAsPayer bool   `json:"same_as_payer"`
	Name        string `json:"name" validate:"max=128"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=32"`
	Address     string `json:"address" validate:"max=256"`
	GUINumber   string `json:"gui_number" validate:"omitempty,numeric,len=8"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

type Slide struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Recipient struct {
	SameAsPayer bool   `json:"same_as_payer"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	GUINumber   string `json:"gui_number"`
}

type CartResponse struct {
	Items     []CartLine      `json:"items"`
	Payer     Payer           `json:"payer"`
	Recipient Recipient       `json:"recipient"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	IsEmpty   bool            `json:"is_empty"`
	Currency  string          `json:"currency"`
}

type OrderResponse struct {
	OrderID     string          `json:"order_id"`
	Items       []CartLine      `json:"items"`
	Payer       Payer           `json:"payer"`
	Recipient   Recipient       `json:"recipient"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	Currency    string          `json:"currency"`
	CompletedAt time.Time       `json:"completed_at"`
}
