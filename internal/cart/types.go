package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry a cart line refers to. The cart treats it as
// read-only input.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Images      []string        `json:"images"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func (p Product) clone() Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type PayerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type RecipientInfo struct {
	SameAsPayer bool   `json:"same_as_payer"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	GUINumber   string `json:"gui_number"`
}

// Resolve returns the recipient as it should be displayed. When SameAsPayer
// is set the contact fields come from payer; address and GUI number always
// belong to the recipient.
func (r RecipientInfo) Resolve(payer PayerInfo) RecipientInfo {
	if !r.SameAsPayer {
		return r
	}
	r.Name = payer.Name
	r.Email = payer.Email
	r.Phone = payer.Phone
	return r
}

// Order is a snapshot of a checked-out cart. Nothing in it is shared with
// the live cart.
type Order struct {
	ID          string          `json:"id"`
	Items       []Line          `json:"items"`
	Payer       PayerInfo       `json:"payer"`
	Recipient   RecipientInfo   `json:"recipient"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	CompletedAt time.Time       `json:"completed_at"`
}

func (o *Order) clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = cloneLines(o.Items)
	return &c
}

// State is a point-in-time copy of a session's cart.
type State struct {
	Items     []Line        `json:"items"`
	Payer     PayerInfo     `json:"payer"`
	Recipient RecipientInfo `json:"recipient"`
	LastOrder *Order        `json:"last_order,omitempty"`
}

func (s State) Total() decimal.Decimal { return total(s.Items) }

func (s State) ItemCount() int { return itemCount(s.Items) }

func (s State) IsEmpty() bool { return len(s.Items) == 0 }

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Product: l.Product.clone(), Quantity: l.Quantity}
	}
	return out
}

func total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func itemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
