package cart

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps the quantity of a single cart line.
const MaxQuantity = 999

var validate = validator.New()

// Store holds the cart of one shopper session. All methods are safe for
// concurrent use; each one runs under a single lock so readers never see a
// half-applied mutation.
type Store struct {
	mu        sync.Mutex
	items     []Line
	payer     PayerInfo
	recipient RecipientInfo
	lastOrder *Order

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used to stamp completed orders.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how order ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) AddItem(product Product, quantity int) error {
	if product.ID == "" {
		return NewInvalidInput(ErrMsgProductIDRequired)
	}
	if product.Price.IsNegative() {
		return NewInvalidInput(ErrMsgPriceNegative)
	}
	if quantity <= 0 {
		return NewInvalidQuantity(ErrMsgQuantityPositive)
	}
	if quantity > MaxQuantity {
		return NewInvalidQuantity(ErrMsgQuantityTooLarge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		if s.items[i].Quantity > MaxQuantity-quantity {
			return NewInvalidQuantityf("%s: %d already in cart", ErrMsgQuantityTooLarge, s.items[i].Quantity)
		}
		s.items[i].Quantity += quantity
		return nil
	}
	s.items = append(s.items, Line{Product: product.clone(), Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. Negative values are
// floored at zero and a zero quantity removes the line. A product that is not
// in the cart is left alone. Quantities above MaxQuantity are rejected.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	if productID == "" {
		return NewInvalidInput(ErrMsgProductIDRequired)
	}
	if quantity < 0 {
		quantity = 0
	}
	if quantity > MaxQuantity {
		return NewInvalidQuantity(ErrMsgQuantityTooLarge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	if quantity == 0 {
		s.removeAt(i)
		return nil
	}
	s.items[i].Quantity = quantity
	return nil
}

func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.removeAt(i)
	}
}

// ClearCart drops every line and blanks the payer and recipient forms. The
// last order is kept so the confirmation page can still render it.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Store) SetPayer(info PayerInfo) error {
	if err := validate.Struct(info); err != nil {
		return NewInvalidInputf("payer %s: %v", ErrMsgInvalidEmail, info.Email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payer = info
	return nil
}

func (s *Store) SetRecipient(info RecipientInfo) error {
	if err := validate.Struct(info); err != nil {
		return NewInvalidInputf("recipient %s: %v", ErrMsgInvalidEmail, info.Email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipient = info
	return nil
}

// SaveOrder snapshots the cart into a new last order and clears the cart in
// the same critical section. An empty cart yields an order with no lines and
// a zero total.
func (s *Store) SaveOrder() Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := &Order{
		ID:          s.newID(),
		Items:       cloneLines(s.items),
		Payer:       s.payer,
		Recipient:   s.recipient,
		Total:       total(s.items),
		ItemCount:   itemCount(s.items),
		CompletedAt: s.now(),
	}
	s.lastOrder = order
	s.clear()

	return *order.clone()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.items)
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.items)
}

func (s *Store) Payer() PayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payer
}

func (s *Store) Recipient() RecipientInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipient
}

// LastOrder returns a copy of the most recent order, or nil if none was saved.
func (s *Store) LastOrder() *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOrder.clone()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Items:     cloneLines(s.items),
		Payer:     s.payer,
		Recipient: s.recipient,
		LastOrder: s.lastOrder.clone(),
	}
}

func (s *Store) indexOf(productID string) int {
	for i, l := range s.items {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i:i], s.items[i+1:]...)
}

func (s *Store) clear() {
	s.items = nil
	s.payer = PayerInfo{}
	s.recipient = RecipientInfo{}
}
