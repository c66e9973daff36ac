package service

import (
	"context"
	"errors"
	"fmt"
	"treadmill-storefront/internal/cart"
	"treadmill-storefront/internal/dto"
	"treadmill-storefront/internal/model"
	"treadmill-storefront/internal/repository"
	"treadmill-storefront/internal/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StorefrontService backs the catalog and cart pages. Cart operations act on
// the store of the caller's session.
type StorefrontService interface {
	ListProducts(ctx context.Context) ([]*dto.Product, error)
	GetProduct(ctx context.Context, productID string) (*dto.Product, error)
	ListSlides(ctx context.Context) ([]*dto.Slide, error)

	Cart(store *cart.Store) *dto.CartResponse
	AddToCart(ctx context.Context, store *cart.Store, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, store *cart.Store, productID string, quantity int) error
	RemoveItem(ctx context.Context, store *cart.Store, productID string)
	ClearCart(ctx context.Context, store *cart.Store)
	UpdatePayer(store *cart.Store, req dto.PayerRequest) error
	UpdateRecipient(store *cart.Store, req dto.RecipientRequest) error
	Checkout(ctx context.Context, store *cart.Store) *dto.OrderResponse
	LastOrder(store *cart.Store) (*dto.OrderResponse, error)
}

type storefrontServiceImpl struct {
	productRepo repository.ProductRepository
	currency    string
	logger      *zap.Logger
}

func NewStorefrontService(
	productRepo repository.ProductRepository,
	currency string,
	logger *zap.Logger,
) StorefrontService {
	return &storefrontServiceImpl{
		productRepo: productRepo,
		currency:    currency,
		logger:      logger,
	}
}

func (s *storefrontServiceImpl) ListProducts(ctx context.Context) ([]*dto.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*dto.Product, len(products))
	for i, p := range products {
		out[i] = toProductDTO(p)
	}
	return out, nil
}

func (s *storefrontServiceImpl) GetProduct(ctx context.Context, productID string) (*dto.Product, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

func (s *storefrontServiceImpl) ListSlides(ctx context.Context) ([]*dto.Slide, error) {
	slides, err := s.productRepo.ListSlides(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}

	out := make([]*dto.Slide, len(slides))
	for i, sl := range slides {
		out[i] = &dto.Slide{ID: sl.ID, Image: sl.Image, Alt: sl.Alt}
	}
	return out, nil
}

func (s *storefrontServiceImpl) Cart(store *cart.Store) *dto.CartResponse {
	state := store.State()

	return &dto.CartResponse{
		Items:     toLineDTOs(state.Items),
		Payer:     toPayerDTO(state.Payer),
		Recipient: toRecipientDTO(state.Recipient.Resolve(state.Payer)),
		Total:     state.Total(),
		ItemCount: state.ItemCount(),
		IsEmpty:   state.IsEmpty(),
		Currency:  s.currency,
	}
}

// AddToCart looks the product up in the catalog so the price always comes
// from the catalog, never from the caller.
func (s *storefrontServiceImpl) AddToCart(ctx context.Context, store *cart.Store, productID string, quantity int) error {
	if productID == "" {
		return cart.NewInvalidInput(cart.ErrMsgProductIDRequired)
	}
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}

	err = store.AddItem(cart.Product{
		ID:          product.ID,
		Name:        product.Name,
		Images:      product.Images,
		Description: product.Description,
		Price:       product.Price,
	}, quantity)
	if err != nil {
		return err
	}

	s.log(ctx).Info("item added to cart",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("item_count", store.ItemCount()))
	return nil
}

func (s *storefrontServiceImpl) UpdateQuantity(ctx context.Context, store *cart.Store, productID string, quantity int) error {
	if err := store.UpdateQuantity(productID, quantity); err != nil {
		return err
	}
	s.log(ctx).Info("cart quantity updated",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

func (s *storefrontServiceImpl) RemoveItem(ctx context.Context, store *cart.Store, productID string) {
	store.RemoveItem(productID)
	s.log(ctx).Info("item removed from cart", zap.String("product_id", productID))
}

func (s *storefrontServiceImpl) ClearCart(ctx context.Context, store *cart.Store) {
	store.ClearCart()
	s.log(ctx).Info("cart cleared")
}

func (s *storefrontServiceImpl) UpdatePayer(store *cart.Store, req dto.PayerRequest) error {
	return store.SetPayer(cart.PayerInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
}

func (s *storefrontServiceImpl) UpdateRecipient(store *cart.Store, req dto.RecipientRequest) error {
	return store.SetRecipient(cart.RecipientInfo{
		SameAsPayer: req.SameAsPayer,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		GUINumber:   req.GUINumber,
	})
}

func (s *storefrontServiceImpl) Checkout(ctx context.Context, store *cart.Store) *dto.OrderResponse {
	order := store.SaveOrder()

	s.log(ctx).Info("order saved",
		zap.String("order_id", order.ID),
		zap.Int("item_count", order.ItemCount),
		zap.String("total", order.Total.String()),
		zap.String("currency", s.currency))

	return s.toOrderDTO(&order)
}

func (s *storefrontServiceImpl) LastOrder(store *cart.Store) (*dto.OrderResponse, error) {
	order := store.LastOrder()
	if order == nil {
		return nil, cart.NewNotFoundf("no completed order in this session")
	}
	return s.toOrderDTO(order), nil
}

// log tags entries with the session the request belongs to.
func (s *storefrontServiceImpl) log(ctx context.Context) *zap.Logger {
	if id := session.IDFromContext(ctx); id != "" {
		return s.logger.With(zap.String("session_id", id))
	}
	return s.logger
}

func (s *storefrontServiceImpl) findProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.NewNotFoundf("%s: %s", cart.ErrMsgProductNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", productID, err)
	}
	return product, nil
}

func (s *storefrontServiceImpl) toOrderDTO(order *cart.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		OrderID:     order.ID,
		Items:       toLineDTOs(order.Items),
		Payer:       toPayerDTO(order.Payer),
		Recipient:   toRecipientDTO(order.Recipient.Resolve(order.Payer)),
		Total:       order.Total,
		ItemCount:   order.ItemCount,
		Currency:    s.currency,
		CompletedAt: order.CompletedAt,
	}
}

func toProductDTO(p *model.Product) *dto.Product {
	return &dto.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
		Price:       p.Price,
		Currency:    p.Currency,
	}
}

func toLineDTOs(lines []cart.Line) []dto.CartLine {
	out := make([]dto.CartLine, len(lines))
	for i, l := range lines {
		var image string
		if len(l.Product.Images) > 0 {
			image = l.Product.Images[0]
		}
		out[i] = dto.CartLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Image:     image,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		}
	}
	return out
}

func toPayerDTO(p cart.PayerInfo) dto.Payer {
	return dto.Payer{Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func toRecipientDTO(r cart.RecipientInfo) dto.Recipient {
	return dto.Recipient{
		SameAsPayer: r.SameAsPayer,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		GUINumber:   r.GUINumber,
	}
}
