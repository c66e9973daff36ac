package repository

import (
	"context"
	"treadmill-storefront/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const imageRoot = "/AEON-跑步機/"

type ProductRepository interface {
	Seed(ctx context.Context, currency string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
	ListSlides(ctx context.Context) ([]*model.Slide, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func images(series string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = imageRoot + series + "/" + f
	}
	return out
}

func (r *productRepoImpl) Seed(ctx context.Context, currency string) error {
	products := []model.Product{
		{ID: "a", Name: "AZ40", Description: "高效馬達，穩定訓練體驗。", Price: decimal.NewFromInt(39900),
			Images: images("AZ40", "AZ40-01.png", "AZ40-02.png", "AZ40-03.png", "AZ40-04.png")},
		{ID: "b", Name: "AZ50", Description: "多段阻力調整，專業健身房首選。", Price: decimal.NewFromInt(49900),
			Images: images("AZ50", "AZ50-01.png", "AZ50-02.png", "AZ50-03.png", "AZ50-04.png")},
		{ID: "c", Name: "AZ60", Description: "現代設計，適合企業健身空間。", Price: decimal.NewFromInt(59900),
			Images: images("AZ60", "AZ60-01.png", "AZ60-02.png", "AZ60-03.png", "AZ60-04.png")},
		{ID: "d", Name: "GT500", Description: "現代設計，適合企業健身空間。", Price: decimal.NewFromInt(29900),
			Images: images("GT500", "GT500-01.jpg")},
		{ID: "e", Name: "GT820", Description: "現代設計，適合企業健身空間。", Price: decimal.NewFromInt(45900),
			Images: images("GT820", "GT820-01.png", "GT820-02.png")},
		{ID: "f", Name: "GT900", Description: "現代設計，適合企業健身空間。", Price: decimal.NewFromInt(52900),
			Images: images("GT900", "GT900-01.png", "GT900-02.png", "GT900-03.png")},
	}
	slides := make([]model.Slide, len(products))
	for i := range products {
		products[i].Currency = currency
		products[i].Position = i
		slides[i] = model.Slide{
			ID:       uint(i + 1),
			Image:    products[i].Images[0],
			Alt:      products[i].Name,
			Position: i,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&slides).Error
	})
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListSlides(ctx context.Context) ([]*model.Slide, error) {
	var slides []*model.Slide
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&slides).
		Error

	if err != nil {
		return nil, err
	}

	return slides, nil
}
