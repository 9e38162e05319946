package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/pkg/validator"
	"github.com/Pesokrava/storefront/internal/usecase/store"
)

// ProductSpec describes one catalog product
type ProductSpec struct {
	Name     string             `mapstructure:"name" json:"name" validate:"required"`
	Price    decimal.Decimal    `mapstructure:"price" json:"price" validate:"gte=0"`
	Quantity int                `mapstructure:"quantity" json:"quantity" validate:"gte=0"`
	Kind     domain.ProductKind `mapstructure:"kind" json:"kind,omitempty" validate:"omitempty,oneof=stocked unlimited limited"`
	Maximum  int                `mapstructure:"maximum" json:"maximum,omitempty" validate:"gte=0"`
}

// PromotionSpec describes one promotion; Percent is only read for percentage promotions
type PromotionSpec struct {
	Name    string               `mapstructure:"name" json:"name" validate:"required"`
	Kind    domain.PromotionKind `mapstructure:"kind" json:"kind" validate:"required,oneof=percentage second_half_price buy_two_get_one_free"`
	Percent float64              `mapstructure:"percent" json:"percent,omitempty" validate:"gte=0,lte=100"`
}

// Attachment assigns a promotion to a product, both by name
type Attachment struct {
	Product   string `mapstructure:"product" json:"product" validate:"required"`
	Promotion string `mapstructure:"promotion" json:"promotion" validate:"required"`
}

// Seed is everything needed to build a store
type Seed struct {
	Products    []ProductSpec   `mapstructure:"products" json:"products" validate:"dive"`
	Promotions  []PromotionSpec `mapstructure:"promotions" json:"promotions" validate:"dive"`
	Attachments []Attachment    `mapstructure:"attachments" json:"attachments" validate:"dive"`
}

// Validate checks the structure of the seed without building anything
func (s *Seed) Validate() error {
	if err := validator.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidConstruction)
	}
	return nil
}

// NewProduct builds the product variant described by spec
func NewProduct(spec ProductSpec) (*domain.Product, error) {
	kind, err := domain.ParseProductKind(string(spec.Kind))
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindUnlimited:
		return domain.NewUnlimitedProduct(spec.Name, spec.Price)
	case domain.KindLimited:
		return domain.NewLimitedProduct(spec.Name, spec.Price, spec.Quantity, spec.Maximum)
	default:
		return domain.NewProduct(spec.Name, spec.Price, spec.Quantity)
	}
}

// Build constructs a store from seed: promotions first, then products in order,
// then attachments. Any failure aborts the whole build.
func Build(seed *Seed, log *logger.Logger) (*store.Store, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}

	promotions := make(map[string]domain.Promotion, len(seed.Promotions))
	for _, spec := range seed.Promotions {
		if _, ok := promotions[spec.Name]; ok {
			return nil, fmt.Errorf("duplicate promotion %q: %w", spec.Name, domain.ErrInvalidConstruction)
		}
		promo, err := domain.NewPromotion(spec.Kind, spec.Name, spec.Percent)
		if err != nil {
			return nil, err
		}
		promotions[spec.Name] = promo
	}

	products := make([]*domain.Product, 0, len(seed.Products))
	byName := make(map[string]*domain.Product, len(seed.Products))
	for _, spec := range seed.Products {
		product, err := NewProduct(spec)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
		byName[product.Name()] = product
	}

	for _, a := range seed.Attachments {
		product, ok := byName[a.Product]
		if !ok {
			return nil, fmt.Errorf("attachment for unknown product %q: %w", a.Product, domain.ErrNotFound)
		}
		promo, ok := promotions[a.Promotion]
		if !ok {
			return nil, fmt.Errorf("attachment of unknown promotion %q: %w", a.Promotion, domain.ErrInvalidConstruction)
		}
		product.SetPromotion(promo)
	}

	s, err := store.New(products, log)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"products":   len(products),
		"promotions": len(promotions),
	}).Info("Catalog built")

	return s, nil
}

// DefaultSeed returns the catalog the store opens with when no other source is configured
func DefaultSeed() *Seed {
	return &Seed{
		Products: []ProductSpec{
			{Name: "MacBook Air M2", Price: decimal.NewFromInt(1450), Quantity: 100, Kind: domain.KindStocked},
			{Name: "Bose QuietComfort Earbuds", Price: decimal.NewFromInt(250), Quantity: 500, Kind: domain.KindStocked},
			{Name: "Google Pixel 7", Price: decimal.NewFromInt(500), Quantity: 250, Kind: domain.KindStocked},
			{Name: "Windows License", Price: decimal.NewFromInt(125), Kind: domain.KindUnlimited},
			{Name: "Shipping", Price: decimal.NewFromInt(10), Quantity: 250, Kind: domain.KindLimited, Maximum: 1},
		},
		Promotions: []PromotionSpec{
			{Name: "Second item at half price", Kind: domain.PromotionSecondHalfPrice},
			{Name: "Buy 2, get 1 free", Kind: domain.PromotionBuyTwoGetOneFree},
			{Name: "30% off", Kind: domain.PromotionPercentage, Percent: 30},
		},
		Attachments: []Attachment{
			{Product: "MacBook Air M2", Promotion: "Second item at half price"},
			{Product: "Bose QuietComfort Earbuds", Promotion: "Buy 2, get 1 free"},
			{Product: "Windows License", Promotion: "30% off"},
		},
	}
}
