package domain

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/pkg/validator"
)

// PromotionKind identifies a pricing strategy
type PromotionKind string

const (
	PromotionPercentage       PromotionKind = "percentage"
	PromotionSecondHalfPrice  PromotionKind = "second_half_price"
	PromotionBuyTwoGetOneFree PromotionKind = "buy_two_get_one_free"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Promotion turns a unit price and a quantity into a discounted total.
// The set of implementations is closed: PercentageDiscount, SecondItemHalfPrice
// and BuyTwoGetOneFree. Promotions hold no state beyond their configuration and
// may be shared by several products.
type Promotion interface {
	Name() string
	Kind() PromotionKind
	Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error)

	sealed()
}

type promotionParams struct {
	Name    string  `validate:"required"`
	Percent float64 `validate:"gte=0,lte=100"`
}

type basePromotion struct {
	name string
}

func (b basePromotion) Name() string { return b.name }

func (basePromotion) sealed() {}

func newBasePromotion(name string, percent float64) (basePromotion, error) {
	params := promotionParams{Name: strings.TrimSpace(name), Percent: percent}
	if err := validator.Struct(params); err != nil {
		return basePromotion{}, errors.Errorf("promotion %q: %s: %w", name, err.Error(), ErrInvalidConstruction)
	}
	return basePromotion{name: params.Name}, nil
}

// PercentageDiscount takes a fixed percentage off the line total
type PercentageDiscount struct {
	basePromotion
	percent decimal.Decimal
}

// NewPercentageDiscount creates a percentage discount; percent must lie in [0, 100]
func NewPercentageDiscount(name string, percent float64) (*PercentageDiscount, error) {
	base, err := newBasePromotion(name, percent)
	if err != nil {
		return nil, err
	}
	return &PercentageDiscount{basePromotion: base, percent: decimal.NewFromFloat(percent)}, nil
}

// Kind returns PromotionPercentage
func (p *PercentageDiscount) Kind() PromotionKind { return PromotionPercentage }

// Percent returns the configured discount percentage
func (p *PercentageDiscount) Percent() decimal.Decimal { return p.percent }

// Apply returns unitPrice*quantity reduced by the configured percentage
func (p *PercentageDiscount) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return total.Mul(decimal.NewFromInt(1).Sub(p.percent.Div(hundred))), nil
}

// SecondItemHalfPrice sells every second unit at half price
type SecondItemHalfPrice struct {
	basePromotion
}

// NewSecondItemHalfPrice creates a pair discount
func NewSecondItemHalfPrice(name string) (*SecondItemHalfPrice, error) {
	base, err := newBasePromotion(name, 0)
	if err != nil {
		return nil, err
	}
	return &SecondItemHalfPrice{basePromotion: base}, nil
}

// Kind returns PromotionSecondHalfPrice
func (p *SecondItemHalfPrice) Kind() PromotionKind { return PromotionSecondHalfPrice }

// Apply charges ceil(q/2) units at full price and floor(q/2) units at half price
func (p *SecondItemHalfPrice) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	halfPriced := quantity / 2
	fullPriced := quantity - halfPriced

	full := unitPrice.Mul(decimal.NewFromInt(int64(fullPriced)))
	half := unitPrice.Div(two).Mul(decimal.NewFromInt(int64(halfPriced)))
	return full.Add(half), nil
}

// BuyTwoGetOneFree gives every third unit away
type BuyTwoGetOneFree struct {
	basePromotion
}

// NewBuyTwoGetOneFree creates a bundle discount
func NewBuyTwoGetOneFree(name string) (*BuyTwoGetOneFree, error) {
	base, err := newBasePromotion(name, 0)
	if err != nil {
		return nil, err
	}
	return &BuyTwoGetOneFree{basePromotion: base}, nil
}

// Kind returns PromotionBuyTwoGetOneFree
func (p *BuyTwoGetOneFree) Kind() PromotionKind { return PromotionBuyTwoGetOneFree }

// Apply charges for quantity - floor(quantity/3) units
func (p *BuyTwoGetOneFree) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	paid := quantity - quantity/3
	return unitPrice.Mul(decimal.NewFromInt(int64(paid))), nil
}

// NewPromotion builds a promotion of the given kind. percent is only read for
// PromotionPercentage.
func NewPromotion(kind PromotionKind, name string, percent float64) (Promotion, error) {
	var (
		promo Promotion
		err   error
	)
	switch kind {
	case PromotionPercentage:
		promo, err = NewPercentageDiscount(name, percent)
	case PromotionSecondHalfPrice:
		promo, err = NewSecondItemHalfPrice(name)
	case PromotionBuyTwoGetOneFree:
		promo, err = NewBuyTwoGetOneFree(name)
	default:
		return nil, errors.Wrap(ErrInvalidConstruction, fmt.Sprintf("unknown promotion kind %q", kind))
	}
	if err != nil {
		return nil, err
	}
	return promo, nil
}
