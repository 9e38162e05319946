package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/pkg/validator"
)

// ProductKind selects the purchase rule of a product
type ProductKind string

const (
	// KindStocked tracks a finite stock with no per-order cap
	KindStocked ProductKind = "stocked"

	// KindUnlimited never runs out and is never deactivated by a purchase
	KindUnlimited ProductKind = "unlimited"

	// KindLimited tracks stock and caps the units sold per purchase
	KindLimited ProductKind = "limited"
)

// ParseProductKind maps a textual kind to a ProductKind; an empty string means KindStocked
func ParseProductKind(s string) (ProductKind, error) {
	switch ProductKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindStocked:
		return KindStocked, nil
	case KindUnlimited:
		return KindUnlimited, nil
	case KindLimited:
		return KindLimited, nil
	default:
		return "", errors.Wrap(ErrInvalidConstruction, fmt.Sprintf("unknown product kind %q", s))
	}
}

// Stock is a unit count, or unlimited for products that are not stock-tracked
type Stock struct {
	Units     int  `json:"units"`
	Unlimited bool `json:"unlimited"`
}

func (s Stock) String() string {
	if s.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(s.Units)
}

// Product is a catalog entry. Fields are only changed through its methods so that
// a stock-tracked product is active exactly when it has units left.
type Product struct {
	id        uuid.UUID
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	kind      ProductKind
	maximum   int
	promotion Promotion
}

type productParams struct {
	Name     string          `validate:"required"`
	Price    decimal.Decimal `validate:"gte=0"`
	Quantity int             `validate:"gte=0"`
}

type limitParams struct {
	Maximum int `validate:"gt=0"`
}

func newProduct(kind ProductKind, name string, price decimal.Decimal, quantity int, maximum *int) (*Product, error) {
	params := productParams{
		Name:     strings.TrimSpace(name),
		Price:    price,
		Quantity: quantity,
	}
	if err := validator.Struct(params); err != nil {
		return nil, errors.Errorf("product %q: %s: %w", name, err.Error(), ErrInvalidConstruction)
	}
	if maximum != nil {
		if err := validator.Struct(limitParams{Maximum: *maximum}); err != nil {
			return nil, errors.Errorf("product %q: %s: %w", name, err.Error(), ErrInvalidConstruction)
		}
	}

	p := &Product{
		id:       uuid.New(),
		name:     params.Name,
		price:    price,
		quantity: quantity,
		active:   quantity > 0,
		kind:     kind,
	}
	if maximum != nil {
		p.maximum = *maximum
	}
	if kind == KindUnlimited {
		p.quantity = 0
		p.active = true
	}
	return p, nil
}

// NewProduct creates a stock-tracked product
func NewProduct(name string, price decimal.Decimal, quantity int) (*Product, error) {
	return newProduct(KindStocked, name, price, quantity, nil)
}

// NewUnlimitedProduct creates a product whose stock never runs out
func NewUnlimitedProduct(name string, price decimal.Decimal) (*Product, error) {
	return newProduct(KindUnlimited, name, price, 0, nil)
}

// NewLimitedProduct creates a stock-tracked product that sells at most maximum units per purchase
func NewLimitedProduct(name string, price decimal.Decimal, quantity, maximum int) (*Product, error) {
	return newProduct(KindLimited, name, price, quantity, &maximum)
}

// ID returns the product identity
func (p *Product) ID() uuid.UUID { return p.id }

// Name returns the product name
func (p *Product) Name() string { return p.name }

// Price returns the unit price
func (p *Product) Price() decimal.Decimal { return p.price }

// Kind returns the purchase rule of the product
func (p *Product) Kind() ProductKind { return p.kind }

// Maximum returns the per-order cap; ok is false for uncapped products
func (p *Product) Maximum() (maximum int, ok bool) {
	if p.kind != KindLimited {
		return 0, false
	}
	return p.maximum, true
}

// Quantity returns the current stock
func (p *Product) Quantity() Stock {
	if p.kind == KindUnlimited {
		return Stock{Unlimited: true}
	}
	return Stock{Units: p.quantity}
}

// StockTracked reports whether purchases draw down a finite stock
func (p *Product) StockTracked() bool {
	return p.kind != KindUnlimited
}

// SetQuantity replaces the stock. Zero deactivates the product and a positive
// count activates it. Unlimited products ignore the call.
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return errors.Wrap(ErrInvalidArgument, fmt.Sprintf("quantity %d is negative", quantity))
	}
	if !p.StockTracked() {
		return nil
	}
	p.quantity = quantity
	p.active = quantity > 0
	return nil
}

// Restock adds units to a stock-tracked product and reactivates it
func (p *Product) Restock(units int) error {
	if units <= 0 {
		return errors.Wrap(ErrInvalidArgument, fmt.Sprintf("restock of %d units", units))
	}
	if !p.StockTracked() {
		return nil
	}
	return p.SetQuantity(p.quantity + units)
}

// IsActive reports whether the product may be listed and ordered
func (p *Product) IsActive() bool { return p.active }

// Activate marks the product active. A stock-tracked product without units stays inactive.
func (p *Product) Activate() error {
	if p.StockTracked() && p.quantity == 0 {
		return errors.Wrap(ErrInsufficientStock, "cannot activate a product without stock")
	}
	p.active = true
	return nil
}

// Deactivate hides the product from listings and orders
func (p *Product) Deactivate() { p.active = false }

// Promotion returns the attached promotion, or nil
func (p *Product) Promotion() Promotion { return p.promotion }

// SetPromotion attaches promo to the product; nil detaches the current one
func (p *Product) SetPromotion(promo Promotion) { p.promotion = promo }

// Purchase sells quantity units and returns the amount charged.
//
// Limited products reject requests above their maximum; stock-tracked products
// reject requests above the units on hand. The price goes through the attached
// promotion when there is one. On failure the product is left untouched.
func (p *Product) Purchase(quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}

	switch p.kind {
	case KindLimited:
		if quantity > p.maximum {
			return decimal.Zero, errors.Wrap(ErrLimitExceeded,
				fmt.Sprintf("%s allows at most %d per order, requested %d", p.name, p.maximum, quantity))
		}
		return p.purchaseStocked(quantity)
	case KindUnlimited:
		return p.total(quantity)
	default:
		return p.purchaseStocked(quantity)
	}
}

func (p *Product) purchaseStocked(quantity int) (decimal.Decimal, error) {
	if quantity > p.quantity {
		return decimal.Zero, errors.Wrap(ErrInsufficientStock,
			fmt.Sprintf("%s has %d available, requested %d", p.name, p.quantity, quantity))
	}

	total, err := p.total(quantity)
	if err != nil {
		return decimal.Zero, err
	}

	p.quantity -= quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return total, nil
}

func (p *Product) total(quantity int) (decimal.Decimal, error) {
	if p.promotion == nil {
		return p.price.Mul(decimal.NewFromInt(int64(quantity))), nil
	}
	return p.promotion.Apply(p.price, quantity)
}

// ProductView holds the display fields of a product
type ProductView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  Stock           `json:"quantity"`
	Kind      ProductKind     `json:"kind"`
	Maximum   *int            `json:"maximum,omitempty"`
	Promotion string          `json:"promotion,omitempty"`
	Active    bool            `json:"active"`
}

// Describe returns the display fields of the product
func (p *Product) Describe() ProductView {
	view := ProductView{
		ID:       p.id,
		Name:     p.name,
		Price:    p.price,
		Quantity: p.Quantity(),
		Kind:     p.kind,
		Active:   p.active,
	}
	if maximum, ok := p.Maximum(); ok {
		view.Maximum = &maximum
	}
	if p.promotion != nil {
		view.Promotion = p.promotion.Name()
	}
	return view
}

// PromotionLabel returns "Promotion: <name>" or "No promotion"
func (v ProductView) PromotionLabel() string {
	if v.Promotion == "" {
		return "No promotion"
	}
	return "Promotion: " + v.Promotion
}

func (v ProductView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Price: %s, Quantity: %s, %s", v.Name, v.Price.String(), v.Quantity, v.PromotionLabel())
	if v.Maximum != nil {
		fmt.Fprintf(&b, ", Maximum per order: %d", *v.Maximum)
	}
	return b.String()
}
