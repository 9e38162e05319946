package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// OrderLine requests quantity units of one product. The product is matched by
// ProductID first and by Name when no identity matches.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// Line builds an order line referencing product by identity and name
func Line(product *domain.Product, quantity int) OrderLine {
	return OrderLine{ProductID: product.ID(), Name: product.Name(), Quantity: quantity}
}

// LineByName builds an order line referencing a product by name only
func LineByName(name string, quantity int) OrderLine {
	return OrderLine{Name: name, Quantity: quantity}
}

// LineResult is the outcome of one order line
type LineResult struct {
	Line    OrderLine
	Product string
	Price   decimal.Decimal
	Err     error
}

// Succeeded reports whether the line was fulfilled
func (r LineResult) Succeeded() bool { return r.Err == nil }

// Receipt is the outcome of an order: the total of the fulfilled lines plus one result per line
type Receipt struct {
	ID    uuid.UUID
	Total decimal.Decimal
	Lines []LineResult
}

// Failed returns the lines that were not fulfilled, in order
func (r *Receipt) Failed() []LineResult {
	var failed []LineResult
	for _, line := range r.Lines {
		if !line.Succeeded() {
			failed = append(failed, line)
		}
	}
	return failed
}

// Store holds the catalog and fulfills orders against it
type Store struct {
	mu       sync.Mutex
	products []*domain.Product
	logger   *logger.Logger
}

// New creates a store holding products in the given order. Duplicate names are rejected.
func New(products []*domain.Product, log *logger.Logger) (*Store, error) {
	s := &Store{logger: log}
	for _, p := range products {
		if err := s.AddProduct(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AllProducts returns the catalog in order. Inactive products are only included on request.
func (s *Store) AllProducts(includeInactive bool) []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if includeInactive || p.IsActive() {
			products = append(products, p)
		}
	}
	return products
}

// TotalQuantity sums the stock of active, stock-tracked products
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, p := range s.products {
		if p.IsActive() && p.StockTracked() {
			total += p.Quantity().Units
		}
	}
	return total
}

// AddProduct appends product to the catalog
func (s *Store) AddProduct(product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("nil product: %w", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Name() == product.Name() {
			return fmt.Errorf("%q: %w", product.Name(), domain.ErrAlreadyExists)
		}
	}
	s.products = append(s.products, product)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID(),
		"name":       product.Name(),
		"kind":       product.Kind(),
	}).Debug("Product added to catalog")

	return nil
}

// RemoveProduct drops product from the catalog; absent products are ignored
func (s *Store) RemoveProduct(product *domain.Product) {
	if product == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p == product || p.ID() == product.ID() {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.logger.With("name", p.Name()).Debug("Product removed from catalog")
			return
		}
	}
}

// Lookup returns the product called name, active or not
func (s *Store) Lookup(name string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, domain.ErrNotFound)
}

// Update runs fn on the product called name while holding the catalog lock
func (s *Store) Update(name string, fn func(*domain.Product) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Name() == name {
			return fn(p)
		}
	}
	return fmt.Errorf("%q: %w", name, domain.ErrNotFound)
}

// Order fulfills lines in order. A failing line is recorded on the receipt and
// skipped; it never aborts the remaining lines nor undoes the ones already sold.
func (s *Store) Order(lines []OrderLine) *Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt := &Receipt{
		ID:    uuid.New(),
		Total: decimal.Zero,
		Lines: make([]LineResult, 0, len(lines)),
	}

	for _, line := range lines {
		result := s.fulfill(line)
		if result.Succeeded() {
			receipt.Total = receipt.Total.Add(result.Price)
		} else {
			s.logger.WithFields(map[string]interface{}{
				"receipt_id": receipt.ID,
				"product":    result.Product,
				"quantity":   line.Quantity,
			}).WarnErr("Order line not fulfilled", result.Err)
		}
		receipt.Lines = append(receipt.Lines, result)
	}

	s.logger.WithFields(map[string]interface{}{
		"receipt_id": receipt.ID,
		"lines":      len(lines),
		"failed":     len(receipt.Failed()),
		"total":      receipt.Total.String(),
	}).Info("Order processed")

	return receipt
}

func (s *Store) fulfill(line OrderLine) LineResult {
	result := LineResult{Line: line, Product: line.Name, Price: decimal.Zero}

	product := s.resolve(line)
	if product == nil {
		result.Err = fmt.Errorf("%s: %w", line.Name, domain.ErrProductUnavailable)
		return result
	}
	result.Product = product.Name()

	if line.Quantity <= 0 {
		result.Err = fmt.Errorf("%s: %w", product.Name(), domain.ErrInvalidQuantity)
		return result
	}

	price, err := product.Purchase(line.Quantity)
	if err != nil {
		result.Err = err
		return result
	}
	result.Price = price

	if !product.IsActive() {
		s.logger.With("name", product.Name()).Info("Product sold out")
	}
	return result
}

// resolve finds the active catalog entry for line; the caller holds s.mu
func (s *Store) resolve(line OrderLine) *domain.Product {
	if line.ProductID != uuid.Nil {
		for _, p := range s.products {
			if p.ID() == line.ProductID && p.IsActive() {
				return p
			}
		}
	}
	if line.Name != "" {
		for _, p := range s.products {
			if p.Name() == line.Name && p.IsActive() {
				return p
			}
		}
	}
	return nil
}
