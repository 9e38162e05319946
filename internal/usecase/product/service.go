package product

import (
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// Catalog gives exclusive access to a named product
type Catalog interface {
	Update(name string, fn func(*domain.Product) error) error
}

// Service handles administrative inventory changes. None of them go through pricing.
type Service struct {
	catalog Catalog
	logger  *logger.Logger
}

// NewService creates a new inventory administration service
func NewService(catalog Catalog, log *logger.Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  log,
	}
}

// Restock adds units to the named product and returns its resulting view
func (s *Service) Restock(name string, units int) (domain.ProductView, error) {
	return s.apply(name, "Product restocked", func(p *domain.Product) error {
		return p.Restock(units)
	})
}

// SetQuantity replaces the stock of the named product
func (s *Service) SetQuantity(name string, quantity int) (domain.ProductView, error) {
	return s.apply(name, "Product quantity set", func(p *domain.Product) error {
		return p.SetQuantity(quantity)
	})
}

// Activate lists the named product again
func (s *Service) Activate(name string) (domain.ProductView, error) {
	return s.apply(name, "Product activated", func(p *domain.Product) error {
		return p.Activate()
	})
}

// Deactivate hides the named product from listings and orders
func (s *Service) Deactivate(name string) (domain.ProductView, error) {
	return s.apply(name, "Product deactivated", func(p *domain.Product) error {
		p.Deactivate()
		return nil
	})
}

// AttachPromotion sets promo on the named product, replacing any previous one
func (s *Service) AttachPromotion(name string, promo domain.Promotion) (domain.ProductView, error) {
	if promo == nil {
		return domain.ProductView{}, domain.ErrInvalidArgument
	}
	return s.apply(name, "Promotion attached", func(p *domain.Product) error {
		p.SetPromotion(promo)
		return nil
	})
}

// DetachPromotion removes the promotion of the named product
func (s *Service) DetachPromotion(name string) (domain.ProductView, error) {
	return s.apply(name, "Promotion detached", func(p *domain.Product) error {
		p.SetPromotion(nil)
		return nil
	})
}

func (s *Service) apply(name, msg string, fn func(*domain.Product) error) (domain.ProductView, error) {
	var view domain.ProductView
	err := s.catalog.Update(name, func(p *domain.Product) error {
		if err := fn(p); err != nil {
			return err
		}
		view = p.Describe()
		return nil
	})
	if err != nil {
		s.logger.With("name", name).Error("Inventory update failed", err)
		return domain.ProductView{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": view.ID,
		"name":       view.Name,
		"quantity":   view.Quantity.String(),
		"active":     view.Active,
		"promotion":  view.Promotion,
	}).Info(msg)

	return view, nil
}
