package domain

import "github.com/go-faster/errors"

var (
	// ErrInvalidConstruction is returned when a product or promotion is built from invalid parameters
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrInvalidQuantity is returned when a purchase or discount is requested for zero or fewer units
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrInsufficientStock is returned when a purchase exceeds the units on hand
	ErrInsufficientStock = errors.New("not enough quantity available")

	// ErrLimitExceeded is returned when a purchase exceeds the per-order maximum
	ErrLimitExceeded = errors.New("per-order limit exceeded")

	// ErrProductUnavailable is returned when an order line does not resolve to an active product
	ErrProductUnavailable = errors.New("product not available")

	// ErrInvalidArgument is returned for invalid administrative input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a product is not in the catalog
	ErrNotFound = errors.New("product not found")

	// ErrAlreadyExists is returned when a catalog already holds a product with the same name
	ErrAlreadyExists = errors.New("product already exists")
)
