package sqlcatalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/catalog"
	"github.com/Pesokrava/storefront/internal/domain"
)

type promotionRow struct {
	Name    string  `db:"name"`
	Kind    string  `db:"kind"`
	Percent float64 `db:"percent"`
}

type productRow struct {
	ID            uuid.UUID       `db:"id"`
	Position      int             `db:"position"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	Quantity      int             `db:"quantity"`
	Kind          string          `db:"kind"`
	Maximum       sql.NullInt64   `db:"maximum"`
	PromotionName sql.NullString  `db:"promotion_name"`
}

// CatalogRepository reads and writes catalog seeds. The running store never writes back to it.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new SQL catalog repository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadSeed reads the stored catalog, products in position order
func (r *CatalogRepository) LoadSeed(ctx context.Context) (*catalog.Seed, error) {
	var promotions []promotionRow
	err := r.db.SelectContext(ctx, &promotions, `
		SELECT name, kind, percent
		FROM promotions
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	var products []productRow
	err = r.db.SelectContext(ctx, &products, `
		SELECT id, position, name, price, quantity, kind, maximum, promotion_name
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	seed := &catalog.Seed{
		Products:   make([]catalog.ProductSpec, 0, len(products)),
		Promotions: make([]catalog.PromotionSpec, 0, len(promotions)),
	}
	for _, row := range promotions {
		seed.Promotions = append(seed.Promotions, catalog.PromotionSpec{
			Name:    row.Name,
			Kind:    domain.PromotionKind(row.Kind),
			Percent: row.Percent,
		})
	}
	for _, row := range products {
		spec := catalog.ProductSpec{
			Name:     row.Name,
			Price:    row.Price,
			Quantity: row.Quantity,
			Kind:     domain.ProductKind(row.Kind),
		}
		if row.Maximum.Valid {
			spec.Maximum = int(row.Maximum.Int64)
		}
		seed.Products = append(seed.Products, spec)

		if row.PromotionName.Valid {
			seed.Attachments = append(seed.Attachments, catalog.Attachment{
				Product:   row.Name,
				Promotion: row.PromotionName.String,
			})
		}
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return seed, nil
}

// SaveSeed replaces the stored catalog with seed in a single transaction
func (r *CatalogRepository) SaveSeed(ctx context.Context, seed *catalog.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	attached := make(map[string]string, len(seed.Attachments))
	for _, a := range seed.Attachments {
		attached[a.Product] = a.Promotion
	}
	for name := range attached {
		if !hasProduct(seed, name) {
			return fmt.Errorf("attachment for unknown product %q: %w", name, domain.ErrNotFound)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM promotions`); err != nil {
		return fmt.Errorf("failed to clear promotions: %w", err)
	}

	insertPromotion := r.db.Rebind(`INSERT INTO promotions (name, kind, percent) VALUES (?, ?, ?)`)
	for _, p := range seed.Promotions {
		if _, err := tx.ExecContext(ctx, insertPromotion, p.Name, string(p.Kind), p.Percent); err != nil {
			return fmt.Errorf("failed to insert promotion %q: %w", p.Name, err)
		}
	}

	insertProduct := r.db.Rebind(`
		INSERT INTO products (id, position, name, price, quantity, kind, maximum, promotion_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for i, p := range seed.Products {
		row := productRow{
			ID:       uuid.New(),
			Position: i,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Kind:     string(p.Kind),
		}
		if row.Kind == "" {
			row.Kind = string(domain.KindStocked)
		}
		if p.Maximum > 0 {
			row.Maximum = sql.NullInt64{Int64: int64(p.Maximum), Valid: true}
		}
		if promo, ok := attached[p.Name]; ok {
			row.PromotionName = sql.NullString{String: promo, Valid: true}
		}

		_, err := tx.ExecContext(ctx, insertProduct,
			row.ID.String(),
			row.Position,
			row.Name,
			row.Price,
			row.Quantity,
			row.Kind,
			row.Maximum,
			row.PromotionName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func hasProduct(seed *catalog.Seed, name string) bool {
	for _, p := range seed.Products {
		if p.Name == name {
			return true
		}
	}
	return false
}
