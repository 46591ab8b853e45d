package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, name string) ([]*models.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Name, product.Description, product.Price, product.DiscountPct, product.Stock, product.CategoryID, product.SubcategoryID, product.Image, product.IsHighlight).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.DiscountPct, &product.Stock, &product.CategoryID, &product.SubcategoryID, &product.Image, &product.IsHighlight, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, price = $3, discount_pct = $4, stock = $5, image = $6, is_highlight = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.DiscountPct, product.Stock, product.Image, product.IsHighlight, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products`

	err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	query := `
		SELECT id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.DiscountPct, &product.Stock, &product.CategoryID, &product.SubcategoryID, &product.Image, &product.IsHighlight, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) SearchProducts(ctx context.Context, name string) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := r.DB.QueryContext(dbCtx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.DiscountPct, &product.Stock, &product.CategoryID, &product.SubcategoryID, &product.Image, &product.IsHighlight, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, discount_pct, stock, category_id, subcategory_id, image, is_highlight, created_at, updated_at
		FROM products
		WHERE stock <= $1
		ORDER BY stock, name
	`

	rows, err := r.DB.QueryContext(dbCtx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.DiscountPct, &product.Stock, &product.CategoryID, &product.SubcategoryID, &product.Image, &product.IsHighlight, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// DecrementStock is a single conditional update: it refuses to take stock
// below zero, so concurrent checkouts cannot race past the availability
// check. Returns the remaining stock.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
		RETURNING stock
	`

	var remaining int

	err := r.DB.QueryRowContext(dbCtx, query, id, qty).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientStock
		}

		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return remaining, nil
}
