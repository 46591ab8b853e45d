package service

import (
	"context"
	"log/slog"

	"github.com/mdsweden/storefront-backend/internal/cache"
	"github.com/mdsweden/storefront-backend/internal/config"
	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, name string) ([]*models.Product, error)
	// ListLowStock returns products at or below the restock threshold.
	ListLowStock(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheCfg *config.CacheConfig
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cacheCfg *config.CacheConfig) ProductService {
	return &productService{repo: repo, cache: productCache, cacheCfg: cacheCfg}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPct:   req.DiscountPct,
		Stock:         req.Stock,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Image:         req.Image,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, apperrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	cached := &models.Product{}

	hit, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if hit {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheCfg.ProductTTL); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.DiscountPct != nil {
		product.DiscountPct = *req.DiscountPct
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.IsHighlight != nil {
		product.IsHighlight = *req.IsHighlight
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, apperrors.DatabaseError("Failed to update product").WithError(err)
	}

	// Stale price or discount in the cache would leak into checkouts.
	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("productId", id.String()), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.ListLowStock(ctx, lowStockFloor)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, name string) ([]*models.Product, error) {
	products, err := s.repo.SearchProducts(ctx, name)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}
