package service

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

// getOrCreate returns the user's cart, creating an empty one on first touch.
func (s *cartService) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  map[string]models.CartItem{},
	}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// GetCart implements CartService.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.getOrCreate(ctx, userID)
}

// AddItem implements CartService.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, apperrors.NotFoundError("Product not found").WithError(err)
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := req.ProductID.String()

	item := cart.Items[key]
	item.ProductID = req.ProductID
	item.Quantity += req.Quantity

	if item.Quantity > product.Stock {
		return nil, apperrors.InsufficientStockError("Requested quantity exceeds available stock")
	}

	cart.Items[key] = item

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity implements CartService. Quantity zero removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := req.ProductID.String()

	if _, ok := cart.Items[key]; !ok {
		return nil, apperrors.NotFoundError("Product not in cart")
	}

	if req.Quantity == 0 {
		delete(cart.Items, key)
	} else {
		product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
		if err != nil {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		if req.Quantity > product.Stock {
			return nil, apperrors.InsufficientStockError("Requested quantity exceeds available stock")
		}

		cart.Items[key] = models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity}
	}

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem implements CartService.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {
	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := req.ProductID.String()

	if _, ok := cart.Items[key]; !ok {
		return nil, apperrors.NotFoundError("Product not in cart")
	}

	delete(cart.Items, key)

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}
