package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type DeliveryService interface {
	CreateSlot(ctx context.Context, req *models.CreateDeliverySlotRequest) (*models.DeliverySlot, error)
	GetSlotByID(ctx context.Context, id uuid.UUID) (*models.DeliverySlot, error)
	ListSlots(ctx context.Context, page, size int) ([]*models.DeliverySlot, int, error)
}

type deliveryService struct {
	repo repository.DeliverySlotRepository
}

func NewDeliveryService(repo repository.DeliverySlotRepository) DeliveryService {
	return &deliveryService{repo: repo}
}

func (s *deliveryService) CreateSlot(ctx context.Context, req *models.CreateDeliverySlotRequest) (*models.DeliverySlot, error) {
	// Slots for today are still bookable; anything earlier is not.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if req.Date.Before(startOfDay) {
		return nil, apperrors.BadRequestError("Delivery slot date cannot be in the past")
	}

	slot := &models.DeliverySlot{
		ID:             uuid.New(),
		DeliveryType:   req.DeliveryType,
		Date:           req.Date,
		TimePeriod:     req.TimePeriod,
		DeliveryCharge: req.DeliveryCharge,
	}

	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, apperrors.DatabaseError("Failed to create delivery slot").WithError(err)
	}

	return slot, nil
}

func (s *deliveryService) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.DeliverySlot, error) {
	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Delivery slot not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to fetch delivery slot").WithError(err)
	}

	return slot, nil
}

func (s *deliveryService) ListSlots(ctx context.Context, page, size int) ([]*models.DeliverySlot, int, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	slots, total, err := s.repo.ListSlots(ctx, page, size)
	if err != nil {
		return nil, 0, apperrors.DatabaseError("Failed to fetch delivery slots").WithError(err)
	}

	return slots, total, nil
}
