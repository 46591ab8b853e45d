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

type DeliverySlotRepository interface {
	CreateSlot(ctx context.Context, slot *models.DeliverySlot) error
	GetSlotByID(ctx context.Context, id uuid.UUID) (*models.DeliverySlot, error)
	ListSlots(ctx context.Context, page, size int) ([]*models.DeliverySlot, int, error)
}

type deliverySlotRepository struct {
	DB *sql.DB
}

func NewDeliverySlotRepo(db *sql.DB) DeliverySlotRepository {
	return &deliverySlotRepository{DB: db}
}

func (r *deliverySlotRepository) CreateSlot(ctx context.Context, slot *models.DeliverySlot) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO delivery_slots (id, delivery_type, date, time_period, delivery_charge)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, slot.ID, slot.DeliveryType, slot.Date, slot.TimePeriod, slot.DeliveryCharge).Scan(&slot.CreatedAt, &slot.UpdatedAt)
}

func (r *deliverySlotRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.DeliverySlot, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	slot := &models.DeliverySlot{}

	query := `
		SELECT id, delivery_type, date, time_period, delivery_charge, created_at, updated_at
		FROM delivery_slots
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&slot.ID, &slot.DeliveryType, &slot.Date, &slot.TimePeriod, &slot.DeliveryCharge, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return slot, nil
}

func (r *deliverySlotRepository) ListSlots(ctx context.Context, page, size int) ([]*models.DeliverySlot, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM delivery_slots`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, delivery_type, date, time_period, delivery_charge, created_at, updated_at
		FROM delivery_slots
		ORDER BY date
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list delivery slots: %w", err)
	}

	defer rows.Close()

	var slots []*models.DeliverySlot

	for rows.Next() {
		slot := &models.DeliverySlot{}

		err := rows.Scan(&slot.ID, &slot.DeliveryType, &slot.Date, &slot.TimePeriod, &slot.DeliveryCharge, &slot.CreatedAt, &slot.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}

		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return slots, total, nil
}
