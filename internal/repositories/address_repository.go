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

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepo(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO addresses (id, user_id, receiver_name, area, house_number, city, state, pin_code, country, contact_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, address.ID, address.UserID, address.ReceiverName, address.Area, address.HouseNumber, address.City, address.State, address.PinCode, address.Country, address.ContactNumber).Scan(&address.CreatedAt, &address.UpdatedAt)
}

func (r *addressRepository) GetAddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	address := &models.Address{}

	query := `
		SELECT id, user_id, receiver_name, area, house_number, city, state, pin_code, country, contact_number, created_at, updated_at
		FROM addresses
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&address.ID, &address.UserID, &address.ReceiverName, &address.Area, &address.HouseNumber, &address.City, &address.State, &address.PinCode, &address.Country, &address.ContactNumber, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return address, nil
}

func (r *addressRepository) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, receiver_name, area, house_number, city, state, pin_code, country, contact_number, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	defer rows.Close()

	var addresses []*models.Address

	for rows.Next() {
		address := &models.Address{}

		err := rows.Scan(&address.ID, &address.UserID, &address.ReceiverName, &address.Area, &address.HouseNumber, &address.City, &address.State, &address.PinCode, &address.Country, &address.ContactNumber, &address.CreatedAt, &address.UpdatedAt)
		if err != nil {
			return nil, err
		}

		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}
