package service

import (
	"context"

	apperrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repository "github.com/mdsweden/storefront-backend/internal/repositories"
	"github.com/google/uuid"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error)
	GetAddressByID(ctx context.Context, userID, id uuid.UUID) (*models.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *models.CreateAddressRequest) (*models.Address, error) {
	address := &models.Address{
		ID:            uuid.New(),
		UserID:        userID,
		ReceiverName:  req.ReceiverName,
		Area:          req.Area,
		HouseNumber:   req.HouseNumber,
		City:          req.City,
		State:         req.State,
		PinCode:       req.PinCode,
		Country:       req.Country,
		ContactNumber: req.ContactNumber,
	}

	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, apperrors.DatabaseError("Failed to create address").WithError(err)
	}

	return address, nil
}

func (s *addressService) GetAddressByID(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	address, err := s.repo.GetAddressByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundError("Address not found").WithError(err)
	}

	if address.UserID != userID {
		return nil, apperrors.AddressMismatchError("Address does not belong to this user")
	}

	return address, nil
}

func (s *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	addresses, err := s.repo.ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch addresses").WithError(err)
	}

	return addresses, nil
}
