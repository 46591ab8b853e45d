package service_test

import (
	"testing"
	"time"

	appErrors "github.com/mdsweden/storefront-backend/internal/errors"
	"github.com/mdsweden/storefront-backend/internal/models"
	repoMocks "github.com/mdsweden/storefront-backend/internal/repositories/mocks"
	service "github.com/mdsweden/storefront-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateSlot(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewMockDeliverySlotRepository(t)
		svc := service.NewDeliveryService(mockRepo)

		mockRepo.On("CreateSlot", ctx, mock.MatchedBy(func(slot *models.DeliverySlot) bool {
			return slot.DeliveryType == models.DeliveryTypeMorning && slot.DeliveryCharge == 20
		})).Return(nil).Once()

		// Act
		slot, err := svc.CreateSlot(ctx, &models.CreateDeliverySlotRequest{
			DeliveryType:   models.DeliveryTypeMorning,
			Date:           time.Now().AddDate(0, 0, 3),
			TimePeriod:     "08:00-12:00",
			DeliveryCharge: 20,
		})

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, slot)
	})

	t.Run("Failure - Date In The Past", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewMockDeliverySlotRepository(t)
		svc := service.NewDeliveryService(mockRepo)

		// Act
		slot, err := svc.CreateSlot(ctx, &models.CreateDeliverySlotRequest{
			DeliveryType:   models.DeliveryTypeMorning,
			Date:           time.Now().AddDate(0, 0, -1),
			TimePeriod:     "08:00-12:00",
			DeliveryCharge: 20,
		})

		// Assert
		assert.Nil(t, slot)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreateSlot", mock.Anything, mock.Anything)
	})
}
