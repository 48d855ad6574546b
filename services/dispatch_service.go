package services

import (
	"gorm.io/gorm"

	"restro-backend/models"
)

// DispatchService couples delivery order status transitions to driver
// availability.
type DispatchService struct {
	db *gorm.DB
}

func NewDispatchService(db *gorm.DB) *DispatchService {
	return &DispatchService{db: db}
}

// applyDeliveryStatus is the single transition function for delivery
// orders; the status-update endpoint and the order type-change path
// both go through it. Moving into an active status marks the driver
// unavailable; leaving the active statuses frees the driver once no
// other active delivery remains.
func applyDeliveryStatus(tx *gorm.DB, deliveryOrder *models.DeliveryOrder, newStatus string) error {
	if !models.ValidDeliveryStatus(newStatus) {
		return ErrInvalidStatus
	}

	oldStatus := deliveryOrder.Status
	deliveryOrder.Status = newStatus
	if err := tx.Save(deliveryOrder).Error; err != nil {
		return err
	}

	if deliveryOrder.DriverID == nil {
		return nil
	}

	var driver models.DeliveryDriver
	if err := tx.First(&driver, *deliveryOrder.DriverID).Error; err != nil {
		return err
	}

	if models.DeliveryStatusActive(newStatus) {
		driver.IsAvailable = false
		return tx.Save(&driver).Error
	}

	if models.DeliveryStatusActive(oldStatus) && !models.DeliveryStatusActive(newStatus) {
		var remaining int64
		err := tx.Model(&models.DeliveryOrder{}).
			Where("driver_id = ? AND status IN ? AND id <> ?",
				driver.ID,
				[]string{models.DeliveryStatusAccepted, models.DeliveryStatusInProgress},
				deliveryOrder.ID).
			Count(&remaining).Error
		if err != nil {
			return err
		}
		if remaining == 0 {
			driver.IsAvailable = true
			return tx.Save(&driver).Error
		}
	}
	return nil
}

// UpdateStatus applies a status transition to a delivery order.
func (s *DispatchService) UpdateStatus(deliveryOrderID uint, newStatus string) (*models.DeliveryOrder, error) {
	var deliveryOrder models.DeliveryOrder
	if err := s.db.First(&deliveryOrder, deliveryOrderID).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return applyDeliveryStatus(tx, &deliveryOrder, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return &deliveryOrder, nil
}

// ToggleAvailable flips the driver's availability. Turning it on is
// refused while the driver holds an accepted or in-progress delivery.
func (s *DispatchService) ToggleAvailable(driverID uint) (*models.DeliveryDriver, error) {
	var driver models.DeliveryDriver
	if err := s.db.First(&driver, driverID).Error; err != nil {
		return nil, err
	}

	if !driver.IsAvailable {
		var active int64
		err := s.db.Model(&models.DeliveryOrder{}).
			Where("driver_id = ? AND status IN ?",
				driver.ID,
				[]string{models.DeliveryStatusAccepted, models.DeliveryStatusInProgress}).
			Count(&active).Error
		if err != nil {
			return nil, err
		}
		if active > 0 {
			return nil, ErrDriverHasActiveOrders
		}
	}

	driver.IsAvailable = !driver.IsAvailable
	if err := s.db.Save(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// ToggleActive flips the driver's active flag.
func (s *DispatchService) ToggleActive(driverID uint) (*models.DeliveryDriver, error) {
	var driver models.DeliveryDriver
	if err := s.db.First(&driver, driverID).Error; err != nil {
		return nil, err
	}
	driver.IsActive = !driver.IsActive
	if err := s.db.Save(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}
