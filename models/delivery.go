package models

import "gorm.io/gorm"

const (
	DeliveryStatusPending    = "pending"
	DeliveryStatusAccepted   = "accepted"
	DeliveryStatusInProgress = "in_progress"
	DeliveryStatusDelivered  = "delivered"
	DeliveryStatusCancelled  = "cancelled"
)

// ValidDeliveryStatus reports whether s is one of the delivery order
// status choices.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusAccepted, DeliveryStatusInProgress,
		DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	}
	return false
}

// DeliveryStatusActive reports whether s counts against a driver's
// availability.
func DeliveryStatusActive(s string) bool {
	return s == DeliveryStatusAccepted || s == DeliveryStatusInProgress
}

type DeliveryDriver struct {
	UserID      uint `gorm:"uniqueIndex;not null"`
	IsActive    bool `gorm:"default:false"`
	IsAvailable bool `gorm:"default:false"`

	User   User            `gorm:"foreignKey:UserID"`
	Orders []DeliveryOrder `gorm:"foreignKey:DriverID"`

	gorm.Model
}

type DeliveryOrder struct {
	DriverID *uint  `gorm:"index"`
	OrderID  uint   `gorm:"uniqueIndex;not null"`
	Status   string `gorm:"type:varchar(20);default:'pending'"`

	Driver *DeliveryDriver `gorm:"foreignKey:DriverID"`
	Order  Order           `gorm:"foreignKey:OrderID"`

	gorm.Model
}
