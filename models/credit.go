package models

import (
	"time"

	"gorm.io/gorm"
)

type CreditUser struct {
	Username     string    `gorm:"type:varchar(100);not null"`
	MobileNumber string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	BillDate     time.Time
	DueDate      time.Time
	TotalDue     float64 `gorm:"type:decimal(10,2);default:0.0"`
	LimitAmount  float64 `gorm:"type:decimal(10,2);default:0.0"`
	// No gorm default tag: gorm drops zero-value fields that carry one
	// on INSERT, which would persist an explicit false as true.
	IsActive bool

	CreditOrders []CreditOrder `gorm:"foreignKey:CreditUserID"`

	gorm.Model
}

// BeforeSave deactivates the account whenever a balance is outstanding.
// An account is never reactivated automatically.
func (u *CreditUser) BeforeSave(tx *gorm.DB) error {
	if u.TotalDue > 0 {
		u.IsActive = false
	}
	return nil
}

type CreditOrder struct {
	OrderID      uint `gorm:"uniqueIndex;not null"`
	CreditUserID uint `gorm:"index;not null"`

	Order Order `gorm:"foreignKey:OrderID"`

	gorm.Model
}

type CreditTransaction struct {
	ReceivedAmount float64 `gorm:"type:decimal(10,2);not null"`
	Status         string  `gorm:"type:varchar(10)"` // 'due' or 'completed'
	CashAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	BankAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod  string  `gorm:"type:varchar(20);default:'cash'"`
	CreditUserID   *uint   `gorm:"index"`

	gorm.Model
}
