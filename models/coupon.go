package models

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	Code               string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	DiscountPercentage *float64 `gorm:"type:decimal(5,2)"`
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool // no gorm default tag, an explicit false must survive the insert
	UsageLimit         *uint
	UsageCount         uint `gorm:"default:0"`
	MinPurchaseAmount  *float64 `gorm:"type:decimal(10,2)"`
	Description        string

	gorm.Model
}

// IsValid checks the coupon against its active flag, date window and
// usage limit.
func (c *Coupon) IsValid() bool {
	now := time.Now()
	if !c.IsActive {
		return false
	}
	if c.StartDate.After(now) || c.EndDate.Before(now) {
		return false
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return false
	}
	return true
}

// ApplyDiscount applies the percentage discount when one is set,
// otherwise the flat amount.
func (c *Coupon) ApplyDiscount(amount float64) float64 {
	if c.DiscountPercentage != nil && *c.DiscountPercentage != 0 {
		return amount - (amount * *c.DiscountPercentage / 100)
	}
	if c.DiscountAmount != 0 {
		return amount - c.DiscountAmount
	}
	return amount
}
