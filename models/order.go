package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusCancelled = "cancelled"
	OrderStatusDelivered = "delivered"
)

const (
	OrderTypeTakeaway = "takeaway"
	OrderTypeDining   = "dining"
	OrderTypeDelivery = "delivery"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodBank     = "bank"
	PaymentMethodCashBank = "cash-bank"
	PaymentMethodCredit   = "credit"
)

// ValidOrderStatus reports whether s is one of the order status choices.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusCancelled, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	UserID              uint    `gorm:"index;not null"`
	TotalAmount         float64 `gorm:"type:decimal(8,2);default:0.0"`
	Status              string  `gorm:"type:varchar(20);default:'pending'"`
	BillGenerated       bool    `gorm:"default:false"`
	OrderType           string  `gorm:"type:varchar(20);default:'dining'"`
	PaymentMethod       string  `gorm:"type:varchar(20);default:'cash'"`
	CashAmount          float64 `gorm:"type:decimal(10,2);default:0.0"`
	BankAmount          float64 `gorm:"type:decimal(10,2);default:0.0"`
	InvoiceNumber       string  `gorm:"type:varchar(20)"`
	CustomerName        string  `gorm:"type:varchar(100)"`
	Address             string
	CustomerPhoneNumber string  `gorm:"type:varchar(12)"`
	DeliveryCharge      float64 `gorm:"type:decimal(10,2);default:0.0"`
	DeliveryDriverID    *uint
	CreditUserID        *uint
	KitchenNote         string

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	gorm.Model
}

type OrderItem struct {
	OrderID      uint `gorm:"index;not null"`
	DishID       uint `gorm:"index;not null"`
	Quantity     int  `gorm:"default:1"`
	IsNewlyAdded bool `gorm:"default:false"`
	Variants     StringList `gorm:"type:text"`

	Dish Dish `gorm:"foreignKey:DishID"`

	gorm.Model
}

type Bill struct {
	OrderID     uint    `gorm:"index;not null"`
	UserID      uint    `gorm:"index;not null"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null"`
	Paid        bool    `gorm:"default:false"`

	Order Order `gorm:"foreignKey:OrderID"`

	gorm.Model
}

type Notification struct {
	UserID  *uint `gorm:"index"`
	Message string `gorm:"type:text;not null"`
	IsRead  bool   `gorm:"default:false"`

	gorm.Model
}
