package models

import (
	"time"

	"gorm.io/gorm"

	"restro-backend/utils"
)

const (
	TransactionStatusDue       = "due"
	TransactionStatusCompleted = "completed"
)

type MessType struct {
	// one of breakfast_lunch_dinner, breakfast_lunch, breakfast_dinner,
	// lunch_dinner
	Name string `gorm:"type:varchar(50);uniqueIndex;not null"`

	gorm.Model
}

type Menu struct {
	Name      string `gorm:"not null"`
	DayOfWeek string `gorm:"type:varchar(9)"`
	SubTotal  float64 `gorm:"type:decimal(6,2);default:0.0"`
	IsCustom  bool    `gorm:"default:false"` // false for predefined, true for custom
	MessTypeID *uint  `gorm:"index"`
	CreatedBy string  `gorm:"default:'admin'"`

	MenuItems []MenuItem `gorm:"foreignKey:MenuID"`

	gorm.Model
}

type MenuItem struct {
	MealType string `gorm:"type:varchar(20)"` // breakfast, lunch or dinner
	MenuID   uint   `gorm:"index;not null"`
	DishID   uint   `gorm:"index;not null"`

	Dish Dish `gorm:"foreignKey:DishID"`

	gorm.Model
}

type Mess struct {
	CustomerName  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	MobileNumber  string    `gorm:"type:varchar(15);uniqueIndex;not null"`
	StartDate     time.Time `gorm:"not null"`
	EndDate       time.Time `gorm:"not null"`
	MessTypeID    uint      `gorm:"index;not null"`
	PaymentMethod string    `gorm:"type:varchar(20);default:'cash'"`
	TotalAmount   float64   `gorm:"type:decimal(10,2);default:0.0"`
	PaidAmount    float64   `gorm:"type:decimal(10,2);default:0.0"`
	PendingAmount float64   `gorm:"type:decimal(10,2);default:0.0"`
	CashAmount    float64   `gorm:"type:decimal(10,2);default:0.0"`
	BankAmount    float64   `gorm:"type:decimal(10,2);default:0.0"`
	DiscountAmount float64  `gorm:"type:decimal(10,2);default:0.0"`
	GrandTotal    float64   `gorm:"type:decimal(10,2);default:0.0"`
	InitialTransactionCreated bool `gorm:"default:false"`

	MessType MessType `gorm:"foreignKey:MessTypeID"`
	Menus    []Menu   `gorm:"many2many:mess_menus"`

	gorm.Model
}

// Weeks is the number of whole weeks the subscription covers.
func (m *Mess) Weeks() int {
	return utils.DaysBetween(m.StartDate, m.EndDate) / 7
}

type MessTransaction struct {
	ReceivedAmount float64 `gorm:"type:decimal(10,2);not null"`
	Status         string  `gorm:"type:varchar(10)"` // 'due' or 'completed'
	CashAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	BankAmount     float64 `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod  string  `gorm:"type:varchar(20);default:'cash'"`
	MessID         *uint   `gorm:"index"`

	gorm.Model
}
