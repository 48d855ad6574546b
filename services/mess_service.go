package services

import (
	"time"

	"gorm.io/gorm"

	"restro-backend/models"
)

// MessService owns mess subscriptions and their running balance. The
// balance is only ever fed by appending transactions; the one special
// case is the bootstrap transaction mirroring the opening balance,
// which is inserted with the balance apply skipped so the mess is not
// debited twice for its own opening amount.
type MessService struct {
	db *gorm.DB
}

func NewMessService(db *gorm.DB) *MessService {
	return &MessService{db: db}
}

type CreateMessInput struct {
	CustomerName   string  `json:"customer_name" binding:"required"`
	MobileNumber   string  `json:"mobile_number" binding:"required"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	MessTypeID     uint    `json:"mess_type_id" binding:"required"`
	PaymentMethod  string  `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank"`
	PaidAmount     float64 `json:"paid_amount"`
	PendingAmount  float64 `json:"pending_amount"`
	CashAmount     float64 `json:"cash_amount"`
	BankAmount     float64 `json:"bank_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	GrandTotal     float64 `json:"grand_total"`
	MenuIDs        []uint  `json:"menus"`
}

type UpdateMessInput struct {
	CustomerName   *string  `json:"customer_name"`
	MobileNumber   *string  `json:"mobile_number"`
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	MessTypeID     *uint    `json:"mess_type_id"`
	PaymentMethod  *string  `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank"`
	PaidAmount     *float64 `json:"paid_amount"`
	PendingAmount  *float64 `json:"pending_amount"`
	CashAmount     *float64 `json:"cash_amount"`
	BankAmount     *float64 `json:"bank_amount"`
	DiscountAmount *float64 `json:"discount_amount"`
	GrandTotal     *float64 `json:"grand_total"`
	MenuIDs        []uint   `json:"menus"`
}

const dateLayout = "2006-01-02"

// recalculateMessTotal sets total_amount to the weekly menu cost times
// the number of whole weeks the subscription covers.
func recalculateMessTotal(tx *gorm.DB, mess *models.Mess) error {
	var menus []models.Menu
	if err := tx.Model(mess).Association("Menus").Find(&menus); err != nil {
		return err
	}
	var weekly float64
	for _, menu := range menus {
		weekly += menu.SubTotal
	}
	mess.TotalAmount = weekly * float64(mess.Weeks())
	return nil
}

// CreateMess creates the subscription, computes its total and inserts
// the bootstrap transaction mirroring the opening paid/cash/bank split.
func (s *MessService) CreateMess(input CreateMessInput) (*models.Mess, error) {
	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	mess := models.Mess{
		CustomerName:   input.CustomerName,
		MobileNumber:   input.MobileNumber,
		StartDate:      startDate,
		EndDate:        endDate,
		MessTypeID:     input.MessTypeID,
		PaymentMethod:  models.PaymentMethodCash,
		PaidAmount:     input.PaidAmount,
		PendingAmount:  input.PendingAmount,
		CashAmount:     input.CashAmount,
		BankAmount:     input.BankAmount,
		DiscountAmount: input.DiscountAmount,
		GrandTotal:     input.GrandTotal,
	}
	if input.PaymentMethod != "" {
		mess.PaymentMethod = input.PaymentMethod
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mess).Error; err != nil {
			return err
		}
		if len(input.MenuIDs) > 0 {
			var menus []models.Menu
			if err := tx.Find(&menus, input.MenuIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&mess).Association("Menus").Replace(&menus); err != nil {
				return err
			}
		}
		if err := recalculateMessTotal(tx, &mess); err != nil {
			return err
		}
		if err := tx.Save(&mess).Error; err != nil {
			return err
		}

		if !mess.InitialTransactionCreated {
			status := models.TransactionStatusDue
			if mess.PendingAmount == 0 {
				status = models.TransactionStatusCompleted
			}
			bootstrap := models.MessTransaction{
				ReceivedAmount: mess.PaidAmount,
				Status:         status,
				CashAmount:     mess.CashAmount,
				BankAmount:     mess.BankAmount,
				PaymentMethod:  mess.PaymentMethod,
				MessID:         &mess.ID,
			}
			// the opening balance is already reflected on the mess, so
			// the balance apply is skipped for this one insert
			if err := insertMessTransaction(tx, &bootstrap, false); err != nil {
				return err
			}
			mess.InitialTransactionCreated = true
			if err := tx.Save(&mess).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("MessType").Preload("Menus").First(&mess, mess.ID).Error; err != nil {
		return nil, err
	}
	return &mess, nil
}

// UpdateMess applies field changes and recomputes the total. The
// bootstrap transaction is never re-created here.
func (s *MessService) UpdateMess(messID uint, input UpdateMessInput) (*models.Mess, error) {
	var mess models.Mess
	if err := s.db.First(&mess, messID).Error; err != nil {
		return nil, err
	}

	if input.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *input.StartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		mess.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *input.EndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		mess.EndDate = endDate
	}
	if !mess.EndDate.After(mess.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.CustomerName != nil {
		mess.CustomerName = *input.CustomerName
	}
	if input.MobileNumber != nil {
		mess.MobileNumber = *input.MobileNumber
	}
	if input.MessTypeID != nil {
		mess.MessTypeID = *input.MessTypeID
	}
	if input.PaymentMethod != nil {
		mess.PaymentMethod = *input.PaymentMethod
	}
	if input.PaidAmount != nil {
		mess.PaidAmount = *input.PaidAmount
	}
	if input.PendingAmount != nil {
		mess.PendingAmount = *input.PendingAmount
	}
	if input.CashAmount != nil {
		mess.CashAmount = *input.CashAmount
	}
	if input.BankAmount != nil {
		mess.BankAmount = *input.BankAmount
	}
	if input.DiscountAmount != nil {
		mess.DiscountAmount = *input.DiscountAmount
	}
	if input.GrandTotal != nil {
		mess.GrandTotal = *input.GrandTotal
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(input.MenuIDs) > 0 {
			var menus []models.Menu
			if err := tx.Find(&menus, input.MenuIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&mess).Association("Menus").Replace(&menus); err != nil {
				return err
			}
		}
		if err := recalculateMessTotal(tx, &mess); err != nil {
			return err
		}
		return tx.Save(&mess).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("MessType").Preload("Menus").First(&mess, mess.ID).Error; err != nil {
		return nil, err
	}
	return &mess, nil
}

type MessTransactionInput struct {
	ReceivedAmount float64 `json:"received_amount" binding:"required"`
	Status         string  `json:"status" binding:"required,oneof=due completed"`
	CashAmount     float64 `json:"cash_amount"`
	BankAmount     float64 `json:"bank_amount"`
	PaymentMethod  string  `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank"`
	MessID         uint    `json:"mess" binding:"required"`
}

// AddTransaction appends a payment record and applies it to the mess
// balance in one database transaction; a failing balance update rolls
// back the insert.
func (s *MessService) AddTransaction(input MessTransactionInput) (*models.MessTransaction, error) {
	var mess models.Mess
	if err := s.db.First(&mess, input.MessID).Error; err != nil {
		return nil, err
	}

	record := models.MessTransaction{
		ReceivedAmount: input.ReceivedAmount,
		Status:         input.Status,
		CashAmount:     input.CashAmount,
		BankAmount:     input.BankAmount,
		PaymentMethod:  models.PaymentMethodCash,
		MessID:         &mess.ID,
	}
	if input.PaymentMethod != "" {
		record.PaymentMethod = input.PaymentMethod
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return insertMessTransaction(tx, &record, true)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// insertMessTransaction creates the record and, unless applyToMess is
// false, moves the received amount from pending to paid on the parent
// and accumulates the cash/bank split.
func insertMessTransaction(tx *gorm.DB, record *models.MessTransaction, applyToMess bool) error {
	if err := tx.Create(record).Error; err != nil {
		return err
	}
	if !applyToMess || record.MessID == nil {
		return nil
	}

	var mess models.Mess
	if err := tx.First(&mess, *record.MessID).Error; err != nil {
		return err
	}
	mess.PendingAmount -= record.ReceivedAmount
	mess.PaidAmount += record.ReceivedAmount
	mess.CashAmount += record.CashAmount
	mess.BankAmount += record.BankAmount
	return tx.Save(&mess).Error
}

// RecalculateMenuSubTotal re-sums the menu's dish prices. Called
// whenever the menu's item membership changes.
func RecalculateMenuSubTotal(tx *gorm.DB, menuID uint) error {
	var items []models.MenuItem
	if err := tx.Preload("Dish").Where("menu_id = ?", menuID).Find(&items).Error; err != nil {
		return err
	}
	var total float64
	for _, item := range items {
		total += item.Dish.Price
	}
	return tx.Model(&models.Menu{}).Where("id = ?", menuID).Update("sub_total", total).Error
}

// AddMenuItem attaches a dish to a menu and recomputes the sub total.
func (s *MessService) AddMenuItem(item *models.MenuItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return RecalculateMenuSubTotal(tx, item.MenuID)
	})
}

// RemoveMenuItem detaches a dish from its menu and recomputes the sub
// total.
func (s *MessService) RemoveMenuItem(itemID uint) error {
	var item models.MenuItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return RecalculateMenuSubTotal(tx, item.MenuID)
	})
}
