package services

import (
	"time"

	"gorm.io/gorm"

	"restro-backend/models"
)

// CreditService maintains credit account balances. The due balance is
// raised by finalized credit orders and lowered only by appended
// transactions or explicit payments.
type CreditService struct {
	db *gorm.DB
}

func NewCreditService(db *gorm.DB) *CreditService {
	return &CreditService{db: db}
}

type CreditTransactionInput struct {
	ReceivedAmount float64 `json:"received_amount" binding:"required"`
	CashAmount     float64 `json:"cash_amount"`
	BankAmount     float64 `json:"bank_amount"`
	PaymentMethod  string  `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank"`
	CreditUserID   uint    `json:"credit_user" binding:"required"`
}

// AddTransaction appends a payment record and lowers the account's due
// balance. The record's own status reflects the balance before the
// decrement: 'due' while anything was outstanding, 'completed'
// otherwise. Insert and balance update share one database transaction.
func (s *CreditService) AddTransaction(input CreditTransactionInput) (*models.CreditTransaction, error) {
	var creditUser models.CreditUser
	if err := s.db.First(&creditUser, input.CreditUserID).Error; err != nil {
		return nil, err
	}

	record := models.CreditTransaction{
		ReceivedAmount: input.ReceivedAmount,
		CashAmount:     input.CashAmount,
		BankAmount:     input.BankAmount,
		PaymentMethod:  models.PaymentMethodCash,
		CreditUserID:   &creditUser.ID,
	}
	if input.PaymentMethod != "" {
		record.PaymentMethod = input.PaymentMethod
	}

	// evaluated on the pre-decrement balance
	if creditUser.TotalDue > 0 {
		record.Status = models.TransactionStatusDue
	} else {
		record.Status = models.TransactionStatusCompleted
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		creditUser.TotalDue -= record.ReceivedAmount
		return tx.Save(&creditUser).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MakePayment settles part of the account's due balance, clamped so it
// never goes negative, and moves the due date forward to now.
func (s *CreditService) MakePayment(creditUserID uint, amount float64) (*models.CreditUser, error) {
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}

	var creditUser models.CreditUser
	if err := s.db.First(&creditUser, creditUserID).Error; err != nil {
		return nil, err
	}

	if amount > creditUser.TotalDue {
		amount = creditUser.TotalDue
	}
	creditUser.TotalDue -= amount
	creditUser.DueDate = time.Now()
	if err := s.db.Save(&creditUser).Error; err != nil {
		return nil, err
	}
	return &creditUser, nil
}
