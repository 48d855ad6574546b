package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restro-backend/models"
)

// LedgerService posts paired debit/credit entries to the chart of
// accounts.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

type LedgerEntryInput struct {
	LedgerID      uint    `json:"ledger_id" binding:"required"`
	ParticularsID uint    `json:"particulars_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	DebitAmount   float64 `json:"debit_amount"`
	CreditAmount  float64 `json:"credit_amount"`
	BalanceAmount float64 `json:"balance_amount"`
	Remarks       string  `json:"remarks"`
	RefNo         string  `json:"ref_no"`
	DebitCredit   string  `json:"debit_credit" binding:"required,oneof=debit credit"`
}

type PairedEntryInput struct {
	Transaction1 *LedgerEntryInput `json:"transaction1" binding:"required"`
	Transaction2 *LedgerEntryInput `json:"transaction2" binding:"required"`
}

// PostPaired creates both legs of a posting under the next voucher
// number, atomically. Either both legs commit or neither does.
func (s *LedgerService) PostPaired(input PairedEntryInput) (*models.LedgerTransaction, *models.LedgerTransaction, error) {
	first, err := entryFromInput(input.Transaction1)
	if err != nil {
		return nil, nil, err
	}
	second, err := entryFromInput(input.Transaction2)
	if err != nil {
		return nil, nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var last models.LedgerTransaction
		nextVoucher := uint(1)
		if err := tx.Order("voucher_no DESC").First(&last).Error; err == nil {
			nextVoucher = last.VoucherNo + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		first.VoucherNo = nextVoucher
		second.VoucherNo = nextVoucher

		if err := tx.Create(first).Error; err != nil {
			return err
		}
		return tx.Create(second).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func entryFromInput(input *LedgerEntryInput) (*models.LedgerTransaction, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	return &models.LedgerTransaction{
		LedgerID:      input.LedgerID,
		ParticularsID: input.ParticularsID,
		Date:          date,
		DebitAmount:   input.DebitAmount,
		CreditAmount:  input.CreditAmount,
		BalanceAmount: input.BalanceAmount,
		Remarks:       input.Remarks,
		RefNo:         input.RefNo,
		DebitCredit:   input.DebitCredit,
	}, nil
}
