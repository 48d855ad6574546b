package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EntryDebit  = "debit"
	EntryCredit = "credit"
)

// NatureGroup is the top level of the chart of accounts.
type NatureGroup struct {
	Name string `gorm:"uniqueIndex;not null"`

	MainGroups []MainGroup `gorm:"foreignKey:NatureGroupID"`

	gorm.Model
}

type MainGroup struct {
	Name          string `gorm:"uniqueIndex;not null"`
	NatureGroupID uint   `gorm:"index;not null"`

	Ledgers []Ledger `gorm:"foreignKey:GroupID"`

	gorm.Model
}

type Ledger struct {
	Name           string `gorm:"not null"`
	MobileNo       string `gorm:"type:varchar(15)"`
	OpeningBalance float64 `gorm:"type:decimal(10,2);default:0.0"`
	Date           time.Time
	GroupID        uint   `gorm:"index;not null"`
	DebitCredit    string `gorm:"type:varchar(6)"` // 'DEBIT' or 'CREDIT'

	Group MainGroup `gorm:"foreignKey:GroupID"`

	gorm.Model
}

// LedgerTransaction is one leg of a posting; the paired debit and
// credit legs share a voucher number.
type LedgerTransaction struct {
	LedgerID      uint `gorm:"index;not null"`
	ParticularsID uint `gorm:"index;not null"`
	Date          time.Time
	DebitAmount   float64 `gorm:"type:decimal(10,2);default:0.0"`
	CreditAmount  float64 `gorm:"type:decimal(10,2);default:0.0"`
	BalanceAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Remarks       string
	VoucherNo     uint   `gorm:"index;not null"`
	RefNo         string `gorm:"type:varchar(15)"`
	DebitCredit   string `gorm:"type:varchar(10)"` // 'debit' or 'credit'

	Ledger      Ledger `gorm:"foreignKey:LedgerID"`
	Particulars Ledger `gorm:"foreignKey:ParticularsID"`

	gorm.Model
}

type IncomeStatement struct {
	LedgerID   uint   `gorm:"index;not null"`
	IncomeType string `gorm:"type:varchar(20)"` // 'Sales' or 'Indirect Income'
	Amount     float64 `gorm:"type:decimal(10,2);default:0.0"`

	Ledger Ledger `gorm:"foreignKey:LedgerID"`

	gorm.Model
}

type BalanceSheet struct {
	LedgerID    uint   `gorm:"index;not null"`
	BalanceType string `gorm:"type:varchar(20)"` // 'Asset' or 'Liability'
	Amount      float64 `gorm:"type:decimal(10,2);default:0.0"`

	Ledger Ledger `gorm:"foreignKey:LedgerID"`

	gorm.Model
}
