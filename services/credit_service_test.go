package services

import (
	"errors"
	"testing"
	"time"

	"restro-backend/models"
)

func TestAddCreditTransactionLowersDue(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewCreditService(db)
	creditUser := seedCreditUser(t, db, "Ravi", 800, false)

	record, err := svc.AddTransaction(CreditTransactionInput{
		ReceivedAmount: 300,
		CashAmount:     300,
		CreditUserID:   creditUser.ID,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	// status reflects the balance before the decrement
	if record.Status != models.TransactionStatusDue {
		t.Fatalf("expected due status got %q", record.Status)
	}

	var reloaded models.CreditUser
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.TotalDue != 500 {
		t.Fatalf("expected due 500 got %.2f", reloaded.TotalDue)
	}
}

func TestAddCreditTransactionCompletedOnClearedAccount(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewCreditService(db)
	creditUser := seedCreditUser(t, db, "Sita", 0, true)

	record, err := svc.AddTransaction(CreditTransactionInput{
		ReceivedAmount: 100,
		BankAmount:     100,
		PaymentMethod:  models.PaymentMethodBank,
		CreditUserID:   creditUser.ID,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if record.Status != models.TransactionStatusCompleted {
		t.Fatalf("expected completed status got %q", record.Status)
	}
}

func TestMakePaymentClampsToDue(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewCreditService(db)
	creditUser := seedCreditUser(t, db, "Anil", 250, false)

	updated, err := svc.MakePayment(creditUser.ID, 1000)
	if err != nil {
		t.Fatalf("make payment: %v", err)
	}
	if updated.TotalDue != 0 {
		t.Fatalf("expected due cleared got %.2f", updated.TotalDue)
	}
	if time.Since(updated.DueDate) > time.Minute {
		t.Fatalf("expected due date moved to now")
	}
}

func TestMakePaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewCreditService(db)
	creditUser := seedCreditUser(t, db, "Zero", 250, false)

	if _, err := svc.MakePayment(creditUser.ID, 0); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Fatalf("expected ErrInvalidPaymentAmount got %v", err)
	}
	if _, err := svc.MakePayment(creditUser.ID, -10); !errors.Is(err, ErrInvalidPaymentAmount) {
		t.Fatalf("expected ErrInvalidPaymentAmount got %v", err)
	}

	var reloaded models.CreditUser
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.TotalDue != 250 {
		t.Fatalf("expected due unchanged got %.2f", reloaded.TotalDue)
	}
}

func TestCreditUserStaysInactiveWhileDueOutstanding(t *testing.T) {
	db := setupTestDB(t, t.Name())
	creditUser := seedCreditUser(t, db, "Hook", 0, true)

	creditUser.TotalDue = 120
	if err := db.Save(&creditUser).Error; err != nil {
		t.Fatalf("save credit user: %v", err)
	}

	var reloaded models.CreditUser
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected account deactivated while due is outstanding")
	}

	// clearing the balance does not reactivate the account
	if _, err := NewCreditService(db).MakePayment(creditUser.ID, 120); err != nil {
		t.Fatalf("make payment: %v", err)
	}
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected account to stay inactive after clearing the balance")
	}
}
