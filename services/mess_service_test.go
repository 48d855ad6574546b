package services

import (
	"errors"
	"testing"

	"restro-backend/models"
)

func TestCreateMessComputesTotalAndBootstraps(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	messType := seedMessType(t, db, "breakfast_lunch_dinner")
	menu := seedMenu(t, db, "Weekly Veg", 700)

	mess, err := svc.CreateMess(CreateMessInput{
		CustomerName:  "Kiran",
		MobileNumber:  "9012345678",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-29", // four whole weeks
		MessTypeID:    messType.ID,
		PaidAmount:    1000,
		PendingAmount: 1800,
		CashAmount:    1000,
		MenuIDs:       []uint{menu.ID},
	})
	if err != nil {
		t.Fatalf("create mess: %v", err)
	}

	if mess.TotalAmount != 2800 {
		t.Fatalf("expected total 2800 got %.2f", mess.TotalAmount)
	}
	if !mess.InitialTransactionCreated {
		t.Fatalf("expected bootstrap transaction flag set")
	}

	// the bootstrap transaction mirrors the opening balance without
	// applying it a second time
	var reloaded models.Mess
	if err := db.First(&reloaded, mess.ID).Error; err != nil {
		t.Fatalf("reload mess: %v", err)
	}
	if reloaded.PaidAmount != 1000 || reloaded.PendingAmount != 1800 {
		t.Fatalf("expected opening balance untouched, got paid=%.2f pending=%.2f",
			reloaded.PaidAmount, reloaded.PendingAmount)
	}

	var transactions []models.MessTransaction
	if err := db.Where("mess_id = ?", mess.ID).Find(&transactions).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected 1 bootstrap transaction got %d", len(transactions))
	}
	if transactions[0].Status != models.TransactionStatusDue {
		t.Fatalf("expected due status while a balance is pending got %q", transactions[0].Status)
	}
	if transactions[0].ReceivedAmount != 1000 {
		t.Fatalf("expected bootstrap amount 1000 got %.2f", transactions[0].ReceivedAmount)
	}
}

func TestCreateMessFullyPaidBootstrapCompleted(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	messType := seedMessType(t, db, "lunch_dinner")

	mess, err := svc.CreateMess(CreateMessInput{
		CustomerName: "Divya",
		MobileNumber: "9023456789",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-15",
		MessTypeID:   messType.ID,
		PaidAmount:   1400,
	})
	if err != nil {
		t.Fatalf("create mess: %v", err)
	}

	var bootstrap models.MessTransaction
	if err := db.Where("mess_id = ?", mess.ID).First(&bootstrap).Error; err != nil {
		t.Fatalf("load bootstrap: %v", err)
	}
	if bootstrap.Status != models.TransactionStatusCompleted {
		t.Fatalf("expected completed status with no pending balance got %q", bootstrap.Status)
	}
}

func TestCreateMessInvalidDateRange(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	messType := seedMessType(t, db, "breakfast_lunch")

	_, err := svc.CreateMess(CreateMessInput{
		CustomerName: "Late",
		MobileNumber: "9034567890",
		StartDate:    "2026-09-15",
		EndDate:      "2026-09-01",
		MessTypeID:   messType.ID,
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange got %v", err)
	}
}

func TestAddTransactionMovesPendingToPaid(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	messType := seedMessType(t, db, "breakfast_dinner")

	mess, err := svc.CreateMess(CreateMessInput{
		CustomerName:  "Noor",
		MobileNumber:  "9045678901",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-29",
		MessTypeID:    messType.ID,
		PaidAmount:    500,
		PendingAmount: 1500,
		CashAmount:    500,
	})
	if err != nil {
		t.Fatalf("create mess: %v", err)
	}

	record, err := svc.AddTransaction(MessTransactionInput{
		ReceivedAmount: 600,
		Status:         models.TransactionStatusDue,
		BankAmount:     600,
		PaymentMethod:  models.PaymentMethodBank,
		MessID:         mess.ID,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	if record.ID == 0 {
		t.Fatalf("expected transaction persisted")
	}

	var reloaded models.Mess
	if err := db.First(&reloaded, mess.ID).Error; err != nil {
		t.Fatalf("reload mess: %v", err)
	}
	if reloaded.PaidAmount != 1100 {
		t.Fatalf("expected paid 1100 got %.2f", reloaded.PaidAmount)
	}
	if reloaded.PendingAmount != 900 {
		t.Fatalf("expected pending 900 got %.2f", reloaded.PendingAmount)
	}
	if reloaded.CashAmount != 500 || reloaded.BankAmount != 600 {
		t.Fatalf("expected cash=500 bank=600 got cash=%.2f bank=%.2f",
			reloaded.CashAmount, reloaded.BankAmount)
	}
}

func TestUpdateMessRecomputesTotal(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	messType := seedMessType(t, db, "breakfast_lunch_dinner")
	cheap := seedMenu(t, db, "Budget", 350)
	rich := seedMenu(t, db, "Deluxe", 900)

	mess, err := svc.CreateMess(CreateMessInput{
		CustomerName: "Vik",
		MobileNumber: "9056789012",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-15",
		MessTypeID:   messType.ID,
		MenuIDs:      []uint{cheap.ID},
	})
	if err != nil {
		t.Fatalf("create mess: %v", err)
	}
	if mess.TotalAmount != 700 {
		t.Fatalf("expected total 700 got %.2f", mess.TotalAmount)
	}

	updated, err := svc.UpdateMess(mess.ID, UpdateMessInput{MenuIDs: []uint{rich.ID}})
	if err != nil {
		t.Fatalf("update mess: %v", err)
	}
	if updated.TotalAmount != 1800 {
		t.Fatalf("expected total 1800 got %.2f", updated.TotalAmount)
	}

	// the bootstrap must not be inserted again on update
	var transactions int64
	if err := db.Model(&models.MessTransaction{}).Where("mess_id = ?", mess.ID).Count(&transactions).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if transactions != 1 {
		t.Fatalf("expected 1 transaction got %d", transactions)
	}
}

func TestMenuItemChangesRecomputeSubTotal(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewMessService(db)
	menu := seedMenu(t, db, "Custom", 0)
	rice := seedDish(t, db, "Rice", 60)
	curry := seedDish(t, db, "Curry", 90)

	first := models.MenuItem{MealType: "lunch", MenuID: menu.ID, DishID: rice.ID}
	if err := svc.AddMenuItem(&first); err != nil {
		t.Fatalf("add first item: %v", err)
	}
	second := models.MenuItem{MealType: "dinner", MenuID: menu.ID, DishID: curry.ID}
	if err := svc.AddMenuItem(&second); err != nil {
		t.Fatalf("add second item: %v", err)
	}

	var reloaded models.Menu
	if err := db.First(&reloaded, menu.ID).Error; err != nil {
		t.Fatalf("reload menu: %v", err)
	}
	if reloaded.SubTotal != 150 {
		t.Fatalf("expected sub total 150 got %.2f", reloaded.SubTotal)
	}

	if err := svc.RemoveMenuItem(first.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if err := db.First(&reloaded, menu.ID).Error; err != nil {
		t.Fatalf("reload menu: %v", err)
	}
	if reloaded.SubTotal != 90 {
		t.Fatalf("expected sub total 90 got %.2f", reloaded.SubTotal)
	}
}
