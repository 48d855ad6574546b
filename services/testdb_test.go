package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restro-backend/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Dish{},
		&models.DishVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.DeliveryDriver{},
		&models.DeliveryOrder{},
		&models.MessType{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Mess{},
		&models.MessTransaction{},
		&models.CreditUser{},
		&models.CreditOrder{},
		&models.CreditTransaction{},
		&models.NatureGroup{},
		&models.MainGroup{},
		&models.Ledger{},
		&models.LedgerTransaction{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedDish(t *testing.T, db *gorm.DB, name string, price float64) models.Dish {
	t.Helper()
	category := models.Category{Name: "Mains-" + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	dish := models.Dish{Name: name, Price: price, CategoryID: category.ID}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}
	return dish
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "secret123",
		Passcode: fmt.Sprintf("%06d", len(username)*7919%1000000),
		Role:     models.RoleStaff,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedDriver(t *testing.T, db *gorm.DB, username string, available bool) models.DeliveryDriver {
	t.Helper()
	user := seedUser(t, db, username)
	driver := models.DeliveryDriver{UserID: user.ID, IsActive: true, IsAvailable: available}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return driver
}

func seedCreditUser(t *testing.T, db *gorm.DB, name string, totalDue float64, active bool) models.CreditUser {
	t.Helper()
	creditUser := models.CreditUser{
		Username:     name,
		MobileNumber: fmt.Sprintf("9%09d", len(name)*104729%1000000000),
		TotalDue:     totalDue,
		LimitAmount:  5000,
		IsActive:     active,
		DueDate:      time.Now().AddDate(0, 0, 7),
	}
	if err := db.Create(&creditUser).Error; err != nil {
		t.Fatalf("seed credit user: %v", err)
	}
	return creditUser
}

func seedMessType(t *testing.T, db *gorm.DB, name string) models.MessType {
	t.Helper()
	messType := models.MessType{Name: name}
	if err := db.Create(&messType).Error; err != nil {
		t.Fatalf("seed mess type: %v", err)
	}
	return messType
}

func seedMenu(t *testing.T, db *gorm.DB, name string, subTotal float64) models.Menu {
	t.Helper()
	menu := models.Menu{Name: name, SubTotal: subTotal, DayOfWeek: "monday"}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return menu
}

func seedLedger(t *testing.T, db *gorm.DB, name string) models.Ledger {
	t.Helper()
	natureGroup := models.NatureGroup{Name: "Assets-" + name}
	if err := db.Create(&natureGroup).Error; err != nil {
		t.Fatalf("seed nature group: %v", err)
	}
	mainGroup := models.MainGroup{Name: "Current-" + name, NatureGroupID: natureGroup.ID}
	if err := db.Create(&mainGroup).Error; err != nil {
		t.Fatalf("seed main group: %v", err)
	}
	ledger := models.Ledger{Name: name, GroupID: mainGroup.ID, Date: time.Now()}
	if err := db.Create(&ledger).Error; err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return ledger
}
