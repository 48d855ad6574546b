package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restro-backend/config"
	"restro-backend/models"
	"restro-backend/utils"
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
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryDriver{},
		&models.DeliveryOrder{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	return db
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDriverRoleIsLimitedToDispatchRoutes(t *testing.T) {
	db := setupTestDB(t, t.Name())
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	driver := models.User{Username: "wheels", Password: "secret123", Passcode: "771122", Role: models.RoleDriver, IsActive: true}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatalf("seed driver user: %v", err)
	}
	if err := db.Create(&models.DeliveryDriver{UserID: driver.ID, IsActive: true}).Error; err != nil {
		t.Fatalf("seed driver profile: %v", err)
	}

	driverToken, err := utils.GenerateToken(fmt.Sprint(driver.ID), driver.Role)
	if err != nil {
		t.Fatalf("generate driver token: %v", err)
	}
	staffToken, err := utils.GenerateToken("99", models.RoleStaff)
	if err != nil {
		t.Fatalf("generate staff token: %v", err)
	}

	r := SetupRouter()

	w := doAuthed(t, r, http.MethodGet, "/api/delivery-drivers", driverToken)
	if w.Code != http.StatusOK {
		t.Fatalf("driver on dispatch route: expected 200 got %d: %s", w.Code, w.Body.String())
	}

	w = doAuthed(t, r, http.MethodGet, "/api/orders", driverToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("driver on staff route: expected 403 got %d", w.Code)
	}

	w = doAuthed(t, r, http.MethodGet, "/api/orders", staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("staff on staff route: expected 200 got %d: %s", w.Code, w.Body.String())
	}
}
