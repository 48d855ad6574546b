package services

import (
	"errors"
	"testing"

	"restro-backend/models"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	biryani := seedDish(t, db, "Biryani", 250)
	lassi := seedDish(t, db, "Lassi", 80)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{
			{DishID: biryani.ID, Quantity: 2},
			{DishID: lassi.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	want := 2*250.0 + 3*80.0
	if order.TotalAmount != want {
		t.Fatalf("expected total %.2f got %.2f", want, order.TotalAmount)
	}
	if order.InvoiceNumber != "0001" {
		t.Fatalf("expected invoice number 0001 got %q", order.InvoiceNumber)
	}

	var notifications int64
	if err := db.Model(&models.Notification{}).Count(&notifications).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if notifications != 1 {
		t.Fatalf("expected 1 notification got %d", notifications)
	}
}

func TestCreateOrderAddsDeliveryCharge(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Thali", 150)
	driver := seedDriver(t, db, "rider", true)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items:               []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
		OrderType:           models.OrderTypeDelivery,
		CustomerName:        "Asha",
		Address:             "12 Hill Road",
		CustomerPhoneNumber: "9876543210",
		DeliveryCharge:      40,
		DeliveryDriverID:    &driver.ID,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.TotalAmount != 190 {
		t.Fatalf("expected total 190 got %.2f", order.TotalAmount)
	}

	var deliveryOrder models.DeliveryOrder
	if err := db.Where("order_id = ?", order.ID).First(&deliveryOrder).Error; err != nil {
		t.Fatalf("expected delivery order: %v", err)
	}
	if deliveryOrder.DriverID == nil || *deliveryOrder.DriverID != driver.ID {
		t.Fatalf("expected delivery order assigned to driver %d", driver.ID)
	}
	if deliveryOrder.Status != models.DeliveryStatusPending {
		t.Fatalf("expected pending delivery order got %q", deliveryOrder.Status)
	}
}

func TestCreateOrderUnknownDish(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")

	_, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: 999, Quantity: 1}},
	})
	if !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound got %v", err)
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 0 {
		t.Fatalf("expected rollback, found %d orders", orders)
	}
}

func TestUpdateOrderAppendsItemsAndRecomputes(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dosa := seedDish(t, db, "Dosa", 120)
	chai := seedDish(t, db, "Chai", 30)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dosa.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := svc.UpdateOrder(order.ID, UpdateOrderInput{
		Items: []OrderItemInput{{DishID: chai.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}

	if updated.TotalAmount != 180 {
		t.Fatalf("expected total 180 got %.2f", updated.TotalAmount)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(updated.Items))
	}

	var appended models.OrderItem
	if err := db.Where("order_id = ? AND dish_id = ?", order.ID, chai.ID).First(&appended).Error; err != nil {
		t.Fatalf("find appended item: %v", err)
	}
	if !appended.IsNewlyAdded {
		t.Fatalf("expected appended item to be flagged newly added")
	}
}

func TestUpdateStatusDeliveredRequiresPaymentMethod(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Pulao", 180)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.UpdateStatus(order.ID, OrderStatusInput{Status: models.OrderStatusDelivered})
	if !errors.Is(err, ErrPaymentMethodRequired) {
		t.Fatalf("expected ErrPaymentMethodRequired got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != models.OrderStatusPending {
		t.Fatalf("expected status unchanged got %q", reloaded.Status)
	}
}

func TestUpdateStatusCashForcesBankToZero(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Korma", 220)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cash := 220.0
	bank := 100.0
	updated, err := svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCash,
		CashAmount:    &cash,
		BankAmount:    &bank,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}

	if updated.CashAmount != 220 || updated.BankAmount != 0 {
		t.Fatalf("expected cash=220 bank=0 got cash=%.2f bank=%.2f", updated.CashAmount, updated.BankAmount)
	}
}

func TestUpdateStatusCashBankStoredAsGiven(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Tikka", 300)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// the split is deliberately not checked against the total
	cash := 100.0
	bank := 50.0
	updated, err := svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCashBank,
		CashAmount:    &cash,
		BankAmount:    &bank,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}

	if updated.CashAmount != 100 || updated.BankAmount != 50 {
		t.Fatalf("expected cash=100 bank=50 got cash=%.2f bank=%.2f", updated.CashAmount, updated.BankAmount)
	}
}

func TestUpdateStatusCreditRaisesDueAndDeactivates(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Paneer", 260)
	creditUser := seedCreditUser(t, db, "Ravi", 0, true)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCredit,
		CreditUserID:  &creditUser.ID,
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.CashAmount != 0 || updated.BankAmount != 0 {
		t.Fatalf("expected zero cash and bank on credit settlement")
	}

	var reloaded models.CreditUser
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.TotalDue != 520 {
		t.Fatalf("expected total due 520 got %.2f", reloaded.TotalDue)
	}
	if reloaded.IsActive {
		t.Fatalf("expected account deactivated while balance is outstanding")
	}

	var creditOrders int64
	if err := db.Model(&models.CreditOrder{}).Where("order_id = ?", order.ID).Count(&creditOrders).Error; err != nil {
		t.Fatalf("count credit orders: %v", err)
	}
	if creditOrders != 1 {
		t.Fatalf("expected 1 credit order got %d", creditOrders)
	}
}

func TestUpdateStatusCreditInactiveUserRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Naan", 40)
	creditUser := seedCreditUser(t, db, "Sita", 0, false)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCredit,
		CreditUserID:  &creditUser.ID,
	})
	if !errors.Is(err, ErrCreditUserInactive) {
		t.Fatalf("expected ErrCreditUserInactive got %v", err)
	}

	var reloadedUser models.CreditUser
	if err := db.First(&reloadedUser, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloadedUser.TotalDue != 0 {
		t.Fatalf("expected due unchanged got %.2f", reloadedUser.TotalDue)
	}

	var reloadedOrder models.Order
	if err := db.First(&reloadedOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloadedOrder.Status == models.OrderStatusDelivered {
		t.Fatalf("expected order not delivered after rejection")
	}

	var creditOrders int64
	if err := db.Model(&models.CreditOrder{}).Count(&creditOrders).Error; err != nil {
		t.Fatalf("count credit orders: %v", err)
	}
	if creditOrders != 0 {
		t.Fatalf("expected no credit order got %d", creditOrders)
	}
}

func TestUpdateStatusCreditFallsBackToOrderCreditUser(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Kebab", 200)
	creditUser := seedCreditUser(t, db, "Anil", 0, true)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items:        []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
		CreditUserID: &creditUser.ID,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCredit,
	}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	var reloaded models.CreditUser
	if err := db.First(&reloaded, creditUser.ID).Error; err != nil {
		t.Fatalf("reload credit user: %v", err)
	}
	if reloaded.TotalDue != 200 {
		t.Fatalf("expected due 200 got %.2f", reloaded.TotalDue)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)

	_, err := svc.UpdateStatus(1, OrderStatusInput{Status: "shipped"})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus got %v", err)
	}
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Halwa", 90)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cash := 90.0
	if _, err := svc.UpdateStatus(order.ID, OrderStatusInput{
		Status:        models.OrderStatusDelivered,
		PaymentMethod: models.PaymentMethodCash,
		CashAmount:    &cash,
	}); err != nil {
		t.Fatalf("deliver order: %v", err)
	}

	_, err = svc.CancelOrder(order.ID)
	if !errors.Is(err, ErrOrderDelivered) {
		t.Fatalf("expected ErrOrderDelivered got %v", err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != models.OrderStatusDelivered {
		t.Fatalf("expected status to stay delivered got %q", reloaded.Status)
	}
}

func TestCancelPendingOrder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Soup", 60)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Fatalf("expected cancelled got %q", cancelled.Status)
	}
}

func TestChangeOrderTypeRequiresDeliveryDetails(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Momos", 110)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, _, err = svc.ChangeOrderType(order.ID, OrderTypeChangeInput{
		OrderType: models.OrderTypeDelivery,
	})
	if !errors.Is(err, ErrDeliveryDetailsRequired) {
		t.Fatalf("expected ErrDeliveryDetailsRequired got %v", err)
	}
}

func TestChangeOrderTypeIsIdempotentOnDeliveryOrder(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Rolls", 130)
	driver := seedDriver(t, db, "rider", true)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	name := "Meera"
	address := "4 Lake View"
	phone := "9123456780"
	charge := 30.0
	input := OrderTypeChangeInput{
		OrderType:           models.OrderTypeDelivery,
		CustomerName:        &name,
		Address:             &address,
		CustomerPhoneNumber: &phone,
		DeliveryCharge:      &charge,
		DeliveryDriverID:    &driver.ID,
	}

	updated, deliveryOrder, err := svc.ChangeOrderType(order.ID, input)
	if err != nil {
		t.Fatalf("change order type: %v", err)
	}
	if deliveryOrder == nil {
		t.Fatalf("expected a delivery order")
	}
	if updated.TotalAmount != 160 {
		t.Fatalf("expected total 160 with delivery charge got %.2f", updated.TotalAmount)
	}

	// a second change must reuse the existing delivery order
	if _, _, err := svc.ChangeOrderType(order.ID, input); err != nil {
		t.Fatalf("repeat change order type: %v", err)
	}

	var deliveryOrders int64
	if err := db.Model(&models.DeliveryOrder{}).Where("order_id = ?", order.ID).Count(&deliveryOrders).Error; err != nil {
		t.Fatalf("count delivery orders: %v", err)
	}
	if deliveryOrders != 1 {
		t.Fatalf("expected 1 delivery order got %d", deliveryOrders)
	}
}

func TestChangeOrderTypeStatusDrivesAvailability(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewOrderService(db)
	user := seedUser(t, db, "cashier")
	dish := seedDish(t, db, "Wrap", 140)
	driver := seedDriver(t, db, "rider", true)

	order, err := svc.CreateOrder(user.ID, CreateOrderInput{
		Items: []OrderItemInput{{DishID: dish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	name := "Farah"
	address := "9 Park Lane"
	phone := "9988776655"
	_, _, err = svc.ChangeOrderType(order.ID, OrderTypeChangeInput{
		OrderType:           models.OrderTypeDelivery,
		CustomerName:        &name,
		Address:             &address,
		CustomerPhoneNumber: &phone,
		DeliveryDriverID:    &driver.ID,
		DeliveryOrderStatus: models.DeliveryStatusAccepted,
	})
	if err != nil {
		t.Fatalf("change order type: %v", err)
	}

	var reloaded models.DeliveryDriver
	if err := db.First(&reloaded, driver.ID).Error; err != nil {
		t.Fatalf("reload driver: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("expected driver marked unavailable after accepting")
	}
}
