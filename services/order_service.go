package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"restro-backend/models"
)

// OrderService owns the order lifecycle: creation, item updates, the
// payment reconciliation applied on delivery, cancellation and order
// type changes. Side effects the persistence layer used to hide behind
// hooks (delivery order auto-creation, notifications, balance updates)
// are explicit steps here, all inside one database transaction.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderItemInput struct {
	DishID   uint     `json:"dish_id" binding:"required"`
	Quantity int      `json:"quantity" binding:"min=1"`
	Variants []string `json:"variants"`
}

type CreateOrderInput struct {
	Items               []OrderItemInput `json:"items" binding:"required,min=1"`
	Status              string           `json:"status" binding:"omitempty,oneof=pending approved cancelled delivered"`
	OrderType           string           `json:"order_type" binding:"omitempty,oneof=takeaway dining delivery"`
	PaymentMethod       string           `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank credit"`
	CustomerName        string           `json:"customer_name"`
	Address             string           `json:"address"`
	CustomerPhoneNumber string           `json:"customer_phone_number"`
	DeliveryCharge      float64          `json:"delivery_charge"`
	DeliveryDriverID    *uint            `json:"delivery_driver_id"`
	CreditUserID        *uint            `json:"credit_user_id"`
	KitchenNote         string           `json:"kitchen_note"`
}

type UpdateOrderInput struct {
	Items               []OrderItemInput `json:"items"`
	OrderType           *string          `json:"order_type" binding:"omitempty,oneof=takeaway dining delivery"`
	PaymentMethod       *string          `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank credit"`
	CustomerName        *string          `json:"customer_name"`
	Address             *string          `json:"address"`
	CustomerPhoneNumber *string          `json:"customer_phone_number"`
	DeliveryCharge      *float64         `json:"delivery_charge"`
	KitchenNote         *string          `json:"kitchen_note"`
}

// computeOrderTotal re-sums every item currently attached to the order
// at the dish's current price, plus the delivery charge when set. Unit
// prices are not snapshotted at order time.
func computeOrderTotal(tx *gorm.DB, order *models.Order) (float64, error) {
	var items []models.OrderItem
	if err := tx.Preload("Dish").Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Dish.Price
	}
	if order.DeliveryCharge != 0 {
		total += order.DeliveryCharge
	}
	return total, nil
}

// CreateOrder creates the order with its items, computes the total,
// auto-creates the delivery order for delivery-type orders and records
// a notification.
func (s *OrderService) CreateOrder(userID uint, input CreateOrderInput) (*models.Order, error) {
	order := models.Order{
		UserID:              userID,
		Status:              models.OrderStatusPending,
		OrderType:           models.OrderTypeDining,
		PaymentMethod:       models.PaymentMethodCash,
		CustomerName:        input.CustomerName,
		Address:             input.Address,
		CustomerPhoneNumber: input.CustomerPhoneNumber,
		DeliveryCharge:      input.DeliveryCharge,
		DeliveryDriverID:    input.DeliveryDriverID,
		CreditUserID:        input.CreditUserID,
		KitchenNote:         input.KitchenNote,
	}
	if input.Status != "" {
		order.Status = input.Status
	}
	if input.OrderType != "" {
		order.OrderType = input.OrderType
	}
	if input.PaymentMethod != "" {
		order.PaymentMethod = input.PaymentMethod
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			var dish models.Dish
			if err := tx.First(&dish, item.DishID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDishNotFound
				}
				return err
			}
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				DishID:   dish.ID,
				Quantity: item.Quantity,
				Variants: item.Variants,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		total, err := computeOrderTotal(tx, &order)
		if err != nil {
			return err
		}
		order.TotalAmount = total
		// Invoice number is derived from the id, so it can only be
		// assigned after the first insert.
		order.InvoiceNumber = fmt.Sprintf("%04d", order.ID)
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.OrderType == models.OrderTypeDelivery {
			deliveryOrder := models.DeliveryOrder{
				OrderID: order.ID,
				Status:  models.DeliveryStatusPending,
			}
			if order.DeliveryDriverID != nil {
				var driver models.DeliveryDriver
				if err := tx.First(&driver, *order.DeliveryDriverID).Error; err == nil {
					deliveryOrder.DriverID = &driver.ID
				}
			}
			if err := tx.Create(&deliveryOrder).Error; err != nil {
				return err
			}
		}

		notification := models.Notification{
			Message: fmt.Sprintf("New order created: Order #%d with a total amount of $%.2f", order.ID, order.TotalAmount),
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items.Dish").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies field changes, appends any new items flagged as
// newly added and recomputes the total over all attached items.
func (s *OrderService) UpdateOrder(orderID uint, input UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if input.OrderType != nil {
		order.OrderType = *input.OrderType
	}
	if input.PaymentMethod != nil {
		order.PaymentMethod = *input.PaymentMethod
	}
	if input.CustomerName != nil {
		order.CustomerName = *input.CustomerName
	}
	if input.Address != nil {
		order.Address = *input.Address
	}
	if input.CustomerPhoneNumber != nil {
		order.CustomerPhoneNumber = *input.CustomerPhoneNumber
	}
	if input.DeliveryCharge != nil {
		order.DeliveryCharge = *input.DeliveryCharge
	}
	if input.KitchenNote != nil {
		order.KitchenNote = *input.KitchenNote
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Items {
			var dish models.Dish
			if err := tx.First(&dish, item.DishID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDishNotFound
				}
				return err
			}
			orderItem := models.OrderItem{
				OrderID:      order.ID,
				DishID:       dish.ID,
				Quantity:     item.Quantity,
				IsNewlyAdded: true,
				Variants:     item.Variants,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		total, err := computeOrderTotal(tx, &order)
		if err != nil {
			return err
		}
		order.TotalAmount = total
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items.Dish").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderStatusInput struct {
	Status        string   `json:"status" binding:"required"`
	PaymentMethod string   `json:"payment_method" binding:"omitempty,oneof=cash bank cash-bank credit"`
	CashAmount    *float64 `json:"cash_amount"`
	BankAmount    *float64 `json:"bank_amount"`
	CreditUserID  *uint    `json:"credit_user_id"`
}

// UpdateStatus validates and applies a status transition. Setting the
// status to "delivered" locks in the payment allocation: cash and bank
// amounts are taken or forced per payment method, and a credit payment
// links the order to an active credit account and raises its due
// balance. The cash-bank split is stored as given; it is not checked
// against the order total.
func (s *OrderService) UpdateStatus(orderID uint, input OrderStatusInput) (*models.Order, error) {
	if !models.ValidOrderStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order.Status = input.Status
		if input.Status != models.OrderStatusDelivered {
			return tx.Save(&order).Error
		}

		if input.PaymentMethod == "" {
			return ErrPaymentMethodRequired
		}
		order.PaymentMethod = input.PaymentMethod

		switch input.PaymentMethod {
		case models.PaymentMethodCash:
			order.CashAmount = amountOrZero(input.CashAmount)
			order.BankAmount = 0
		case models.PaymentMethodBank:
			order.BankAmount = amountOrZero(input.BankAmount)
			order.CashAmount = 0
		case models.PaymentMethodCashBank:
			order.CashAmount = amountOrZero(input.CashAmount)
			order.BankAmount = amountOrZero(input.BankAmount)
		case models.PaymentMethodCredit:
			creditUserID := input.CreditUserID
			if creditUserID == nil {
				creditUserID = order.CreditUserID
			}
			if creditUserID == nil {
				return ErrCreditUserRequired
			}

			var creditUser models.CreditUser
			if err := tx.First(&creditUser, *creditUserID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCreditUserInvalid
				}
				return err
			}
			if !creditUser.IsActive {
				return ErrCreditUserInactive
			}

			order.CreditUserID = creditUserID
			order.CashAmount = 0
			order.BankAmount = 0
			if err := tx.Save(&order).Error; err != nil {
				return err
			}

			// get-or-create keeps repeated finalizations from linking
			// the order twice
			var creditOrder models.CreditOrder
			err := tx.Where("order_id = ?", order.ID).First(&creditOrder).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				creditOrder = models.CreditOrder{OrderID: order.ID, CreditUserID: creditUser.ID}
				if err := tx.Create(&creditOrder).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			creditUser.TotalDue += order.TotalAmount
			return tx.Save(&creditUser).Error
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder rejects cancellation of delivered orders.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, ErrOrderDelivered
	}
	order.Status = models.OrderStatusCancelled
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderTypeChangeInput struct {
	OrderType           string   `json:"order_type" binding:"required,oneof=takeaway dining delivery"`
	CustomerName        *string  `json:"customer_name"`
	Address             *string  `json:"address"`
	CustomerPhoneNumber *string  `json:"customer_phone_number"`
	DeliveryCharge      *float64 `json:"delivery_charge"`
	DeliveryDriverID    *uint    `json:"delivery_driver_id"`
	DeliveryOrderStatus string   `json:"delivery_order_status" binding:"omitempty,oneof=pending accepted in_progress delivered cancelled"`
}

// ChangeOrderType switches the order type, get-or-creating the delivery
// order when the order becomes a delivery. A caller-supplied delivery
// status goes through the same transition function as the delivery
// status-update endpoint, so the driver availability coupling applies
// on both paths.
func (s *OrderService) ChangeOrderType(orderID uint, input OrderTypeChangeInput) (*models.Order, *models.DeliveryOrder, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		return nil, nil, err
	}

	if input.OrderType == models.OrderTypeDelivery {
		name := order.CustomerName
		if input.CustomerName != nil {
			name = *input.CustomerName
		}
		address := order.Address
		if input.Address != nil {
			address = *input.Address
		}
		phone := order.CustomerPhoneNumber
		if input.CustomerPhoneNumber != nil {
			phone = *input.CustomerPhoneNumber
		}
		driverID := order.DeliveryDriverID
		if input.DeliveryDriverID != nil {
			driverID = input.DeliveryDriverID
		}
		if name == "" || address == "" || phone == "" || driverID == nil {
			return nil, nil, ErrDeliveryDetailsRequired
		}
	}

	var deliveryOrder *models.DeliveryOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order.OrderType = input.OrderType
		if input.CustomerName != nil {
			order.CustomerName = *input.CustomerName
		}
		if input.Address != nil {
			order.Address = *input.Address
		}
		if input.CustomerPhoneNumber != nil {
			order.CustomerPhoneNumber = *input.CustomerPhoneNumber
		}
		if input.DeliveryCharge != nil {
			order.DeliveryCharge = *input.DeliveryCharge
		}
		if input.DeliveryDriverID != nil {
			order.DeliveryDriverID = input.DeliveryDriverID
		}

		total, err := computeOrderTotal(tx, &order)
		if err != nil {
			return err
		}
		order.TotalAmount = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.OrderType != models.OrderTypeDelivery {
			return nil
		}

		var existing models.DeliveryOrder
		err = tx.Where("order_id = ?", order.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			existing = models.DeliveryOrder{OrderID: order.ID, Status: models.DeliveryStatusPending}
			if err := tx.Create(&existing).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if order.DeliveryDriverID != nil {
			existing.DriverID = order.DeliveryDriverID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}

		status := input.DeliveryOrderStatus
		if status == "" {
			status = models.DeliveryStatusPending
		}
		if err := applyDeliveryStatus(tx, &existing, status); err != nil {
			return err
		}
		deliveryOrder = &existing
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, deliveryOrder, nil
}

func amountOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
