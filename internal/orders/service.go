// Package orders persists storefront orders and drives their status
// lifecycle.
package orders

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kimphuquy/silvershop/internal/database"
	"github.com/kimphuquy/silvershop/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an order id does not exist.
var ErrNotFound = fmt.Errorf("order not found")

// validTransitions maps an order status to the statuses it may move to.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

// canTransition reports whether the status lifecycle permits the move.
func canTransition(from, to models.OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Service owns order persistence.
type Service struct {
	db *database.DB
}

// NewService creates the order service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	Items          []models.OrderItem  `json:"items"`
	CustomerInfo   models.CustomerInfo `json:"customerInfo"`
	DeliveryMethod string              `json:"deliveryMethod"`
	PaymentMethod  string              `json:"paymentMethod"`
	Notes          string              `json:"notes"`
	CouponCode     string              `json:"couponCode"`
	ShippingFee    int64               `json:"shippingFee"`
	Discount       int64               `json:"discount"`
	StoreAddress   string              `json:"storeAddress"`
}

// Create validates the checkout payload, prices it and persists the order.
func (s *Service) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}
	if input.CustomerInfo.FullName == "" || input.CustomerInfo.PhoneNumber == "" {
		return nil, fmt.Errorf("customer name and phone number are required")
	}

	subtotal, err := subtotalOf(input.Items)
	if err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(input.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	customerJSON, err := json.Marshal(input.CustomerInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode customer info: %w", err)
	}

	order := &models.Order{
		ID:             GenerateOrderID(),
		Items:          itemsJSON,
		CustomerInfo:   customerJSON,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		Notes:          input.Notes,
		CouponCode:     input.CouponCode,
		Subtotal:       subtotal,
		ShippingFee:    input.ShippingFee,
		Discount:       input.Discount,
		Total:          subtotal + input.ShippingFee - input.Discount,
		Status:         models.OrderStatusPending,
		StoreAddress:   input.StoreAddress,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	log.Printf("📦 Order %s created: %d items, total %d VND", order.ID, len(input.Items), order.Total)
	return order, nil
}

// subtotalOf prices the order lines at their captured sell prices.
func subtotalOf(items []models.OrderItem) (int64, error) {
	var subtotal int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("item %q has invalid quantity %d", item.Name, item.Quantity)
		}
		subtotal += item.SellPrice * int64(item.Quantity)
	}
	return subtotal, nil
}

// List returns all orders, newest first.
func (s *Service) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns one order by id.
func (s *Service) Get(id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus moves an order to the given status, enforcing the lifecycle.
func (s *Service) UpdateStatus(id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s", id, order.Status, status)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.OrderStatusDelivered {
		now := time.Now().UTC()
		updates["completed_at"] = &now
		order.CompletedAt = &now
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	order.Status = status

	log.Printf("🔄 Order %s moved to %s", id, status)
	return order, nil
}

// Complete confirms an order at hand-off: status moves to confirmed, the
// completion time is stamped and the contact details verified at the counter
// are stored alongside the checkout ones. Completing again overwrites the
// previous hand-off record.
func (s *Service) Complete(id string, customer models.CustomerInfo) (*models.Order, error) {
	if customer.FullName == "" || customer.PhoneNumber == "" {
		return nil, fmt.Errorf("customer name and phone number are required")
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates, err := completionUpdates(customer, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to complete order %s: %w", id, err)
	}

	order.Status = updates["status"].(models.OrderStatus)
	order.CompletedAt = updates["completed_at"].(*time.Time)
	order.CompletedCustomerInfo = updates["completed_customer_info"].(datatypes.JSON)

	log.Printf("✅ Order %s completed by %s", id, customer.FullName)
	return order, nil
}

// completionUpdates builds the column assignments recorded when an order is
// handed off.
func completionUpdates(customer models.CustomerInfo, now time.Time) (map[string]interface{}, error) {
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completion customer info: %w", err)
	}
	return map[string]interface{}{
		"status":                  models.OrderStatusConfirmed,
		"completed_at":            &now,
		"completed_customer_info": datatypes.JSON(customerJSON),
	}, nil
}

// IsCompleted reports whether the order has been handed off.
func IsCompleted(order *models.Order) bool {
	return order.CompletedAt != nil
}

// Delete removes an order.
func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ItemsOf decodes the order's line items.
func ItemsOf(order *models.Order) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := json.Unmarshal(order.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %s: %w", order.ID, err)
	}
	return items, nil
}

// CompletionOf decodes the contact details recorded at hand-off. The boolean
// reports whether the order has one.
func CompletionOf(order *models.Order) (models.CustomerInfo, bool, error) {
	var customer models.CustomerInfo
	if len(order.CompletedCustomerInfo) == 0 {
		return customer, false, nil
	}
	if err := json.Unmarshal(order.CompletedCustomerInfo, &customer); err != nil {
		return customer, false, fmt.Errorf("failed to decode completion info of order %s: %w", order.ID, err)
	}
	return customer, true, nil
}

// CustomerOf decodes the order's customer info.
func CustomerOf(order *models.Order) (models.CustomerInfo, error) {
	var customer models.CustomerInfo
	if err := json.Unmarshal(order.CustomerInfo, &customer); err != nil {
		return customer, fmt.Errorf("failed to decode customer of order %s: %w", order.ID, err)
	}
	return customer, nil
}

// GenerateOrderID builds an order id: the NL prefix, a millisecond timestamp
// in base 36 and a short random tail, uppercased.
func GenerateOrderID() string {
	ts := strconv.FormatInt(time.Now().UTC().UnixMilli(), 36)
	tail := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return strings.ToUpper("NL" + ts + tail)
}
