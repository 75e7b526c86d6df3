package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by staff
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Received by customer
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled
)

// OrderItem is one line of an order, a snapshot of the product at order time.
type OrderItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Weight    string `json:"weight"`
	SellPrice int64  `json:"sellPrice"`
	BuyPrice  int64  `json:"buyPrice"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"addedAt"`
}

// CustomerInfo is the delivery contact captured at checkout.
type CustomerInfo struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Ward        string `json:"ward"`
	District    string `json:"district"`
	Province    string `json:"province"`
	Notes       string `json:"notes,omitempty"`
}

// Order represents a placed storefront order. Payment is an offline hand-off,
// so no payment state beyond the chosen method is tracked here.
type Order struct {
	ID                    string         `gorm:"primaryKey" json:"id"` // e.g. "NLMB3K9XQ7F2A1"
	Items                 datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CustomerInfo          datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CompletedCustomerInfo datatypes.JSON `gorm:"type:jsonb" json:"-"` // contact confirmed at hand-off
	DeliveryMethod        string         `json:"deliveryMethod"`      // pickup | delivery
	PaymentMethod         string         `json:"paymentMethod"`       // bank_transfer | cash
	Notes                 string         `gorm:"type:text" json:"notes"`
	CouponCode            string         `json:"couponCode"`
	Subtotal              int64          `json:"subtotal"`
	ShippingFee           int64          `json:"shippingFee"`
	Discount              int64          `json:"discount"`
	Total                 int64          `json:"total"`
	Status                OrderStatus    `gorm:"default:pending;index" json:"status"`
	StoreAddress          string         `json:"storeAddress,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	CompletedAt           *time.Time     `json:"completedAt,omitempty"`
}

func (Order) TableName() string { return "orders" }
