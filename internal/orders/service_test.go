package orders

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kimphuquy/silvershop/internal/models"
	"gorm.io/datatypes"
)

func TestGenerateOrderID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateOrderID()
		if !strings.HasPrefix(id, "NL") {
			t.Fatalf("Order id missing NL prefix: %s", id)
		}
		if id != strings.ToUpper(id) {
			t.Errorf("Order id not uppercase: %s", id)
		}
		if len(id) < 10 {
			t.Errorf("Order id too short: %s", id)
		}
		if seen[id] {
			t.Fatalf("Duplicate order id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestSubtotalOf(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Bạc miếng Phú Quý 1kg", SellPrice: 19000000, Quantity: 2},
		{Name: "Bạc thỏi Phú Quý 1 lượng", SellPrice: 1503000, Quantity: 3},
	}

	got, err := subtotalOf(items)
	if err != nil {
		t.Fatalf("subtotalOf failed: %v", err)
	}
	if want := int64(2*19000000 + 3*1503000); got != want {
		t.Errorf("subtotalOf = %d, want %d", got, want)
	}

	if _, err := subtotalOf([]models.OrderItem{{Name: "x", SellPrice: 100, Quantity: 0}}); err == nil {
		t.Error("Zero quantity must be rejected")
	}
	if _, err := subtotalOf([]models.OrderItem{{Name: "x", SellPrice: 100, Quantity: -1}}); err == nil {
		t.Error("Negative quantity must be rejected")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusConfirmed, models.OrderStatusProcessing, true},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{models.OrderStatus("bogus"), models.OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCompletionUpdates(t *testing.T) {
	customer := models.CustomerInfo{
		FullName:    "Nguyễn Văn A",
		PhoneNumber: "0901234567",
		Email:       "a@example.com",
		Address:     "123 Phạm Văn Thuận",
		Notes:       "Nhận hàng buổi chiều",
	}
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	updates, err := completionUpdates(customer, now)
	if err != nil {
		t.Fatalf("completionUpdates failed: %v", err)
	}

	if updates["status"] != models.OrderStatusConfirmed {
		t.Errorf("Completion must move the order to confirmed, got %v", updates["status"])
	}
	stamped, ok := updates["completed_at"].(*time.Time)
	if !ok || stamped == nil || !stamped.Equal(now) {
		t.Errorf("Wrong completion timestamp: %v", updates["completed_at"])
	}

	raw, ok := updates["completed_customer_info"].(datatypes.JSON)
	if !ok {
		t.Fatalf("Completion info has wrong type: %T", updates["completed_customer_info"])
	}
	var decoded models.CustomerInfo
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Completion info does not decode: %v", err)
	}
	if decoded.FullName != customer.FullName || decoded.Notes != customer.Notes {
		t.Errorf("Completion info lost fields: %+v", decoded)
	}
}

func TestCompletionOf(t *testing.T) {
	order := &models.Order{ID: "NLTEST01"}

	if _, ok, err := CompletionOf(order); ok || err != nil {
		t.Errorf("Uncompleted order must report no completion info, got ok=%v err=%v", ok, err)
	}
	if IsCompleted(order) {
		t.Error("Order without a completion timestamp must not be completed")
	}

	customer := models.CustomerInfo{FullName: "Trần Thị Bích", PhoneNumber: "0912345678"}
	updates, err := completionUpdates(customer, time.Now().UTC())
	if err != nil {
		t.Fatalf("completionUpdates failed: %v", err)
	}
	order.CompletedCustomerInfo = updates["completed_customer_info"].(datatypes.JSON)
	order.CompletedAt = updates["completed_at"].(*time.Time)

	decoded, ok, err := CompletionOf(order)
	if err != nil || !ok {
		t.Fatalf("CompletionOf failed: ok=%v err=%v", ok, err)
	}
	if decoded.FullName != customer.FullName {
		t.Errorf("Wrong completion contact: %+v", decoded)
	}
	if !IsCompleted(order) {
		t.Error("Order with a completion timestamp must be completed")
	}
}

func TestOrderPayloadRoundTrip(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Name: "Bạc miếng Phú Quý 1kg", Code: "PQ01", SellPrice: 19000000, Quantity: 1},
	}
	customer := models.CustomerInfo{
		FullName:    "Nguyễn Văn A",
		PhoneNumber: "0901234567",
		Address:     "123 Phạm Văn Thuận",
		Province:    "Đồng Nai",
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("Marshal items: %v", err)
	}
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		t.Fatalf("Marshal customer: %v", err)
	}
	order := &models.Order{ID: "NLTEST01", Items: itemsJSON, CustomerInfo: customerJSON}

	gotItems, err := ItemsOf(order)
	if err != nil {
		t.Fatalf("ItemsOf failed: %v", err)
	}
	if len(gotItems) != 1 || gotItems[0].Code != "PQ01" {
		t.Errorf("Wrong decoded items: %+v", gotItems)
	}

	gotCustomer, err := CustomerOf(order)
	if err != nil {
		t.Fatalf("CustomerOf failed: %v", err)
	}
	if gotCustomer.FullName != customer.FullName || gotCustomer.Province != customer.Province {
		t.Errorf("Wrong decoded customer: %+v", gotCustomer)
	}
}
