package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kimphuquy/silvershop/internal/models"
)

func TestFormatVND(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0đ"},
		{500, "500đ"},
		{1503000, "1.503.000đ"},
		{19500000, "19.500.000đ"},
		{-250000, "-250.000đ"},
	}

	for _, tc := range cases {
		if got := FormatVND(tc.in); got != tc.want {
			t.Errorf("FormatVND(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransferContentCarriesOrderID(t *testing.T) {
	order := &models.Order{ID: "NLTEST42", Total: 19500000}
	content := TransferContent(order)
	if !strings.Contains(content, "NLTEST42") {
		t.Errorf("Transfer content missing order id: %q", content)
	}
	if !strings.Contains(content, "19500000") {
		t.Errorf("Transfer content missing amount: %q", content)
	}
}

func TestGenerateOrderPDF(t *testing.T) {
	order := &models.Order{
		ID:             "NLTEST42",
		DeliveryMethod: "delivery",
		PaymentMethod:  "bank_transfer",
		Subtotal:       19000000,
		ShippingFee:    0,
		Total:          19000000,
		Status:         models.OrderStatusPending,
		CreatedAt:      time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
	items := []models.OrderItem{
		{ProductID: 1, Name: "Bạc miếng Phú Quý 1kg", Code: "PQ01", SellPrice: 19000000, Quantity: 1},
	}
	customer := models.CustomerInfo{
		FullName:    "Nguyễn Văn A",
		PhoneNumber: "0901234567",
		Address:     "123 Phạm Văn Thuận",
		Province:    "Đồng Nai",
	}

	pdfBytes, err := GenerateOrderPDF(order, items, customer)
	if err != nil {
		t.Fatalf("GenerateOrderPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("Output is not a PDF document")
	}
	if len(pdfBytes) < 1000 {
		t.Errorf("Suspiciously small PDF: %d bytes", len(pdfBytes))
	}
}
