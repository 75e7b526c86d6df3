// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/kimphuquy/silvershop/internal/models"
	"github.com/skip2/go-qrcode"
)

// Bank transfer details printed on invoices for unpaid orders.
const (
	bankName      = "Vietcombank"
	bankAccount   = "1031547693"
	bankHolder    = "KIM PHU QUY DONG NAI"
	shopName      = "Kim Phú Quý Đồng Nai"
	shopAddress   = "107-109 Phạm Văn Thuận, P. Tân Tiến, Biên Hòa, Đồng Nai"
	shopPhone     = "0933 244 567"
)

// GenerateOrderPDF renders an invoice for the given order.
func GenerateOrderPDF(order *models.Order, items []models.OrderItem, customer models.CustomerInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are latin-1; diacritics outside cp1252 degrade to their
	// base letters.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(shopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr(shopAddress), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("ĐT: "+shopPhone), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 7, tr("HÓA ĐƠN BÁN HÀNG"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s  -  %s", order.ID, order.CreatedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr("Khách hàng"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, tr(customer.FullName+"  -  "+customer.PhoneNumber), "", 1, "L", false, 0, "")
	address := customer.Address
	if customer.Ward != "" {
		address += ", " + customer.Ward
	}
	if customer.District != "" {
		address += ", " + customer.District
	}
	if customer.Province != "" {
		address += ", " + customer.Province
	}
	if order.DeliveryMethod == "pickup" {
		address = "Nhận tại cửa hàng: " + order.StoreAddress
	}
	pdf.CellFormat(0, 5, tr(address), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(75, 7, tr("Sản phẩm"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, tr("Mã"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(10, 7, "SL", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, tr("Đơn giá"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, tr("Thành tiền"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range items {
		lineTotal := item.SellPrice * int64(item.Quantity)
		pdf.CellFormat(75, 7, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, tr(FormatVND(item.SellPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(FormatVND(lineTotal)), "1", 1, "R", false, 0, "")
	}

	// Totals
	totalRow := func(label string, amount int64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 9)
		}
		pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(FormatVND(amount)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	totalRow("Tạm tính", order.Subtotal, false)
	if order.ShippingFee > 0 {
		totalRow("Phí vận chuyển", order.ShippingFee, false)
	}
	if order.Discount > 0 {
		totalRow("Giảm giá", -order.Discount, false)
	}
	totalRow("Tổng cộng", order.Total, true)
	pdf.Ln(6)

	// Bank transfer QR for unpaid transfer orders
	if order.PaymentMethod == "bank_transfer" && order.Status != models.OrderStatusDelivered {
		qrPng, err := qrcode.Encode(TransferContent(order), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to encode transfer QR: %w", err)
		}

		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("transfer_qr", imgOptions, bytes.NewReader(qrPng))

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, tr("Thanh toán chuyển khoản"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("%s - %s - %s", bankName, bankAccount, bankHolder), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr("Nội dung: ")+order.ID, "", 1, "L", false, 0, "")
		pdf.ImageOptions("transfer_qr", 15, pdf.GetY()+2, 35, 35, false, imgOptions, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// TransferContent builds the QR payload for a bank transfer: bank, account,
// amount and the order id as the memo.
func TransferContent(order *models.Order) string {
	return fmt.Sprintf("%s|%s|%s|%d|%s", bankName, bankAccount, bankHolder, order.Total, order.ID)
}

// FormatVND renders whole VND with dot thousand separators, "19.500.000đ".
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	s := string(out) + "đ"
	if negative {
		return "-" + s
	}
	return s
}
