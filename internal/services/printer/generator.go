package printer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/skip2/go-qrcode"
)

// A4 layout constants, in mm.
const (
	pageWidth = 210.0
	leftX     = 15.0
	rightX    = 195.0
)

// GenerateOrderPDF renders a one-page financial document for an order.
// Invoice and receipt share the layout and differ only by title. Payments
// are optional: when present, paid and balance lines are added under the
// grand total. Pure presentation: all amounts come in precomputed rows.
func GenerateOrderPDF(order *models.Order, items []models.OrderItem, customer *models.Customer, payments []models.Payment, profile *models.CompanyProfile, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftX, 15, pageWidth-rightX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawCompanyBlock(pdf, profile)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(leftX, 40)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s #%s", title, order.OrderCode), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	drawKeyValue(pdf, 52, "Date", time.Now().UTC().Format("2006-01-02"))
	drawKeyValue(pdf, 58, "Customer", customer.Name)
	y := 64.0
	if customer.Phone != "" {
		drawKeyValue(pdf, y, "Phone", customer.Phone)
		y += 6
	}
	if customer.Address != "" {
		pdf.SetXY(leftX, y)
		pdf.CellFormat(0, 5, truncate("Address: "+customer.Address, 90), "", 1, "L", false, 0, "")
		y += 6
	}

	// QR carrying the order code, for payment reference at the counter
	if qr, err := qrcode.Encode(order.OrderCode, qrcode.Low, 256); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("order_qr", opts, bytes.NewReader(qr))
		pdf.ImageOptions("order_qr", rightX-24, 40, 24, 24, false, opts, 0, "")
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(leftX, y)
	pdf.CellFormat(100, 6, "Item", "", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Qty", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Unit", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, "Total", "", 1, "R", false, 0, "")
	pdf.Line(leftX, pdf.GetY(), rightX, pdf.GetY())

	pdf.SetFont("Helvetica", "", 10)
	var total float64
	for _, it := range items {
		lineTotal := float64(it.Qty) * it.UnitPrice
		total += lineTotal
		pdf.SetX(leftX)
		pdf.CellFormat(100, 6, truncate(it.Name, 60), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Qty), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", lineTotal), "", 1, "R", false, 0, "")
	}

	pdf.Line(rightX-60, pdf.GetY()+1, rightX, pdf.GetY()+1)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(leftX)
	pdf.CellFormat(150, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", total), "", 1, "R", false, 0, "")

	if len(payments) > 0 {
		var paid float64
		for _, p := range payments {
			paid += p.Amount
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(leftX)
		pdf.CellFormat(150, 6, "Paid", "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", paid), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetX(leftX)
		pdf.CellFormat(150, 7, "Balance", "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", total-paid), "", 1, "R", false, 0, "")
	}

	drawFooter(pdf, profile)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCompanyBlock(pdf *gofpdf.Fpdf, profile *models.CompanyProfile) {
	if profile == nil {
		return
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(leftX, 15)
	pdf.CellFormat(0, 7, profile.CompanyName, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	lines := []string{}
	if profile.RegistrationNo != "" {
		lines = append(lines, "Reg: "+profile.RegistrationNo)
	}
	if profile.Address != "" {
		lines = append(lines, profile.Address)
	}
	if profile.Phone != "" {
		lines = append(lines, "Phone: "+profile.Phone)
	}
	if profile.Email != "" {
		lines = append(lines, "Email: "+profile.Email)
	}
	for _, line := range lines {
		pdf.SetX(leftX)
		pdf.CellFormat(0, 4.5, truncate(line, 90), "", 1, "R", false, 0, "")
	}
}

func drawFooter(pdf *gofpdf.Fpdf, profile *models.CompanyProfile) {
	if profile == nil {
		return
	}

	pdf.SetFont("Helvetica", "", 9)
	y := 270.0
	if profile.BankName != "" || profile.BankAccountNo != "" {
		pdf.SetXY(leftX, y)
		bank := fmt.Sprintf("Bank: %s  Acc: %s  Name: %s",
			profile.BankName, profile.BankAccountNo, profile.BankAccountName)
		pdf.CellFormat(0, 5, truncate(bank, 100), "", 1, "L", false, 0, "")
		y += 5
	}
	if profile.FooterNote != "" {
		pdf.SetXY(leftX, y)
		pdf.CellFormat(0, 5, truncate(profile.FooterNote, 100), "", 1, "L", false, 0, "")
	}
}

func drawKeyValue(pdf *gofpdf.Fpdf, y float64, key, value string) {
	pdf.SetXY(leftX, y)
	pdf.CellFormat(0, 5, key+":", "", 0, "L", false, 0, "")
	pdf.SetXY(leftX, y)
	pdf.CellFormat(rightX-leftX, 5, value, "", 1, "R", false, 0, "")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
