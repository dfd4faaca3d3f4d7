package documents

import (
	"bytes"
	"fmt"

	"bloomora/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

type InvoiceData struct {
	Order           domain.Order
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	AmountPaid      float64
	BalanceDue      float64
}

// RenderInvoice produces the single-order invoice document.
func RenderInvoice(data InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order %s", data.Order.OrderCode), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 8, value, "", "L", false)
	}

	field("Customer", data.CustomerName)
	if data.CustomerPhone != "" {
		field("Phone", data.CustomerPhone)
	}
	if data.CustomerAddress != "" {
		field("Address", data.CustomerAddress)
	}
	field("Order Date", data.Order.OrderDate.Format(dateLayout))
	field("Delivery Date", data.Order.DeliveryDate.Format(dateLayout))
	field("Status", string(data.Order.Status))
	field("Products", data.Order.Products)
	if data.Order.SpecialInstructions != "" {
		field("Instructions", data.Order.SpecialInstructions)
	}
	pdf.Ln(6)

	amounts := []struct {
		label string
		value float64
	}{
		{"Total Value", data.Order.TotalValue},
		{"Amount Paid", data.AmountPaid},
		{"Balance Due", data.BalanceDue},
	}
	for _, a := range amounts {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 9, a.label, "T", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 9, money(a.value), "T", 1, "R", false, 0, "")
	}

	_, pageHeight := pdf.GetPageSize()
	pdf.SetY(pageHeight - 15)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Bloomora Order Management", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
