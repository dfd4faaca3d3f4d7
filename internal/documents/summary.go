// Package documents renders the generated PDF artifacts: the date-ranged
// sales report and the single-order invoice. Layout mirrors the dashboard
// conventions: LKR amounts with two decimals, "Jan 2, 2006" dates.
package documents

import (
	"bytes"
	"fmt"
	"time"

	"bloomora/internal/domain"
	"bloomora/internal/ledger"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "Jan 2, 2006"

type SummaryRow struct {
	OrderCode    string             `json:"orderCode"`
	CustomerName string             `json:"customerName"`
	DeliveryDate time.Time          `json:"deliveryDate"`
	Status       domain.OrderStatus `json:"status"`
	TotalValue   float64            `json:"totalValue"`
}

type SummaryData struct {
	From        time.Time
	To          time.Time
	Stats       ledger.Stats
	Rows        []SummaryRow
	GeneratedAt time.Time
}

func money(v float64) string {
	return fmt.Sprintf("LKR %.2f", v)
}

// RenderSummary produces the paginated sales and order report.
func RenderSummary(data SummaryData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Sales & Order Report", "", 1, "C", false, 0, "")

	to := data.To
	if to.IsZero() {
		to = data.From
	}
	pdf.SetFont("Helvetica", "", 12)
	rangeLine := fmt.Sprintf("From: %s  To: %s", data.From.Format(dateLayout), to.Format(dateLayout))
	pdf.CellFormat(0, 8, rangeLine, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Summary", "", 1, "L", false, 0, "")

	summaryRows := []struct {
		label string
		value string
	}{
		{"Total Orders", fmt.Sprintf("%d", data.Stats.TotalOrders)},
		{"Total Revenue", money(data.Stats.TotalPayments)},
		{"Outstanding Balance", money(data.Stats.OutstandingBalance)},
		{"COD Orders", fmt.Sprintf("%d", data.Stats.CODOrders)},
		{"Advance Taken Orders", fmt.Sprintf("%d", data.Stats.AdvanceTakenOrders)},
		{"Completed Orders", fmt.Sprintf("%d", data.Stats.CompletedOrders)},
		{"Delivered Orders", fmt.Sprintf("%d", data.Stats.DeliveredOrders)},
	}
	for i, row := range summaryRows {
		fill := i%2 == 0
		pdf.SetFillColor(240, 240, 245)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, row.label, "", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row.value, "", 1, "L", fill, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Detailed Order List", "", 1, "L", false, 0, "")

	type col struct {
		header string
		width  float64
	}
	cols := []col{
		{"ID", 25},
		{"Customer", 55},
		{"Delivery Date", 35},
		{"Status", 35},
		{"Value (LKR)", 30},
	}

	writeHeader := func() {
		pdf.SetFillColor(105, 87, 227)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 10)
		for _, c := range cols {
			pdf.CellFormat(c.width, 8, c.header, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
	}

	writeHeader()
	_, pageHeight := pdf.GetPageSize()
	for _, row := range data.Rows {
		if pdf.GetY() > pageHeight-30 {
			pdf.AddPage()
			writeHeader()
		}
		pdf.CellFormat(cols[0].width, 7, row.OrderCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1].width, 7, row.CustomerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2].width, 7, row.DeliveryDate.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[3].width, 7, string(row.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cols[4].width, 7, fmt.Sprintf("%.2f", row.TotalValue), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(pageHeight - 15)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth/2-15, 6, fmt.Sprintf("Report generated on %s", data.GeneratedAt.Format("Jan 2, 2006 3:04 PM")), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Bloomora Order Management", "", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
