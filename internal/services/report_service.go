package services

import (
	"context"
	"errors"
	"time"

	"bloomora/internal/documents"
	"bloomora/internal/ledger"
	"bloomora/internal/repository"
)

var ErrNoReportData = errors.New("no orders in the selected date range")

type ReportService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
}

func NewReportService(orders repository.OrderRepository, customers repository.CustomerRepository) *ReportService {
	return &ReportService{orders: orders, customers: customers}
}

type ReportSummary struct {
	From  time.Time              `json:"from"`
	To    time.Time              `json:"to"`
	Stats ledger.Stats           `json:"stats"`
	Rows  []documents.SummaryRow `json:"rows"`
}

// Summary computes the date-ranged report: aggregate statistics plus the
// detailed order rows in chronological order with resolved customer names.
func (s *ReportService) Summary(ctx context.Context, from, to time.Time) (*ReportSummary, error) {
	orders, err := s.orders.FindAll()
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.FindAll()
	if err != nil {
		return nil, err
	}
	idx := ledger.CustomerIndex(customers)

	working := ledger.SortByOrderDateAsc(ledger.FilterByDateRange(orders, from, to))

	rows := make([]documents.SummaryRow, 0, len(working))
	for _, o := range working {
		rows = append(rows, documents.SummaryRow{
			OrderCode:    o.OrderCode,
			CustomerName: ledger.ResolveName(idx, o.CustomerID),
			DeliveryDate: o.DeliveryDate,
			Status:       o.Status,
			TotalValue:   o.TotalValue,
		})
	}

	return &ReportSummary{
		From:  from,
		To:    to,
		Stats: ledger.Aggregate(working),
		Rows:  rows,
	}, nil
}

// SummaryPDF renders the date-ranged report as a paginated PDF document.
func (s *ReportService) SummaryPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	summary, err := s.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(summary.Rows) == 0 {
		return nil, ErrNoReportData
	}
	return documents.RenderSummary(documents.SummaryData{
		From:        from,
		To:          to,
		Stats:       summary.Stats,
		Rows:        summary.Rows,
		GeneratedAt: time.Now(),
	})
}

// InvoicePDF renders the invoice document for a single order.
func (s *ReportService) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	data := documents.InvoiceData{
		Order:        *order,
		CustomerName: ledger.UnknownCustomer,
		AmountPaid:   ledger.AmountPaid(*order),
		BalanceDue:   ledger.BalanceDue(*order),
	}
	if customer, err := s.customers.FindByID(order.CustomerID); err == nil && customer != nil {
		data.CustomerName = customer.FullName
		data.CustomerPhone = customer.Phone
		data.CustomerAddress = customer.Address
	}

	return documents.RenderInvoice(data)
}
