package ledger

import (
	"sort"
	"strings"
	"time"

	"bloomora/internal/domain"
)

// UnknownCustomer is rendered when an order references a customer that is not
// (or not yet) present in the customer collection. The two collections load
// independently, so a dangling reference is tolerated rather than treated as
// an error.
const UnknownCustomer = "Unknown"

// UpcomingWindow caps the upcoming-deliveries projection.
const UpcomingWindow = 5

// AmountPaid returns the money already collected for an order.
//
//	Completed, Delivered  -> TotalValue
//	Advance Taken         -> AdvanceAmount (0 if absent)
//	COD                   -> 0
func AmountPaid(o domain.Order) float64 {
	switch o.Status {
	case domain.StatusCompleted, domain.StatusDelivered:
		return o.TotalValue
	case domain.StatusAdvanceTaken:
		return o.AdvanceAmount
	default:
		return 0
	}
}

// BalanceDue returns the money still to collect for an order.
func BalanceDue(o domain.Order) float64 {
	return o.TotalValue - AmountPaid(o)
}

type Stats struct {
	CODOrders          int     `json:"codOrders"`
	AdvanceTakenOrders int     `json:"advanceTakenOrders"`
	CompletedOrders    int     `json:"completedOrders"`
	DeliveredOrders    int     `json:"deliveredOrders"`
	TotalOrders        int     `json:"totalOrders"`
	TotalPayments      float64 `json:"totalPayments"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}

// Aggregate computes the dashboard statistics for a working set of orders.
// TotalPayments sums AmountPaid over the whole set. OutstandingBalance sums
// BalanceDue for COD and Advance Taken orders only; Completed and Delivered
// orders carry a zero balance and must not land in the pending bucket.
func Aggregate(orders []domain.Order) Stats {
	var s Stats
	s.TotalOrders = len(orders)
	for _, o := range orders {
		switch o.Status {
		case domain.StatusCOD:
			s.CODOrders++
			s.OutstandingBalance += BalanceDue(o)
		case domain.StatusAdvanceTaken:
			s.AdvanceTakenOrders++
			s.OutstandingBalance += BalanceDue(o)
		case domain.StatusCompleted:
			s.CompletedOrders++
		case domain.StatusDelivered:
			s.DeliveredOrders++
		}
		s.TotalPayments += AmountPaid(o)
	}
	return s
}

// FilterByDateRange keeps orders whose OrderDate falls inside [from, to],
// with to extended to the end of its calendar day. A zero from means no
// filtering; a zero to collapses the range to the from day.
func FilterByDateRange(orders []domain.Order, from, to time.Time) []domain.Order {
	if from.IsZero() {
		return orders
	}
	if to.IsZero() {
		to = from
	}
	end := EndOfDay(to)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.OrderDate.Before(from) && !o.OrderDate.After(end) {
			out = append(out, o)
		}
	}
	return out
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// UpcomingDeliveries returns orders not yet delivered whose delivery date is
// at or after now, soonest first, capped at limit.
func UpcomingDeliveries(orders []domain.Order, now time.Time, limit int) []domain.Order {
	out := make([]domain.Order, 0, limit)
	for _, o := range orders {
		if o.Status != domain.StatusDelivered && !o.DeliveryDate.Before(now) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DeliveryDate.Before(out[j].DeliveryDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortByOrderDateDesc orders a copy most-recent-first, the default
// presentation order everywhere except explicitly re-sorted sub-views.
func SortByOrderDateDesc(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}

// SortByOrderDateAsc orders a copy chronologically, used by the report view.
func SortByOrderDateAsc(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.Before(out[j].OrderDate)
	})
	return out
}

// CustomerIndex builds the id -> customer join map used to resolve names at
// render time.
func CustomerIndex(customers []domain.Customer) map[string]domain.Customer {
	idx := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		idx[c.ID] = c
	}
	return idx
}

// ResolveName looks a customer up by id, falling back to the Unknown
// sentinel for dangling references.
func ResolveName(idx map[string]domain.Customer, customerID string) string {
	if c, ok := idx[customerID]; ok {
		return c.FullName
	}
	return UnknownCustomer
}

// SearchOrders keeps orders whose code or resolved customer name contains q,
// case-insensitively. An empty query keeps everything.
func SearchOrders(orders []domain.Order, idx map[string]domain.Customer, q string) []domain.Order {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.OrderCode), q) ||
			strings.Contains(strings.ToLower(ResolveName(idx, o.CustomerID)), q) {
			out = append(out, o)
		}
	}
	return out
}

// SearchCustomers keeps customers whose name, phone or email contains q,
// case-insensitively.
func SearchCustomers(customers []domain.Customer, q string) []domain.Customer {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return customers
	}
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.FullName), q) ||
			strings.Contains(strings.ToLower(c.Phone), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}
