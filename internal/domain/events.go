package domain

// Events published to the message bus after a successful write. The notifier
// consumes them asynchronously; nothing in the write path waits on delivery.

const (
	EventOrderCreated    = "order.created"
	EventOrderUpdated    = "order.updated"
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
)

type OrderEvent struct {
	Action       string `json:"action"`
	Order        Order  `json:"order"`
	CustomerName string `json:"customerName"`
	Actor        string `json:"actor"`
}

type CustomerEvent struct {
	Action   string   `json:"action"`
	Customer Customer `json:"customer"`
	Actor    string   `json:"actor"`
}
