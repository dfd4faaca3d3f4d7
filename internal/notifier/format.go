package notifier

import (
	"fmt"
	"strings"

	"bloomora/internal/domain"
)

// Telegram's HTML parse mode accepts a small tag subset; everything user
// supplied is escaped before interpolation.
// https://core.telegram.org/bots/api#html-style

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return escapeHTML(s)
}

const messageDateLayout = "Jan 2, 2006"

func FormatCustomerMessage(evt domain.CustomerEvent) string {
	title := "✨ <b>New Customer Added</b> ✨"
	if evt.Action == domain.EventCustomerUpdated {
		title = "✏️ <b>Customer Details Updated</b> ✏️"
	}
	c := evt.Customer
	return fmt.Sprintf(`%s

<b>Name:</b> %s
<b>Phone:</b> %s
<b>Email:</b> %s
<b>Address:</b> %s
<b>Preferences:</b> %s
<b>Action By:</b> %s`,
		title,
		escapeHTML(c.FullName),
		escapeHTML(c.Phone),
		orNA(c.Email),
		escapeHTML(c.Address),
		orNA(c.Preferences),
		orNA(evt.Actor),
	)
}

func FormatOrderMessage(evt domain.OrderEvent) string {
	title := "🎉 <b>New Order Added</b> 🎉"
	if evt.Action == domain.EventOrderUpdated {
		title = "✏️ <b>Order Updated</b> ✏️"
	}
	o := evt.Order
	return fmt.Sprintf(`%s

<b>Order ID:</b> %s
<b>Customer:</b> %s
<b>Delivery Date:</b> %s
<b>Total Value:</b> LKR %.2f
<b>Status:</b> %s

<b>Products:</b>
%s

<b>Instructions:</b>
%s

<b>Action By:</b> %s`,
		title,
		escapeHTML(o.OrderCode),
		escapeHTML(evt.CustomerName),
		o.DeliveryDate.Format(messageDateLayout),
		o.TotalValue,
		escapeHTML(string(o.Status)),
		escapeHTML(o.Products),
		orNA(o.SpecialInstructions),
		orNA(evt.Actor),
	)
}
