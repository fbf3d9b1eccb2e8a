// Package message renders the WhatsApp order text from a shop's template.
package message

import (
	"strconv"
	"strings"

	"dukaan/internal/cart"
)

// Blank stands in for customer fields the buyer left empty, leaving a gap the
// shop owner can fill in by hand.
const Blank = "__________"

// Order carries the values substituted into a template.
type Order struct {
	ShopName     string
	Items        []cart.LineItem
	Total        float64
	DeliveryNote string
	Name         string
	Phone        string
	Address      string
	OrderID      string
}

// FormatAmount renders a rupee amount without trailing zeros, so ₹80 stays
// "₹80" and ₹82.50 becomes "₹82.5".
func FormatAmount(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

// ItemsText renders one line per row: "<name> x<qty> = ₹<subtotal>".
func ItemsText(items []cart.LineItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Name+" x"+strconv.Itoa(item.Qty)+" = "+FormatAmount(item.Subtotal()))
	}
	return strings.Join(lines, "\n")
}

// Render substitutes the eight known placeholders into template. Unknown
// tokens pass through untouched, so a typo in a shop's template degrades to
// visible text instead of an error. Blank name, phone, and address render as
// Blank; a missing order id renders as the empty string.
func Render(template string, order Order) string {
	replacer := strings.NewReplacer(
		"{shop}", order.ShopName,
		"{items}", ItemsText(order.Items),
		"{total}", FormatAmount(order.Total),
		"{delivery_note}", order.DeliveryNote,
		"{name}", orBlank(order.Name),
		"{phone}", orBlank(order.Phone),
		"{address}", orBlank(order.Address),
		"{order_id}", order.OrderID,
	)
	return replacer.Replace(template)
}

func orBlank(s string) string {
	if s == "" {
		return Blank
	}
	return s
}
