// Package whatsapp builds the wa.me handoff links that carry a rendered
// order message to the shop's WhatsApp number.
package whatsapp

import (
	"net/url"
	"strings"
)

// DefaultNumber is used when a shop has no WhatsApp number configured.
const DefaultNumber = "917988237504"

func encode(s string) string {
	// Query-escape, but keep spaces as %20 so the text survives WhatsApp's
	// link parsing.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildLink returns a wa.me deep link carrying the message as prefilled
// text. An empty number falls back to DefaultNumber.
func BuildLink(number, msg string) string {
	if number == "" {
		number = DefaultNumber
	}
	return "https://wa.me/" + number + "?text=" + encode(msg)
}

// BuildQR returns a QR image URL encoding the wa.me link, for walk-in
// customers scanning from the printed storefront page.
func BuildQR(number, msg string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + encode(BuildLink(number, msg))
}
