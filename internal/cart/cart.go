// Package cart implements the order page's selection model: quantities keyed
// by product id, priced against the live catalog at read time.
package cart

import (
	"github.com/google/uuid"

	"dukaan/internal/models"
)

// Selection maps product ids to chosen quantities. A zero Selection is ready
// to use via Adjust.
type Selection map[uuid.UUID]int

// LineItem is one priced row of the selection.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
}

// Subtotal is the row price times quantity.
func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Qty)
}

// Adjust changes a product's quantity by delta. Quantities clamp at zero and
// a zero quantity removes the entry entirely, so the selection only ever
// holds positive rows.
func (s Selection) Adjust(productID uuid.UUID, delta int) {
	qty := s[productID] + delta
	if qty <= 0 {
		delete(s, productID)
		return
	}
	s[productID] = qty
}

// Qty returns the selected quantity for a product, zero when absent.
func (s Selection) Qty(productID uuid.UUID) int {
	return s[productID]
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s) == 0
}

// LineItems prices the selection against the catalog. Rows come out in
// catalog order, and selected ids the catalog no longer carries are skipped,
// so a stale selection degrades to the products that still exist. Selections
// arriving over the wire bypass Adjust, so non-positive quantities are
// dropped here as well.
func (s Selection) LineItems(products []models.Product) []LineItem {
	items := make([]LineItem, 0, len(s))
	for _, p := range products {
		qty, ok := s[p.ID]
		if !ok || qty <= 0 {
			continue
		}
		items = append(items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       qty,
		})
	}
	return items
}

// Total sums the subtotals of the given rows.
func Total(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
