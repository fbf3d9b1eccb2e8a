package models

// CatalogData is the cacheable unit of a shop's menu: its categories and
// active products, both already sorted by name.
type CatalogData struct {
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
}
