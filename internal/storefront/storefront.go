// Package storefront holds the tenant-facing view logic: host normalization,
// the fallback shop identity served when no tenant claims a domain, and the
// grouping of a shop's catalog into renderable sections.
package storefront

import (
	"strings"

	"github.com/google/uuid"

	"dukaan/internal/models"
)

// Fallback identity served when no active shop claims the requested host.
const (
	DefaultShopName     = "Dheeru Bhai Juice"
	DefaultTagline      = "Fresh • Hygienic • Delivered Fast"
	DefaultDeliveryNote = "Delivery: 4–5 km, minimum order ₹200"
	DefaultBusinessNote = "Corporate orders, school events, weekly subscriptions available."
	DefaultPrimary      = "#1d1d59"
	DefaultAccent       = "#ff9c1b"
	DefaultBusinessType = "juice"

	DefaultMessageTemplate = "{shop} Order\n{items}\nTotal: {total}\nPayment: COD\n{delivery_note}\nCustomer: {name}\nPhone: {phone}\nAddress: {address}"
)

// DefaultServices is the service list shown when a shop has none configured.
var DefaultServices = []string{"Catering Packs", "Subscriptions", "Corporate Orders"}

// NormalizeHost lowercases the host, drops any port, and strips a single
// leading "www." so that www.example.com and example.com resolve to the same
// tenant.
func NormalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(h, ":"); i != -1 && !strings.Contains(h[i+1:], "]") {
		h = h[:i]
	}
	h = strings.TrimSuffix(h, ".")
	h = strings.TrimPrefix(h, "www.")
	return h
}

// View is the resolved storefront identity: every field a page needs, with
// shop values where set and fallbacks everywhere else. ShopID is uuid.Nil
// when no tenant matched, which disables persistence downstream.
type View struct {
	ShopID          uuid.UUID       `json:"shop_id,omitempty"`
	Name            string          `json:"name"`
	Tagline         string          `json:"tagline"`
	DeliveryNote    string          `json:"delivery_note"`
	BusinessNote    string          `json:"business_note"`
	Services        []string        `json:"services"`
	WhatsAppNumber  string          `json:"whatsapp_number"`
	MessageTemplate string          `json:"message_template"`
	Branding        models.Branding `json:"branding"`
	Address         string          `json:"address,omitempty"`
	BannerText      string          `json:"banner_text,omitempty"`
	BusinessHours   string          `json:"business_hours,omitempty"`
	BusinessType    string          `json:"business_type"`
}

// DefaultView is the storefront served for unclaimed hosts.
func DefaultView(defaultWhatsApp string) View {
	return View{
		Name:            DefaultShopName,
		Tagline:         DefaultTagline,
		DeliveryNote:    DefaultDeliveryNote,
		BusinessNote:    DefaultBusinessNote,
		Services:        DefaultServices,
		WhatsAppNumber:  defaultWhatsApp,
		MessageTemplate: DefaultMessageTemplate,
		Branding:        models.Branding{Primary: DefaultPrimary, Accent: DefaultAccent},
		BusinessType:    DefaultBusinessType,
	}
}

// Resolve overlays a shop's configured fields on the defaults. Empty shop
// fields keep the fallback value, matching how the public pages treat a
// partially configured tenant.
func Resolve(shop *models.Shop, defaultWhatsApp string) View {
	v := DefaultView(defaultWhatsApp)
	if shop == nil {
		return v
	}
	v.ShopID = shop.ID
	if shop.Name != "" {
		v.Name = shop.Name
	}
	if s := deref(shop.Tagline); s != "" {
		v.Tagline = s
	}
	if s := deref(shop.DeliveryNote); s != "" {
		v.DeliveryNote = s
	}
	if s := deref(shop.BusinessNote); s != "" {
		v.BusinessNote = s
	}
	if len(shop.Services) > 0 {
		v.Services = shop.Services
	}
	if s := deref(shop.WhatsAppNumber); s != "" {
		v.WhatsAppNumber = s
	}
	if s := deref(shop.MessageTemplate); s != "" {
		v.MessageTemplate = s
	}
	if shop.Branding.Primary != "" {
		v.Branding.Primary = shop.Branding.Primary
	}
	if shop.Branding.Accent != "" {
		v.Branding.Accent = shop.Branding.Accent
	}
	v.Address = deref(shop.Address)
	v.BannerText = deref(shop.BannerText)
	v.BusinessHours = deref(shop.BusinessHours)
	if models.ValidBusinessTypes[shop.BusinessType] {
		v.BusinessType = shop.BusinessType
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Section is one renderable catalog block: a category and its products, in
// catalog order.
type Section struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// GroupCatalog splits the catalog into per-category sections plus the
// products that belong to no category. Category and product order is
// preserved from the input, which the storage layer sorts by name.
func GroupCatalog(catalog *models.CatalogData) (sections []Section, uncategorized []models.Product) {
	if catalog == nil {
		return nil, nil
	}
	byCategory := make(map[uuid.UUID][]models.Product)
	for _, p := range catalog.Products {
		if p.CategoryID == nil {
			uncategorized = append(uncategorized, p)
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], p)
	}
	known := make(map[uuid.UUID]bool, len(catalog.Categories))
	for _, c := range catalog.Categories {
		known[c.ID] = true
		sections = append(sections, Section{Category: c, Products: byCategory[c.ID]})
	}
	// Products pointing at a category the catalog no longer lists fall back
	// to the uncategorized block rather than disappearing.
	for _, p := range catalog.Products {
		if p.CategoryID != nil && !known[*p.CategoryID] {
			uncategorized = append(uncategorized, p)
		}
	}
	return sections, uncategorized
}
