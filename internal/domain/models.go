package domain

import "encoding/json"

type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductApproved ProductStatus = "approved"
	ProductRejected ProductStatus = "rejected"
)

type Offer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Description   string  `json:"description"`
	CheckoutURL   string  `json:"checkoutUrl,omitempty"`
	IsDefault     bool    `json:"isDefault"`
}

type Product struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Category          string        `json:"category"`
	Price             float64       `json:"price"`
	OriginalPrice     float64       `json:"originalPrice"`
	SiteURL           string        `json:"siteUrl"`
	VideoURL          string        `json:"videoUrl"`
	EnableAffiliates  bool          `json:"enableAffiliates"`
	DefaultCommission float64       `json:"defaultCommission"`
	Image             *string       `json:"image"`
	Status            ProductStatus `json:"status"`
	UserID            string        `json:"userId"`
	CreatedBy         string        `json:"createdBy"`
	Offers            []Offer       `json:"offers"`
	Slug              string        `json:"slug"`
	PublicURL         string        `json:"publicUrl,omitempty"`
	CreatedAt         string        `json:"createdAt"`
	UpdatedAt         string        `json:"updatedAt"`
}

// DefaultOffer returns the offer flagged as default, or the first one.
func (p Product) DefaultOffer() (Offer, bool) {
	for _, o := range p.Offers {
		if o.IsDefault {
			return o, true
		}
	}
	if len(p.Offers) > 0 {
		return p.Offers[0], true
	}
	return Offer{}, false
}

func (p Product) Clone() Product {
	if p.Offers != nil {
		p.Offers = append([]Offer(nil), p.Offers...)
	}
	if p.Image != nil {
		img := *p.Image
		p.Image = &img
	}
	return p
}

// CheckoutConfig is the layout of a product's checkout page. Elements and
// Settings are produced by the page builder and stored as-is.
type CheckoutConfig struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"productId"`
	Elements       []json.RawMessage `json:"elements"`
	Settings       json.RawMessage   `json:"settings,omitempty"`
	PaymentMethods []string          `json:"paymentMethods"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

func (c CheckoutConfig) Clone() CheckoutConfig {
	if c.Elements != nil {
		c.Elements = append([]json.RawMessage(nil), c.Elements...)
	}
	if c.PaymentMethods != nil {
		c.PaymentMethods = append([]string(nil), c.PaymentMethods...)
	}
	return c
}

type TrackingSettings struct {
	FacebookPixelID    string `json:"facebookPixelId,omitempty"`
	GoogleAnalyticsID  string `json:"googleAnalyticsId,omitempty"`
	GoogleTagManagerID string `json:"googleTagManagerId,omitempty"`
	TikTokPixelID      string `json:"tiktokPixelId,omitempty"`
}

type OrderBump struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Enabled     bool    `json:"enabled"`
}

type Upsell struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	RedirectURL string  `json:"redirectUrl,omitempty"`
	Enabled     bool    `json:"enabled"`
}

type CheckoutBehavior struct {
	RequireCPF       bool `json:"requireCpf"`
	RequirePhone     bool `json:"requirePhone"`
	RequireAddress   bool `json:"requireAddress"`
	ShowCountdown    bool `json:"showCountdown"`
	CountdownMinutes int  `json:"countdownMinutes,omitempty"`
}

type ProductSettings struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"productId"`
	PaymentMethods []string         `json:"paymentMethods"`
	Tracking       TrackingSettings `json:"tracking"`
	OrderBumps     []OrderBump      `json:"orderBumps"`
	Upsells        []Upsell         `json:"upsells"`
	Checkout       CheckoutBehavior `json:"checkout"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
}

func (s ProductSettings) Clone() ProductSettings {
	if s.PaymentMethods != nil {
		s.PaymentMethods = append([]string(nil), s.PaymentMethods...)
	}
	if s.OrderBumps != nil {
		s.OrderBumps = append([]OrderBump(nil), s.OrderBumps...)
	}
	if s.Upsells != nil {
		s.Upsells = append([]Upsell(nil), s.Upsells...)
	}
	return s
}
