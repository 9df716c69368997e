package models

// Product as returned by the shop backend in listing payloads. Delivery
// credentials are dispensed by the backend only after a paid order and are
// never present here.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	GameID      *int    `json:"game_id,omitempty"`
	AppID       *int    `json:"app_id,omitempty"`
}

type Game struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type App struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Dashboard is the aggregate returned by GET /api/dashboard. Absent
// sub-fields decode to empty collections so partial data never blocks
// rendering.
type Dashboard struct {
	Games       []Game    `json:"games"`
	Apps        []App     `json:"apps"`
	LastViewed  *Product  `json:"last_viewed"`
	AllProducts []Product `json:"all_products"`
}

// FindProduct locates a product by id across the dashboard collections.
func (d *Dashboard) FindProduct(id int) (*Product, bool) {
	for i := range d.AllProducts {
		if d.AllProducts[i].ID == id {
			return &d.AllProducts[i], true
		}
	}
	if d.LastViewed != nil && d.LastViewed.ID == id {
		return d.LastViewed, true
	}
	return nil, false
}

// ProductDraft carries the admin product-creation form fields.
type ProductDraft struct {
	Name         string
	Description  string
	Price        float64
	DeliveryData string
	GameID       *int
	AppID        *int
}

// GameDraft carries the admin game-creation form fields.
type GameDraft struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
