package models

// CartEntry is the backend's record of one product in a user's cart.
// The backend owns uniqueness of product ids within a cart; a quantity
// of 0 means the backend has dropped (or is about to drop) the entry.
type CartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// LineItem is a cart entry enriched with display and pricing fields
// from the catalog. Line items are always rebuilt wholesale from the
// backend's entry list, never patched in place.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Cost      float64 `json:"cost"`
	Rating    int     `json:"rating"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
