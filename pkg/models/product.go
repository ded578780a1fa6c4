package models

// Product is a catalog item as served by the storefront API.
// The backend uses Mongo-style "_id" keys on the wire.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	Image    string  `json:"image"`
}
