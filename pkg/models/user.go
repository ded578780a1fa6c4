package models

// Address is a saved delivery address.
type Address struct {
	ID      string `json:"_id"`
	Address string `json:"address"`
}
