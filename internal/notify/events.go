package notify

import "time"

// CartEvent is one message on the backend's cart-event stream. Events
// carry no cart contents; the client re-fetches the authoritative
// entry list on every event instead of patching locally.
type CartEvent struct {
	Type      string    `json:"type"` // "cart.update" or "cart.checkout"
	ProductID string    `json:"productId,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}
