// README: Session records cached for the kiosk UI between turns.
package session

import "errors"

// ErrNotFound is returned when a session has expired or never existed.
var ErrNotFound = errors.New("session not found")

// Turn mirrors one transcript entry as stored in the cache.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// CartItem mirrors one cached cart line.
type CartItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}
