package domain

import "time"

type EventKind string

const (
	EventLineAdded     EventKind = "line_added"
	EventLineAdjusted  EventKind = "line_adjusted"
	EventLineRemoved   EventKind = "line_removed"
	EventCartRefreshed EventKind = "cart_refreshed"
)

// CartEvent records the outcome of one cart operation, recovery included.
type CartEvent struct {
	ID           string    `json:"id"`
	Kind         EventKind `json:"kind"`
	OrderCode    string    `json:"orderCode,omitempty"`
	LineID       string    `json:"lineId,omitempty"`
	VariantID    string    `json:"variantId,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	Attempts     int       `json:"attempts"`
	Unwound      bool      `json:"unwound"`
	SessionReset bool      `json:"sessionReset"`
	OK           bool      `json:"ok"`
	ErrorCode    string    `json:"errorCode,omitempty"`
	At           time.Time `json:"at"`
}
