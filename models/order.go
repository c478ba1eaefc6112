package models

import "time"

// Order is the record written after a verified payment: a snapshot of the
// cart at checkout plus the customer's contact info. Orders are write-only
// and immutable once stored; fulfillment happens outside this system.
type Order struct {
	Reference string     `json:"reference"`
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
