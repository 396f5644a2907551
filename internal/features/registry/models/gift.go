package models

import "time"

// GiftStatus is the claim state of a gift.
type GiftStatus string

const (
	StatusAvailable GiftStatus = "available"
	StatusClaimed   GiftStatus = "claimed"
)

// Claimant records who reserved a gift.
type Claimant struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	ClaimedAt time.Time `json:"claimedAt"`
}

// Gift is one entry of the registry. The whole list is stored as a single
// document, so Gift carries no storage concerns of its own.
type Gift struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Link1       string     `json:"link1,omitempty"`
	Link2       string     `json:"link2,omitempty"`
	Price1      *int       `json:"price1,omitempty"`
	Price2      *int       `json:"price2,omitempty"`
	Images      []string   `json:"images"`
	Status      GiftStatus `json:"status"`
	ClaimedBy   *Claimant  `json:"claimedBy"`
}
