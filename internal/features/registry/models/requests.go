package models

// GiftCreate is the payload for adding a gift to the registry.
type GiftCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Link1       string `json:"link1"`
	Link2       string `json:"link2"`
	Price1      *int   `json:"price1"`
	Price2      *int   `json:"price2"`
}

// GiftUpdate replaces a gift's descriptive fields. Claim state and images
// are untouched by this request.
type GiftUpdate struct {
	GiftID      *int   `json:"giftId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Link1       string `json:"link1"`
	Link2       string `json:"link2"`
	Price1      *int   `json:"price1"`
	Price2      *int   `json:"price2"`
}

// ClaimantInput is the contact information of a guest claiming a gift.
type ClaimantInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

// ClaimRequest claims a gift through the body-based route. GiftID is a
// pointer because 0 is a valid id.
type ClaimRequest struct {
	GiftID *int `json:"giftId" binding:"required"`
	ClaimantInput
}

// ReleaseRequest frees a claimed gift through the body-based route.
type ReleaseRequest struct {
	GiftID *int `json:"giftId" binding:"required"`
}

// UpdateImagesRequest replaces a gift's image list.
type UpdateImagesRequest struct {
	GiftID *int      `json:"giftId" binding:"required"`
	Images *[]string `json:"images" binding:"required"`
}
