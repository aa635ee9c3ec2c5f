package domain

import "time"

// Review is a shopper's rating of a product, optionally with an image data URI.
type Review struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
