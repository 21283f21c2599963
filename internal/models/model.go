package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest and is
// never serialized.
type User struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Listing is an auction item offered by one user
type Listing struct {
	ListingID     string    `json:"listing_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"starting_price"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bid records one user's offer on a listing. Bids are immutable once placed;
// their order within a listing is insertion order.
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
