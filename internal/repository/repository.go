package repository

import (
	"fmt"
	"sync"

	"auction-site/internal/auctionerrors"
	model "auction-site/internal/models"
)

// AuctionDB defines the storage interface for the auction site
type AuctionDB interface {
	CreateUser(user model.User) error
	GetUserByUsername(username string) (model.User, error)
	GetUserByID(userID string) (model.User, error)
	CreateListing(listing model.Listing) error
	GetListingByID(listingID string) (model.Listing, error)
	GetAllListings() ([]model.Listing, error)
	RecordBidForListing(bid model.Bid) error
	GetBidsByListing(listingID string) ([]model.Bid, error)
	GetWinningBid(listingID string) (model.Bid, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu           sync.RWMutex
	users        map[string]model.User    // key: userID -> value: user
	usersByName  map[string]string        // key: username -> value: userID
	listings     map[string]model.Listing // key: listingID -> value: listing
	listingOrder []string                 // listingIDs in insertion order, for the feed
	bids         map[string][]model.Bid   // key: listingID -> value: bids in insertion order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[string]model.User),
		usersByName: make(map[string]string),
		listings:    make(map[string]model.Listing),
		bids:        make(map[string][]model.Bid),
	}
}

// CreateUser stores a new user. Username uniqueness is enforced atomically
// under the write lock, so of two concurrent registrations for the same
// username exactly one succeeds.
func (r *MemoryRepo) CreateUser(user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.usersByName[user.Username]; ok {
		return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
	}

	r.users[user.UserID] = user
	r.usersByName[user.Username] = user.UserID
	return nil
}

// GetUserByUsername returns the user with the given username
func (r *MemoryRepo) GetUserByUsername(username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.usersByName[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	return r.users[userID], nil
}

// GetUserByID returns the user with the given identifier
func (r *MemoryRepo) GetUserByID(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user by id %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(listing model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listings[listing.ListingID] = listing
	r.listingOrder = append(r.listingOrder, listing.ListingID)
	return nil
}

// GetListingByID returns the listing with the given identifier
func (r *MemoryRepo) GetListingByID(listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// GetAllListings returns every listing in insertion order
func (r *MemoryRepo) GetAllListings() ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]model.Listing, 0, len(r.listingOrder))
	for _, id := range r.listingOrder {
		listings = append(listings, r.listings[id])
	}
	return listings, nil
}

// RecordBidForListing records a user's bid on a listing
func (r *MemoryRepo) RecordBidForListing(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[bid.ListingID]; !ok {
		return fmt.Errorf("record bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}

	r.bids[bid.ListingID] = append(r.bids[bid.ListingID], bid)
	return nil
}

// GetBidsByListing returns all bids for a listing in insertion order. A
// listing with no bids yields an empty slice, so len(bids) is the bid count.
func (r *MemoryRepo) GetBidsByListing(listingID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return append([]model.Bid{}, r.bids[listingID]...), nil
}

// GetWinningBid returns the highest bid for a listing, earliest first on ties
func (r *MemoryRepo) GetWinningBid(listingID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[listingID]
	if !ok || len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, nil
}
