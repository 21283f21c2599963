package bidding

import (
	"errors"
	"fmt"
	"time"

	"auction-site/internal/auctionerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	"auction-site/utils"
)

// BiddingService defines the business logic for placing and reading bids
type BiddingService struct {
	repo repository.AuctionDB
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// PlaceBid validates and records a user's bid on a listing. A bid is accepted
// iff it meets the listing's starting price and exceeds the current highest
// bid; owners may not bid on their own listings.
func (s *BiddingService) PlaceBid(listingID, userID string, amount float64) (models.Bid, error) {
	if err := s.validateBid(listingID, userID, amount); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.RecordBidForListing(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid on listing %s by user %s: %w", listingID, userID, err)
	}

	return bid, nil
}

// validateBid checks input validity and business rules for bidding
func (s *BiddingService) validateBid(listingID, userID string, amount float64) error {
	if listingID == "" || userID == "" {
		return fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	listing, err := s.repo.GetListingByID(listingID)
	if err != nil {
		return fmt.Errorf("service: failed to check listing %s: %w", listingID, err)
	}
	if listing.OwnerID == userID {
		return fmt.Errorf("service: %w", auctionerrors.ErrOwnListingBid)
	}

	winningBid, err := s.repo.GetWinningBid(listingID)
	switch {
	case err == nil:
		if amount <= winningBid.Amount {
			return fmt.Errorf("service: %w - current highest bid is %.2f", auctionerrors.ErrBidTooLow, winningBid.Amount)
		}
	case errors.Is(err, auctionerrors.ErrNoBids):
		// first bid only has to meet the starting price
		if amount < listing.StartingPrice {
			return fmt.Errorf("service: %w - starting price is %.2f", auctionerrors.ErrBidTooLow, listing.StartingPrice)
		}
	default:
		return fmt.Errorf("service: failed to check winning bid: %w", err)
	}

	return nil
}

// GetBidsForListing returns all bids for a specific listing
func (s *BiddingService) GetBidsForListing(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	return bids, nil
}

// GetWinningBid returns the highest bid for a specific listing
func (s *BiddingService) GetWinningBid(listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	winningBid, err := s.repo.GetWinningBid(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}

	return winningBid, nil
}
