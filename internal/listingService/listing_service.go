package listing

import (
	"fmt"
	"strings"
	"time"

	"auction-site/internal/auctionerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	"auction-site/utils"
)

// NewListingInput is the enumerated input schema for creating a listing. The
// owner is never part of it; it is injected from the caller's identity.
type NewListingInput struct {
	Title         string
	Description   string
	StartingPrice float64
}

// Validate checks the input against the listing rules
func (in NewListingInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w - title is required", auctionerrors.ErrInvalidListing)
	}
	if in.StartingPrice <= 0 {
		return fmt.Errorf("%w - starting price must be positive", auctionerrors.ErrInvalidListing)
	}
	return nil
}

// ListingDetail joins a listing with its owner and bids for display
type ListingDetail struct {
	Listing  models.Listing
	Owner    models.User
	Bids     []models.Bid
	BidCount int
}

// ListingService handles the listing feed, creation and detail views
type ListingService struct {
	repo repository.AuctionDB
}

// NewListingService creates a new ListingService instance
func NewListingService(repo repository.AuctionDB) *ListingService {
	return &ListingService{
		repo: repo,
	}
}

// CreateListing validates the input and persists exactly one new listing
// owned by ownerID. On validation failure nothing is persisted.
func (s *ListingService) CreateListing(input NewListingInput, ownerID string) (models.Listing, error) {
	if ownerID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing owner", auctionerrors.ErrInvalidListing)
	}
	if err := input.Validate(); err != nil {
		return models.Listing{}, fmt.Errorf("service: %w", err)
	}

	listing := models.Listing{
		ListingID:     utils.GenerateID(),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		StartingPrice: input.StartingPrice,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateListing(listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for owner %s: %w", ownerID, err)
	}

	return listing, nil
}

// GetFeed returns every listing, unfiltered and unpaginated
func (s *ListingService) GetFeed() ([]models.Listing, error) {
	listings, err := s.repo.GetAllListings()
	if err != nil {
		return nil, fmt.Errorf("service: failed to load listings: %w", err)
	}
	return listings, nil
}

// GetListingDetail returns a listing together with its owner, bids and bid
// count. The count is always the cardinality of the bid list.
func (s *ListingService) GetListingDetail(listingID string) (ListingDetail, error) {
	if listingID == "" {
		return ListingDetail{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidListing)
	}

	listing, err := s.repo.GetListingByID(listingID)
	if err != nil {
		return ListingDetail{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return ListingDetail{}, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	owner, err := s.repo.GetUserByID(listing.OwnerID)
	if err != nil {
		return ListingDetail{}, fmt.Errorf("service: failed to get owner of listing %s: %w", listingID, err)
	}

	return ListingDetail{
		Listing:  listing,
		Owner:    owner,
		Bids:     bids,
		BidCount: len(bids),
	}, nil
}
