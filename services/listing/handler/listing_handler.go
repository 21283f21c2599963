package handler

import (
	"errors"
	"net/http"

	"auction-site/internal/auctionerrors"
	listing "auction-site/internal/listingService"
	model "auction-site/internal/models"
	session "auction-site/internal/sessionService"
	"auction-site/services/listing/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

type ListingServiceInterface interface {
	CreateListing(input listing.NewListingInput, ownerID string) (model.Listing, error)
	GetFeed() ([]model.Listing, error)
	GetListingDetail(listingID string) (listing.ListingDetail, error)
}

type BiddingServiceInterface interface {
	PlaceBid(listingID, userID string, amount float64) (model.Bid, error)
}

type ListingHandler struct {
	listings ListingServiceInterface
	bids     BiddingServiceInterface
}

func NewListingHandler(listings ListingServiceInterface, bids BiddingServiceInterface) *ListingHandler {
	return &ListingHandler{listings: listings, bids: bids}
}

// FeedHandler handles GET /
func (h *ListingHandler) FeedHandler(c *gin.Context) {
	identity, ok := session.CurrentIdentity(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	listings, err := h.listings.GetFeed()
	if err != nil {
		utils.Error("FeedHandler: failed to load listings", map[string]any{"error": err.Error()})
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":     identity,
		"Listings": listings,
	})
}

// ShowNewListingHandler handles GET /listings/new
func (h *ListingHandler) ShowNewListingHandler(c *gin.Context) {
	identity, _ := session.CurrentIdentity(c)
	c.HTML(http.StatusOK, "new_listing.html", gin.H{
		"User": identity,
		"Form": helpers.PreservedListingForm{},
	})
}

// CreateListingHandler handles POST /listings/new. The owner always comes
// from the session identity, never from the form.
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	identity, ok := session.CurrentIdentity(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form helpers.NewListingForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "new_listing.html", gin.H{
			"User":    identity,
			"Form":    helpers.PreserveListingForm(c),
			"Message": helpers.MsgListingInvalid,
		})
		return
	}

	input := listing.NewListingInput{
		Title:         form.Title,
		Description:   form.Description,
		StartingPrice: form.StartingPrice,
	}

	created, err := h.listings.CreateListing(input, identity.UserID)
	if err != nil {
		utils.Warn("CreateListingHandler: failed to create listing", map[string]any{
			"owner_id": identity.UserID,
			"error":    err.Error(),
		})
		c.HTML(http.StatusOK, "new_listing.html", gin.H{
			"User":    identity,
			"Form":    helpers.PreserveListingForm(c),
			"Message": helpers.MsgListingInvalid,
		})
		return
	}

	helpers.LogSuccess("CreateListingHandler", "listing created", map[string]any{
		"listing_id": created.ListingID,
		"owner_id":   created.OwnerID,
		"title":      created.Title,
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// ViewListingHandler handles GET /listings/:listing_id
func (h *ListingHandler) ViewListingHandler(c *gin.Context) {
	h.renderListing(c, c.Param("listing_id"), "", http.StatusOK)
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *ListingHandler) PlaceBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	identity, ok := session.CurrentIdentity(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form helpers.BidForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderListing(c, listingID, helpers.MsgBidInvalid, http.StatusOK)
		return
	}

	bid, err := h.bids.PlaceBid(listingID, identity.UserID, form.Amount)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrListingNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
			return
		}
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"listing_id": listingID,
			"user_id":    identity.UserID,
			"error":      err.Error(),
		})
		h.renderListing(c, listingID, helpers.MapBidError(err), http.StatusOK)
		return
	}

	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount,
	})
	c.Redirect(http.StatusSeeOther, "/listings/"+listingID)
}

// renderListing fetches a listing's detail and renders the listing page with
// an optional message. Unknown listings render the not-found page.
func (h *ListingHandler) renderListing(c *gin.Context, listingID, message string, status int) {
	identity, ok := session.CurrentIdentity(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	detail, err := h.listings.GetListingDetail(listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrListingNotFound) {
			c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
			return
		}
		utils.Error("ViewListingHandler: failed to load listing", map[string]any{
			"listing_id": listingID,
			"error":      err.Error(),
		})
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(status, "listing.html", gin.H{
		"User":     identity,
		"Listing":  detail.Listing,
		"Owner":    detail.Owner,
		"Bids":     detail.Bids,
		"BidCount": detail.BidCount,
		"Message":  message,
	})
}
