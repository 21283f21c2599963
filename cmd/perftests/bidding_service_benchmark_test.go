package perftests

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	bidding "auction-site/internal/biddingService"
	listing "auction-site/internal/listingService"
	model "auction-site/internal/models"
	"auction-site/internal/repository"
)

func seedListing(repo *repository.MemoryRepo, listingID string, startingPrice float64) {
	_ = repo.CreateListing(model.Listing{
		ListingID:     listingID,
		Title:         fmt.Sprintf("Listing %s", listingID),
		Description:   "Benchmark listing",
		StartingPrice: startingPrice,
		OwnerID:       "seller",
		CreatedAt:     time.Now().UTC(),
	})
}

// Benchmark 1: PlaceBid - Isolated Listings (Low Contention)
func Benchmark_PlaceBid_IsolatedListings(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo)

	for i := 0; i < b.N; i++ {
		seedListing(repo, fmt.Sprintf("listing_%d", i), 50)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		userID := fmt.Sprintf("user_%d", i)
		listingID := fmt.Sprintf("listing_%d", i)
		amount := float64(50 + rand.Intn(100))
		if _, err := svc.PlaceBid(listingID, userID, amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Listing (High Contention)
func Benchmark_PlaceBid_ConcurrentSharedListing(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo)
	seedListing(repo, "shared_listing", 50)

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			userID := fmt.Sprintf("user_parallel_%d", rnd.Int())

			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _ = svc.PlaceBid("shared_listing", userID, float64(nextBid))
		}
	})
}

// Benchmark 3: GetWinningBid - Single-Threaded
func Benchmark_GetWinningBid_SingleThreaded(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo)

	for i := 0; i < b.N; i++ {
		listingID := fmt.Sprintf("listing_%d", i)
		seedListing(repo, listingID, 50)

		for j := 0; j < 10; j++ {
			userID := fmt.Sprintf("user_%d_%d", i, j)
			_, _ = svc.PlaceBid(listingID, userID, float64(50+j*10))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		listingID := fmt.Sprintf("listing_%d", i)
		if _, err := svc.GetWinningBid(listingID); err != nil {
			b.Fatalf("failed to get winning bid: %v", err)
		}
	}
}

// Benchmark 4: GetWinningBid - Concurrent (High Contention)
func Benchmark_GetWinningBid_ConcurrentSharedListing(b *testing.B) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo)
	seedListing(repo, "shared_listing", 50)

	for j := 0; j < 100; j++ {
		userID := fmt.Sprintf("user_%d", j)
		_, _ = svc.PlaceBid("shared_listing", userID, float64(50+j))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetWinningBid("shared_listing"); err != nil {
				b.Fatalf("failed to get winning bid: %v", err)
			}
		}
	})
}

// Benchmark 5: GetListingDetail - the listing page query (listing + bids + count)
func Benchmark_GetListingDetail(b *testing.B) {
	repo := repository.NewMemoryRepo()
	bidSvc := bidding.NewBiddingService(repo)
	listingSvc := listing.NewListingService(repo)

	_ = repo.CreateUser(model.User{UserID: "seller", Username: "seller"})
	seedListing(repo, "shared_listing", 50)

	for j := 0; j < 50; j++ {
		userID := fmt.Sprintf("user_%d", j)
		_, _ = bidSvc.PlaceBid("shared_listing", userID, float64(50+j*2))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			detail, err := listingSvc.GetListingDetail("shared_listing")
			if err != nil {
				b.Fatalf("failed to load detail: %v", err)
			}
			if detail.BidCount != len(detail.Bids) {
				b.Fatalf("bid count mismatch")
			}
		}
	})
}
