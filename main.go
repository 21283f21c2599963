package main

import (
	"fmt"
	"os"

	account "auction-site/internal/accountService"
	bidding "auction-site/internal/biddingService"
	"auction-site/internal/config"
	listing "auction-site/internal/listingService"
	"auction-site/internal/repository"
	"auction-site/internal/server"
	session "auction-site/internal/sessionService"
)

func main() {
	cfg := config.Load()

	repo := repository.NewMemoryRepo()

	accounts := account.NewAccountService(repo)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	listings := listing.NewListingService(repo)
	bids := bidding.NewBiddingService(repo)

	router := server.SetupRouter(accounts, sessions, listings, bids)

	fmt.Printf("Starting auction site on %s...\n", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
