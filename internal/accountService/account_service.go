package account

import (
	"errors"
	"fmt"
	"time"

	"auction-site/internal/auctionerrors"
	"auction-site/internal/models"
	"auction-site/internal/repository"
	"auction-site/utils"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration and credential verification
type AccountService struct {
	repo repository.AuctionDB
}

// NewAccountService creates a new AccountService instance
func NewAccountService(repo repository.AuctionDB) *AccountService {
	return &AccountService{
		repo: repo,
	}
}

// Register creates a new account. Either exactly one user is persisted, or
// nothing changes: the confirmation check and the password hash both happen
// before the repository write.
func (s *AccountService) Register(username, email, password, confirmation string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - missing username, email or password", auctionerrors.ErrInvalidCredentials)
	}
	if password != confirmation {
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrPasswordMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password for %s: %w", username, err)
	}

	user := models.User{
		UserID:       utils.GenerateID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: failed to create user %s: %w", username, err)
	}

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both come back as ErrInvalidCredentials, so callers cannot tell
// whether the username exists.
func (s *AccountService) Authenticate(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
		}
		return models.User{}, fmt.Errorf("service: failed to look up user %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	return user, nil
}
