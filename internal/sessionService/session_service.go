package session

import (
	"fmt"
	"sync"
	"time"

	"auction-site/internal/auctionerrors"
	model "auction-site/internal/models"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the session token
const CookieName = "auction_session"

const identityContextKey = "currentUser"

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID   string
	Username string
}

// Claims is the JWT payload of a session token
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens. Tokens are HS256-signed JWTs,
// and the session id inside each token must also be live in the in-process
// store, so terminating a session invalidates its token before expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration

	mu   sync.RWMutex
	live map[string]Identity // key: sessionID -> value: identity
}

// NewManager creates a session manager signing with the given secret
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		live:   make(map[string]Identity),
	}
}

// Establish opens a new session for the user and returns its signed token
func (m *Manager) Establish(user model.User) (string, error) {
	sessionID := utils.GenerateID()
	now := time.Now().UTC()

	claims := &Claims{
		SessionID: sessionID,
		UserID:    user.UserID,
		Username:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: failed to sign token: %w", err)
	}

	m.mu.Lock()
	m.live[sessionID] = Identity{UserID: user.UserID, Username: user.Username}
	m.mu.Unlock()

	return token, nil
}

// Resolve verifies a session token and returns the identity it is bound to.
// Tokens that are malformed, expired, forged, or whose session has been
// terminated all resolve to ErrSessionNotFound.
func (m *Manager) Resolve(token string) (Identity, error) {
	claims, err := m.parseClaims(token)
	if err != nil {
		return Identity{}, fmt.Errorf("session: %w: %v", auctionerrors.ErrSessionNotFound, err)
	}

	m.mu.RLock()
	identity, ok := m.live[claims.SessionID]
	m.mu.RUnlock()

	if !ok {
		return Identity{}, fmt.Errorf("session %s: %w", claims.SessionID, auctionerrors.ErrSessionNotFound)
	}
	return identity, nil
}

// Terminate closes the session behind a token. It is idempotent: an unknown,
// malformed, or already-terminated token is a no-op.
func (m *Manager) Terminate(token string) {
	claims, err := m.parseClaims(token)
	if err != nil {
		return
	}

	m.mu.Lock()
	delete(m.live, claims.SessionID)
	m.mu.Unlock()
}

func (m *Manager) parseClaims(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

// SetIdentity attaches the authenticated identity to the request context
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityContextKey, identity)
}

// CurrentIdentity returns the authenticated identity for the request, if any
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
