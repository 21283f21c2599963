package integrationtests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	account "auction-site/internal/accountService"
	bidding "auction-site/internal/biddingService"
	listing "auction-site/internal/listingService"
	"auction-site/internal/repository"
	"auction-site/internal/server"
	session "auction-site/internal/sessionService"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var listingLinkPattern = regexp.MustCompile(`/listings/([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)

// SetupTestRouter builds the full router on an in-memory repository for
// integration testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	accounts := account.NewAccountService(repo)
	sessions := session.NewManager("test-secret", time.Hour)
	listings := listing.NewListingService(repo)
	bids := bidding.NewBiddingService(repo)

	return server.SetupRouter(accounts, sessions, listings, bids)
}

// Get executes a GET request, optionally authenticated with a session cookie.
func Get(t *testing.T, router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PostForm executes a form POST, optionally authenticated with a session cookie.
func PostForm(t *testing.T, router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// SessionCookie extracts the session cookie from a response, or nil.
func SessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// RegisterUser registers an account through the HTTP surface and returns the
// established session cookie.
func RegisterUser(t *testing.T, router *gin.Engine, username, email, password string) *http.Cookie {
	t.Helper()

	w := PostForm(t, router, "/register", url.Values{
		"username":     {username},
		"email":        {email},
		"password":     {password},
		"confirmation": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	cookie := SessionCookie(w)
	require.NotNil(t, cookie, "registration should establish a session")
	return cookie
}

// CreateListing creates a listing through the HTTP surface and returns its id,
// scraped from the feed page.
func CreateListing(t *testing.T, router *gin.Engine, cookie *http.Cookie, title, description, price string) string {
	t.Helper()

	w := PostForm(t, router, "/listings/new", url.Values{
		"title":          {title},
		"description":    {description},
		"starting_price": {price},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	feed := Get(t, router, "/", cookie)
	require.Equal(t, http.StatusOK, feed.Code)

	matches := listingLinkPattern.FindAllStringSubmatch(feed.Body.String(), -1)
	require.NotEmpty(t, matches, "feed should link the new listing")
	return matches[len(matches)-1][1]
}
