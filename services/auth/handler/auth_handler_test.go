package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"auction-site/internal/auctionerrors"
	model "auction-site/internal/models"
	session "auction-site/internal/sessionService"
	"auction-site/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T, accounts AccountServiceInterface, sessions SessionManagerInterface) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates.Load())

	h := NewAuthHandler(accounts, sessions)
	router.GET("/login", h.ShowLoginHandler)
	router.POST("/login", h.LoginHandler)
	router.GET("/logout", h.LogoutHandler)
	router.GET("/register", h.ShowRegisterHandler)
	router.POST("/register", h.RegisterHandler)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// Test ShowLoginHandler
func TestShowLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := setupAuthRouter(t, NewMockAccountServiceInterface(ctrl), NewMockSessionManagerInterface(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/login"`)
}

// Test LoginHandler
func TestLoginHandler(t *testing.T) {
	alice := model.User{UserID: "u1", Username: "alice", Email: "a@x.com"}

	tests := []struct {
		name           string
		form           url.Values
		mockSetup      func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface)
		expectedStatus int
		expectRedirect bool
		expectedBody   string
	}{
		{
			name: "success_valid_credentials",
			form: url.Values{"username": {"alice"}, "password": {"p1"}},
			mockSetup: func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {
				accounts.EXPECT().Authenticate("alice", "p1").Return(alice, nil)
				sessions.EXPECT().Establish(alice).Return("session-token", nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectRedirect: true,
		},
		{
			name: "wrong_password",
			form: url.Values{"username": {"alice"}, "password": {"wrong"}},
			mockSetup: func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {
				accounts.EXPECT().Authenticate("alice", "wrong").
					Return(model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Invalid username and/or password.",
		},
		{
			// missing fields never reach the account service
			name:           "missing_password",
			form:           url.Values{"username": {"alice"}},
			mockSetup:      func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {},
			expectedStatus: http.StatusOK,
			expectedBody:   "Invalid username and/or password.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountServiceInterface(ctrl)
			sessions := NewMockSessionManagerInterface(ctrl)
			tc.mockSetup(accounts, sessions)

			router := setupAuthRouter(t, accounts, sessions)
			w := postForm(router, "/login", tc.form, "")

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectRedirect {
				require.Equal(t, "/", w.Header().Get("Location"))
				cookie := sessionCookie(t, w)
				require.NotNil(t, cookie, "expected a session cookie")
				require.Equal(t, "session-token", cookie.Value)
				require.True(t, cookie.HttpOnly)
			} else {
				require.Contains(t, w.Body.String(), tc.expectedBody)
				require.Nil(t, sessionCookie(t, w), "no session cookie on failed login")
			}
		})
	}
}

// Failed logins keep the submitted username in the form
func TestLoginHandler_PreservesUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountServiceInterface(ctrl)
	sessions := NewMockSessionManagerInterface(ctrl)
	accounts.EXPECT().Authenticate("alice", "wrong").
		Return(model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials))

	router := setupAuthRouter(t, accounts, sessions)
	w := postForm(router, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, "")

	require.Contains(t, w.Body.String(), `value="alice"`)
}

// Test RegisterHandler
func TestRegisterHandler(t *testing.T) {
	alice := model.User{UserID: "u1", Username: "alice", Email: "a@x.com"}

	tests := []struct {
		name           string
		form           url.Values
		mockSetup      func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface)
		expectedStatus int
		expectRedirect bool
		expectedBody   string
	}{
		{
			name: "success",
			form: url.Values{"username": {"alice"}, "email": {"a@x.com"}, "password": {"p1"}, "confirmation": {"p1"}},
			mockSetup: func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {
				accounts.EXPECT().Register("alice", "a@x.com", "p1", "p1").Return(alice, nil)
				sessions.EXPECT().Establish(alice).Return("session-token", nil)
			},
			expectedStatus: http.StatusSeeOther,
			expectRedirect: true,
		},
		{
			name: "password_mismatch",
			form: url.Values{"username": {"alice"}, "email": {"a@x.com"}, "password": {"p1"}, "confirmation": {"p2"}},
			mockSetup: func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {
				accounts.EXPECT().Register("alice", "a@x.com", "p1", "p2").
					Return(model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrPasswordMismatch))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Passwords must match.",
		},
		{
			name: "username_taken",
			form: url.Values{"username": {"alice"}, "email": {"a@x.com"}, "password": {"p1"}, "confirmation": {"p1"}},
			mockSetup: func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {
				accounts.EXPECT().Register("alice", "a@x.com", "p1", "p1").
					Return(model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUsernameTaken))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "Username already taken.",
		},
		{
			name:           "missing_email",
			form:           url.Values{"username": {"alice"}, "password": {"p1"}, "confirmation": {"p1"}},
			mockSetup:      func(accounts *MockAccountServiceInterface, sessions *MockSessionManagerInterface) {},
			expectedStatus: http.StatusOK,
			expectedBody:   "All fields are required.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := NewMockAccountServiceInterface(ctrl)
			sessions := NewMockSessionManagerInterface(ctrl)
			tc.mockSetup(accounts, sessions)

			router := setupAuthRouter(t, accounts, sessions)
			w := postForm(router, "/register", tc.form, "")

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectRedirect {
				require.Equal(t, "/", w.Header().Get("Location"))
				cookie := sessionCookie(t, w)
				require.NotNil(t, cookie, "expected a session cookie")
				require.Equal(t, "session-token", cookie.Value)
			} else {
				require.Contains(t, w.Body.String(), tc.expectedBody)
				require.Nil(t, sessionCookie(t, w), "no session cookie on failed registration")
			}
		})
	}
}

// Failed registrations keep the submitted username and email in the form
func TestRegisterHandler_PreservesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := NewMockAccountServiceInterface(ctrl)
	sessions := NewMockSessionManagerInterface(ctrl)
	accounts.EXPECT().Register("alice", "a@x.com", "p1", "p1").
		Return(model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrUsernameTaken))

	router := setupAuthRouter(t, accounts, sessions)
	w := postForm(router, "/register",
		url.Values{"username": {"alice"}, "email": {"a@x.com"}, "password": {"p1"}, "confirmation": {"p1"}}, "")

	body := w.Body.String()
	require.Contains(t, body, `value="alice"`)
	require.Contains(t, body, `value="a@x.com"`)
}

// Test LogoutHandler
func TestLogoutHandler(t *testing.T) {
	t.Run("with_active_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accounts := NewMockAccountServiceInterface(ctrl)
		sessions := NewMockSessionManagerInterface(ctrl)
		sessions.EXPECT().Terminate("session-token")

		router := setupAuthRouter(t, accounts, sessions)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.Header.Set("Cookie", session.CookieName+"=session-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))

		cookie := sessionCookie(t, w)
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	})

	// logging out with no active session is a no-op
	t.Run("without_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accounts := NewMockAccountServiceInterface(ctrl)
		sessions := NewMockSessionManagerInterface(ctrl)

		router := setupAuthRouter(t, accounts, sessions)

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
	})
}
