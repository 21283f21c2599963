package handler

import (
	"net/http"

	model "auction-site/internal/models"
	session "auction-site/internal/sessionService"
	"auction-site/services/auth/helpers"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
)

type AccountServiceInterface interface {
	Register(username, email, password, confirmation string) (model.User, error)
	Authenticate(username, password string) (model.User, error)
}

type SessionManagerInterface interface {
	Establish(user model.User) (string, error)
	Terminate(token string)
}

type AuthHandler struct {
	accounts AccountServiceInterface
	sessions SessionManagerInterface
}

func NewAuthHandler(accounts AccountServiceInterface, sessions SessionManagerInterface) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// ShowLoginHandler handles GET /login
func (h *AuthHandler) ShowLoginHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Username": ""})
}

// LoginHandler handles POST /login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var form helpers.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		// missing fields get the same fixed message as bad credentials
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Message":  helpers.MsgInvalidCredentials,
			"Username": c.PostForm("username"),
		})
		return
	}

	user, err := h.accounts.Authenticate(form.Username, form.Password)
	if err != nil {
		utils.Warn("LoginHandler: authentication failed", map[string]any{
			"username": form.Username,
		})
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Message":  helpers.MsgInvalidCredentials,
			"Username": form.Username,
		})
		return
	}

	h.establishAndRedirect(c, "LoginHandler", user, "login.html")
}

// LogoutHandler handles GET|POST /logout. Terminating an absent or already
// closed session is a no-op.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil {
		h.sessions.Terminate(token)
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowRegisterHandler handles GET /register
func (h *AuthHandler) ShowRegisterHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Username": "", "Email": ""})
}

// RegisterHandler handles POST /register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var form helpers.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Message":  helpers.MsgRegistrationInvalid,
			"Username": c.PostForm("username"),
			"Email":    c.PostForm("email"),
		})
		return
	}

	user, err := h.accounts.Register(form.Username, form.Email, form.Password, form.Confirmation)
	if err != nil {
		utils.Warn("RegisterHandler: registration failed", map[string]any{
			"username": form.Username,
			"error":    err.Error(),
		})
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Message":  helpers.MapRegisterError(err),
			"Username": form.Username,
			"Email":    form.Email,
		})
		return
	}

	h.establishAndRedirect(c, "RegisterHandler", user, "register.html")
}

// establishAndRedirect opens a session for the user, sets the session cookie
// and redirects to the feed. On failure the originating form is re-rendered.
func (h *AuthHandler) establishAndRedirect(c *gin.Context, handlerName string, user model.User, formTemplate string) {
	token, err := h.sessions.Establish(user)
	if err != nil {
		utils.Error(handlerName+": failed to establish session", map[string]any{
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		c.HTML(http.StatusInternalServerError, formTemplate, gin.H{
			"Message":  helpers.MsgInternalError,
			"Username": user.Username,
			"Email":    user.Email,
		})
		return
	}

	// session cookie; the token itself carries the expiry
	c.SetCookie(session.CookieName, token, 0, "/", "", false, true)
	helpers.LogSuccess(handlerName, "session established", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
	c.Redirect(http.StatusSeeOther, "/")
}
