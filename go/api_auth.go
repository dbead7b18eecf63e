package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// AuthResponse never carries the token; it stays in the session.
type AuthResponse struct {
	User    accountsdomain.User `json:"user"`
	IsAdmin bool                `json:"isAdmin"`
}

type AuthAPI struct {
	accounts  accountsports.Service
	responder *apierrors.Responder
}

func NewAuthAPI(accounts accountsports.Service, responder *apierrors.Responder) AuthAPI {
	return AuthAPI{accounts: accounts, responder: responder}
}

// Post /api/auth/login
func (api *AuthAPI) Login(c *gin.Context) {
	var payload accountsdomain.Credentials
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	user, err := api.accounts.Login(c.Request.Context(), ws.Preferences, payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{User: user, IsAdmin: user.IsAdmin()})
}

// Post /api/auth/register
func (api *AuthAPI) Register(c *gin.Context) {
	var payload accountsdomain.Registration
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	ws := workspace(c)
	user, err := api.accounts.Register(c.Request.Context(), ws.Preferences, payload)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{User: user, IsAdmin: user.IsAdmin()})
}

// Get /api/auth/me
func (api *AuthAPI) Me(c *gin.Context) {
	user, err := api.accounts.Me(c.Request.Context(), workspace(c).Preferences)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{User: user, IsAdmin: user.IsAdmin()})
}

// Post /api/auth/logout
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.accounts.Logout(c.Request.Context(), workspace(c).Preferences); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequireAdmin rejects requests whose session is not signed in as an admin.
func (api *AuthAPI) RequireAdmin(c *gin.Context) {
	if _, err := api.accounts.RequireAdmin(c.Request.Context(), workspace(c).Preferences); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Next()
}

func isArabic(lang prefdomain.Language) bool {
	return lang == prefdomain.LanguageArabic
}
