package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	prefdomain "github.com/Apurer/go-gin-storefront/internal/domains/preferences/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type LanguageResponse struct {
	Language  prefdomain.Language `json:"language"`
	Direction string              `json:"direction"`
}

type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type PreferencesAPI struct {
	responder *apierrors.Responder
}

func NewPreferencesAPI(responder *apierrors.Responder) PreferencesAPI {
	return PreferencesAPI{responder: responder}
}

// Get /api/preferences/language
func (api *PreferencesAPI) GetLanguage(c *gin.Context) {
	lang := workspace(c).Preferences.Language(c.Request.Context())
	c.JSON(http.StatusOK, LanguageResponse{Language: lang, Direction: lang.Direction()})
}

// Put /api/preferences/language
func (api *PreferencesAPI) SetLanguage(c *gin.Context) {
	var payload SetLanguageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	lang, err := workspace(c).Preferences.SetLanguage(c.Request.Context(), payload.Language)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LanguageResponse{Language: lang, Direction: lang.Direction()})
}
