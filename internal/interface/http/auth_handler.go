package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/internal/application"
	"github.com/oksasatya/address-book/internal/interface/middleware"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

// GithubRedirect sends the browser to GitHub's consent page.
func (h *AuthHandler) GithubRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, h.Auth.AuthorizeURL())
}

// GithubCallback lands the browser after consent. The code is exchanged
// and the session token delivered via the redirect query, where the SPA
// picks it up and stores it client-side.
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	token, err := h.Auth.Login(c.Request.Context(), c.Query("code"))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, "/?token="+url.QueryEscape(token))
}

// Me returns the caller's identity with addresses. Guarded by LoggedIn,
// so the identity is always present here.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.IdentityFrom(c))
}
