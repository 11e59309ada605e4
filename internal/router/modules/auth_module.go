package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/address-book/internal/interface/http"
	"github.com/oksasatya/address-book/internal/interface/middleware"
)

// AuthModule wires the GitHub login flow and the identity route.
// Public: GET /api/auth/github, GET /api/auth/github/callback
// Protected: GET /api/auth

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/auth/github", m.Handler.GithubRedirect)
	rg.GET("/auth/github/callback", m.Handler.GithubCallback)

	rg.GET("/auth", middleware.LoggedIn(), m.Handler.Me)
}
