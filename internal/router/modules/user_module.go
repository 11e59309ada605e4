package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/address-book/internal/interface/http"
	"github.com/oksasatya/address-book/internal/interface/middleware"
)

// UserModule wires the admin user listing and the per-user address
// routes. Address routes require both a login and ownership of the
// userId named in the path (admins pass ownership).

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", middleware.IsAdmin(), m.Handler.List)

	rg.POST("/users/:userId/addresses",
		middleware.LoggedIn(), middleware.IsOwner("userId"), m.Handler.CreateAddress)
	rg.DELETE("/users/:userId/addresses/:id",
		middleware.LoggedIn(), middleware.IsOwner("userId"), m.Handler.DeleteAddress)
}
