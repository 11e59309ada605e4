package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/internal/application"
	"github.com/oksasatya/address-book/internal/interface/middleware"
	"github.com/oksasatya/address-book/pkg/apperr"
	"github.com/oksasatya/address-book/pkg/validation"
)

type UserHandler struct {
	Auth      *application.AuthService
	Addresses *application.AddressService
	Logger    *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, addresses *application.AddressService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Addresses: addresses, Logger: logger}
}

type createAddressRequest struct {
	// The payload arrives double-encoded: a JSON string holding the
	// document. Stored opaquely after a parse check.
	JSON string `json:"json" binding:"required"`
}

// List returns every user with addresses. Admin-only at the route layer.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Auth.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateAddress creates an address owned by the caller.
func (h *UserHandler) CreateAddress(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("invalid address payload")
		_ = c.Error(apperr.New(http.StatusBadRequest, "invalid payload", err))
		c.Abort()
		return
	}
	if !json.Valid([]byte(req.JSON)) {
		_ = c.Error(apperr.New(http.StatusBadRequest, "json field is not valid JSON", nil))
		c.Abort()
		return
	}

	ident := middleware.IdentityFrom(c)
	addr, err := h.Addresses.Create(c.Request.Context(), ident.ID, json.RawMessage(req.JSON))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, addr)
}

// DeleteAddress removes the address, scoped to the owner named in the
// URL. Always 204: a missing id is a no-op success.
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	err := h.Addresses.Delete(c.Request.Context(), c.Param("userId"), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.Status(http.StatusNoContent)
}
