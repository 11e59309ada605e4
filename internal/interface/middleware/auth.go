package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/address-book/internal/application"
	repo "github.com/oksasatya/address-book/internal/domain/repository"
	"github.com/oksasatya/address-book/pkg/apperr"
	"github.com/oksasatya/address-book/pkg/helpers"
)

// CtxIdentityKey holds the resolved *application.Identity, when present.
const CtxIdentityKey = "identity"

// AuthSession resolves the caller's identity from the authorization
// header and attaches it to the context. No header means an anonymous
// request and is never an error; route policies decide what anonymity
// may do. A header that fails to decode, or decodes to a user that no
// longer exists, short-circuits with 401 — the one rejection this stage
// performs itself.
func AuthSession(session *helpers.SessionManager, auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.Next()
			return
		}

		userID, err := session.Decode(token)
		if err != nil {
			_ = c.Error(apperr.InvalidToken(err))
			c.Abort()
			return
		}

		ident, err := auth.Identity(c.Request.Context(), userID)
		if errors.Is(err, repo.ErrNotFound) {
			// Token signed for a user that has since vanished.
			_ = c.Error(apperr.Unauthorized())
			c.Abort()
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(CtxIdentityKey, ident)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by AuthSession, or nil for
// an anonymous request.
func IdentityFrom(c *gin.Context) *application.Identity {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*application.Identity)
	return ident
}
