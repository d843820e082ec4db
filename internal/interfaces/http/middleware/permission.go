package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
)

// RequirePermission guards a route behind a role permission. Admins
// bypass the check; other users must carry a role granting it.
func RequirePermission(lookup identity.PermissionLookup, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if actor.IsAdmin {
			c.Next()
			return
		}

		if actor.RoleID == uuid.Nil {
			abortForbidden(c)
			return
		}

		perms, err := lookup.PermissionsForRole(c.Request.Context(), actor.RoleID)
		if err != nil || !perms.Has(permission) {
			abortForbidden(c)
			return
		}

		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "Not allowed to perform this action"))
}
