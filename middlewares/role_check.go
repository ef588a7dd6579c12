package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafesys/cafe-backend/utils"
)

// ManagerOnly rejects requests whose identity cannot manage the catalog and
// users. The services run the gate again; this only short-circuits early.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("no acting identity"))
			c.Abort()
			return
		}
		if !id.Role.CanManage() {
			utils.RespondError(c, http.StatusForbidden, errors.New("manager access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// StaffOnly admits employees and managers.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("no acting identity"))
			c.Abort()
			return
		}
		if !id.Role.CanEditAnyOrder() {
			utils.RespondError(c, http.StatusForbidden, errors.New("staff access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
