package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafesys/cafe-backend/auth"
	"github.com/cafesys/cafe-backend/middlewares"
	"github.com/cafesys/cafe-backend/services"
	"github.com/cafesys/cafe-backend/utils"
)

// statusFor maps service error kinds to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	utils.RespondError(c, statusFor(err), err)
}

// actingIdentity pulls the identity resolved by the auth middleware. Routes
// that reach a controller without one are misconfigured; treat as
// unauthorized.
func actingIdentity(c *gin.Context) (auth.Identity, bool) {
	id, ok := middlewares.IdentityFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no acting identity"))
	}
	return id, ok
}
