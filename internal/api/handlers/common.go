package handlers

import (
	"errors"
	"net/http"

	"github.com/careerlink/jobboard/internal/authz"
	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// currentPrincipal reads the identity the auth middleware resolved.
func currentPrincipal(c *gin.Context) (authz.Principal, bool) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")

	id, okID := userID.(string)
	r, okRole := role.(string)
	if !okID || !okRole || id == "" || r == "" {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
		return authz.Principal{}, false
	}
	return authz.Principal{UserID: id, Role: models.Role(r)}, true
}
