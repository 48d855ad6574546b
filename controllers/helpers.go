package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restro-backend/services"
	"restro-backend/utils"
)

// parseIDParam reads the numeric :id route parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors onto HTTP status codes:
// domain rule violations are 400, missing records 404, the rest 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsDomainError(err):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID extracts the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return 0, false
	}
	s, ok := raw.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return 0, false
	}
	return uint(id), true
}
