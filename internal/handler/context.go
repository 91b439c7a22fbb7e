package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the context key holding the authenticated user's id.
const ContextUserID = "userID"

// UserID returns the authenticated user's id, aborting with 401 when the
// request was not authenticated.
func UserID(c *gin.Context) (int64, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{"error": "Authentication required"})
		return 0, false
	}
	userID, ok := id.(int64)
	if !ok || userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{"error": "Authentication required"})
		return 0, false
	}
	return userID, true
}

// PathID parses the named int64 path parameter, reporting 404 when malformed
// so unparseable ids are indistinguishable from missing records.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, Envelope{"error": "Not found"})
		return 0, false
	}
	return id, true
}
