package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipe-api/backend/internal/middleware"
	"github.com/recipe-api/backend/internal/types"
)

// currentUserID returns the authenticated user's id. It writes a 401 and
// returns false when the auth middleware did not run.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "authentication credentials were not provided"})
		return 0, false
	}
	userID, ok := id.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "authentication credentials were not provided"})
		return 0, false
	}
	return userID, true
}

// pathID parses the :id route parameter. Malformed ids are reported as 404.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "not found"})
		return 0, false
	}
	return uint(id), true
}

// parseIDList parses a comma separated list of ids such as "1,2,3".
func parseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
