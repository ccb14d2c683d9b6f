package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderstay/utils"
)

// Health handles GET /api/health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
