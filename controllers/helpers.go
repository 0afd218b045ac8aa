package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
