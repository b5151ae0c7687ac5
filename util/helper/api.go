package helper_util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// GetLimitParam reads the limit query parameter, falling back to def when absent.
func GetLimitParam(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer: %w", err)
	}
	return limit, nil
}
