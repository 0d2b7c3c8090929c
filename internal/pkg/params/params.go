// Package params parses path and query parameters into typed values,
// reporting malformed input as validation errors.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"whiskerwatch/internal/domain"

	"github.com/gin-gonic/gin"
)

func ID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrValidation)
	}
	return id, nil
}

// QueryInt64 returns nil when key is absent or blank.
func QueryInt64(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, raw, domain.ErrValidation)
	}
	return &v, nil
}

// QueryBool returns nil when key is absent or blank.
func QueryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, raw, domain.ErrValidation)
	}
	return &v, nil
}
