package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planhub-io/planhub/internal/pkg/apperr"
)

const dateLayout = "2006-01-02"

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// parseDate accepts an optional YYYY-MM-DD field; empty means absent.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperr.Validation("invalid %s %q, want YYYY-MM-DD", field, value)
	}
	return &t, nil
}

// parseDatePtr is parseDate for PATCH bodies where nil means unchanged.
func parseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDate(field, *value)
}
