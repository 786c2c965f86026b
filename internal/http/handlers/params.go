package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
)

// pageParams reads ?page= and ?page_size=. Missing values select page 1 and
// the configured default size; range checks happen in the feed service.
func pageParams(c *gin.Context, op string) (page, pageSize int, err error) {
	page, err = intQuery(c, op, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = intQuery(c, op, "page_size", 0)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func intQuery(c *gin.Context, op, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainagg.Validation(op, name, "must be an integer")
	}
	return n, nil
}

func idParam(c *gin.Context, op, subject string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainagg.NotFound(op, subject)
	}
	return id, nil
}

// bindJSON decodes the request body into dst. Decoder errors are reported as
// a fixed validation message.
func bindJSON(c *gin.Context, op string, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domainagg.Validation(op, domainagg.FieldRequest, "body must be a JSON object")
	}
	return nil
}

func optionalUUIDQuery(c *gin.Context, op, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainagg.Validation(op, name, "must be a uuid")
	}
	return &id, nil
}
