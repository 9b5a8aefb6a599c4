package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id parameter")
	}
	return id, nil
}
