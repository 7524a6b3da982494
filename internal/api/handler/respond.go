package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/core/service"
)

func writeError(c *gin.Context, code int, message string) {
	c.JSON(code, dto.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}

// handleServiceError answers with the status carried by a ServiceError and
// with 500 for anything else.
func handleServiceError(c *gin.Context, err error) {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		writeError(c, svcErr.Code, svcErr.Message)
		return
	}
	writeError(c, http.StatusInternalServerError, err.Error())
}

// intParam reads a path parameter as an integer, answering 400 when it is not one.
func intParam(c *gin.Context, name, label string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		writeError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", label, c.Param(name)))
		return 0, false
	}
	return value, true
}

func sendXLSX(c *gin.Context, fileName string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, service.XLSXContentType, data)
}

// passThrough stands in for the auth guard when authentication is disabled.
func passThrough(c *gin.Context) {
	c.Next()
}

func guardOrPass(guard gin.HandlerFunc) gin.HandlerFunc {
	if guard == nil {
		return passThrough
	}
	return guard
}
