package router

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

const (
	msgValidationFailed = "Validation failed"
	msgInvalidJSON      = "Invalid JSON format"
	msgInvalidParams    = "Invalid request parameters"
	msgInternalError    = "Internal server error"
)

// respondError writes err as an envelope. AppErrors keep their status and
// message; anything else is logged and reported as a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := global.AsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.logEntry(c).WithError(err).Error("Request failed")
		}
		c.JSON(appErr.StatusCode, global.ErrorResponse(appErr.Message, appErr.Errors))
		return
	}

	h.logEntry(c).WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, global.ErrorResponse(msgInternalError, nil))
}

// bindJSON binds the request body into obj. An empty body is validated as
// an empty object so that missing fields report their required rules.
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// respondBindError reports a failed body bind as a 400.
func respondBindError(c *gin.Context, err error) {
	if respondValidationErrors(c, err) {
		return
	}
	c.JSON(http.StatusBadRequest, global.ErrorResponse(msgInvalidJSON, []global.ValidationError{
		{Field: "body", Message: err.Error(), Code: "json_parse_error"},
	}))
}

// respondParamError reports a failed query or path bind as a 400.
func respondParamError(c *gin.Context, err error) {
	if respondValidationErrors(c, err) {
		return
	}
	c.JSON(http.StatusBadRequest, global.ErrorResponse(msgInvalidParams, []global.ValidationError{
		{Field: "params", Message: err.Error(), Code: "invalid_parameter"},
	}))
}

func respondValidationErrors(c *gin.Context, err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	c.JSON(http.StatusBadRequest, global.ErrorResponse(msgValidationFailed, translateValidationErrors(verrs)))
	return true
}

func (h *Handler) logEntry(c *gin.Context) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(ContextRequestID),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
}
