package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// errorMapping ties a group of sentinel errors to a status and error code
type errorMapping struct {
	sentinels []error
	status    int
	code      dto.ErrorCode
}

// checked in order, the first match wins
var errorMappings = []errorMapping{
	{[]error{filestorage.ErrFileTooLarge}, http.StatusBadRequest, dto.ErrorCodePayloadTooLarge},
	{[]error{apperrors.ErrValidationFailed}, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{[]error{apperrors.ErrBadRequest}, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	{[]error{apperrors.ErrIncorrectEmail}, http.StatusUnauthorized, dto.ErrorCodeIncorrectEmail},
	{[]error{apperrors.ErrIncorrectPassword}, http.StatusUnauthorized, dto.ErrorCodeIncorrectPassword},
	{[]error{apperrors.ErrTokenInvalid}, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{[]error{apperrors.ErrUnauthenticated}, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
	{[]error{apperrors.ErrPermissionDenied}, http.StatusForbidden, dto.ErrorCodeForbidden},
	{[]error{
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrChapterNotFound,
		apperrors.ErrPaymentNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrResourceNotFound,
	}, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{[]error{
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUsernameTaken,
		apperrors.ErrEnrollmentExists,
		apperrors.ErrResourceAlreadyExists,
	}, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{[]error{apperrors.ErrConflict}, http.StatusConflict, dto.ErrorCodeConflict},
	{[]error{context.DeadlineExceeded}, http.StatusGatewayTimeout, dto.ErrorCodeTimeout},
}

// publicMessage returns the user-facing message of err. Messages of CustomError win over
// the sentinel text, so wrapping context added by lower layers never reaches the client.
func publicMessage(err, sentinel error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return sentinel.Error()
}

// ErrorDetailFor maps err to its HTTP status and error detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		for _, sentinel := range m.sentinels {
			if !errors.Is(err, sentinel) {
				continue
			}
			detail := dto.NewErrorDetail(m.code, publicMessage(err, sentinel))
			var custom *apperrors.CustomError
			if errors.As(err, &custom) && custom.Details != nil {
				detail = detail.WithDetails(custom.Details)
			}
			if m.status < http.StatusInternalServerError {
				detail = detail.WithSeverity(dto.ErrorSeverityWarning)
			}
			return m.status, detail
		}
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// HandleAPIError writes the failure envelope for err. Unclassified errors are logged
// and answered with a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
