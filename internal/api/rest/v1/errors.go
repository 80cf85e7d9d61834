package v1

import (
	"errors"
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// respondError writes err as an ErrorResponse with the status of its code.
// Unexpected errors are recorded on the context and answered with a generic message.
func respondError(ctx *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		ctx.AbortWithStatusJSON(status, ErrorResponse{Message: "internal server error"})
		return
	}

	message := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Code != apperr.CodeInvalidInput {
		message = appErr.Message
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// badRequest answers 400 with message
func badRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
