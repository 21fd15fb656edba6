package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error     string            `json:"error"`
	Details   map[string]string `json:"details,omitempty"`
	Feedback  []string          `json:"feedback,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// Option decorates an ErrorBody before it is written.
type Option func(*ErrorBody)

// WithDetails attaches per-field validation messages.
func WithDetails(details map[string]string) Option {
	return func(b *ErrorBody) { b.Details = details }
}

// WithFeedback attaches password policy hints.
func WithFeedback(feedback []string) Option {
	return func(b *ErrorBody) { b.Feedback = feedback }
}

// Success writes data as the whole response body.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error writes an ErrorBody and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, opts ...Option) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{Error: message, RequestID: ctx.GetString("request_id")}
	for _, opt := range opts {
		opt(&body)
	}
	ctx.AbortWithStatusJSON(status, body)
}
