package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	addressdomain "github.com/hearthshare/inquiry/internal/address/domain"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/eligibility"
	inquirydomain "github.com/hearthshare/inquiry/internal/inquiry/domain"
	lifecycledomain "github.com/hearthshare/inquiry/internal/lifecycle/domain"
	"github.com/hearthshare/inquiry/internal/wizard"
	"gorm.io/gorm"
)

// supportMessage is shown verbatim for every server-side submission failure.
// Internal details are logged, never shown to the user.
const supportMessage = "Sorry, there was an error creating your account. Please contact support@hearthshare.com"

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: supportMessage,
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, wizard.ErrEmailTaken),
		errors.Is(err, clientdomain.ErrEmailTaken):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "email",
					Code:    "email_taken",
					Message: "an account with this email already exists",
				},
			},
		}
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    "invalid_request",
					Message: "invalid request",
				},
			},
		}
	case errors.Is(err, wizard.ErrStepOutOfOrder):
		return http.StatusConflict, errorPayload{
			Type:    "step_out_of_order",
			Message: "complete the earlier steps first",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, clientdomain.ErrInvalidCredentials),
		errors.Is(err, clientdomain.ErrInvalidSession),
		errors.Is(err, clientdomain.ErrSessionExpired),
		errors.Is(err, clientdomain.ErrSessionRevoked),
		errors.Is(err, clientdomain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, inquirydomain.ErrSubmissionFailed),
		errors.Is(err, lifecycledomain.ErrInvalidTransition):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: supportMessage,
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: supportMessage,
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, eligibility.ErrOutcomeNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, clientdomain.ErrUserNotFound),
		errors.Is(err, addressdomain.ErrAddressNotFound),
		errors.Is(err, inquirydomain.ErrNoInquiry),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}
