package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hearthshare/inquiry/internal/wizard"
)

// GetWizardStep renders one wizard screen. Confirmed clients have no business
// here and are sent to their homepage; an unconfirmed client sees the wizard
// with a notice.
func (s *Server) GetWizardStep(c *gin.Context) {
	step, ok := wizard.ParseStep(c.Param("step"))
	if !ok || step == wizard.StepDone {
		AbortWithError(c, ErrNotFound)
		return
	}

	client := s.optionalClient(c)
	if client != nil && client.User != nil && client.User.EmailConfirmed {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	sid := wizardSessionID(c)
	current, err := s.wizardsvc.Begin(c.Request.Context(), sid)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// A later step than the session has reached renders the current one.
	if current.Before(step) {
		c.Redirect(http.StatusSeeOther, stepPath(current))
		return
	}

	body := gin.H{"step": string(step)}
	if client != nil {
		body["notice"] = "Your account is awaiting email confirmation."
	}
	if step == wizard.StepFirst {
		initial, err := s.wizardsvc.FirstStepInitial(c.Request.Context(), sid, nil)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		body["initial"] = initial
	}
	c.JSON(http.StatusOK, body)
}

// PostWizardStep accepts one step's answers and advances the session.
func (s *Server) PostWizardStep(c *gin.Context) {
	step, ok := wizard.ParseStep(c.Param("step"))
	if !ok || step == wizard.StepDone {
		AbortWithError(c, ErrNotFound)
		return
	}

	sid := wizardSessionID(c)
	ctx := c.Request.Context()

	var (
		result *wizard.StepResult
		err    error
	)
	switch step {
	case wizard.StepFirst:
		var data wizard.FirstStepData
		if bindErr := c.ShouldBindJSON(&data); bindErr != nil {
			AbortWithError(c, bindingError(bindErr))
			return
		}
		result, err = s.wizardsvc.SubmitFirst(ctx, sid, data)
	case wizard.StepHome:
		var data wizard.HomeStepData
		if bindErr := c.ShouldBindJSON(&data); bindErr != nil {
			AbortWithError(c, bindingError(bindErr))
			return
		}
		result, err = s.wizardsvc.SubmitHome(ctx, sid, data)
	case wizard.StepHomeowner:
		var data wizard.HomeownerStepData
		if bindErr := c.ShouldBindJSON(&data); bindErr != nil {
			AbortWithError(c, bindingError(bindErr))
			return
		}
		result, err = s.wizardsvc.SubmitHomeowner(ctx, sid, data)
	case wizard.StepSignup:
		var data wizard.SignupStepData
		if bindErr := c.ShouldBindJSON(&data); bindErr != nil {
			AbortWithError(c, bindingError(bindErr))
			return
		}
		result, err = s.wizardsvc.SubmitSignup(ctx, sid, data, c.ClientIP(), c.Request.UserAgent())
	}

	if err != nil {
		s.metrics.StepSubmissions.WithLabelValues(string(step), "error").Inc()
		AbortWithError(c, err)
		return
	}

	if result.OutcomeSlug != "" {
		s.metrics.StepSubmissions.WithLabelValues(string(step), "rejected").Inc()
		s.metrics.Rejections.WithLabelValues(result.OutcomeSlug).Inc()
		c.JSON(http.StatusOK, gin.H{"redirect": wizard.OutcomePathPrefix + result.OutcomeSlug})
		return
	}

	s.metrics.StepSubmissions.WithLabelValues(string(step), "accepted").Inc()

	if result.Done != nil {
		s.metrics.Submissions.Inc()
		if result.Done.Login != nil {
			s.sessions.Set(c, result.Done.Login.RawToken, result.Done.Login.ExpiresAt)
		}
		c.JSON(http.StatusOK, gin.H{"redirect": result.Done.Redirect})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": stepPath(result.Next)})
}

func stepPath(step wizard.Step) string {
	return "/inquiry/apply/" + string(step)
}

// bindingError translates gin's binding failures into the field-level
// validation payload so the client can re-render the form.
func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newValidationError("request", "invalid_request", "invalid request")
	}

	out := &ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldName(fe),
			Code:    "invalid_" + fe.Tag(),
			Message: "invalid value",
		})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is Type.Field; the JSON tag casing is what the form
	// uses, so lower the exported name as a fallback.
	return strings.ToLower(fe.Field())
}
