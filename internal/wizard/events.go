package wizard

import (
	"context"
	"fmt"
)

// emitStepEvent records one step submission for the analytics pipeline. The
// identity is the anonymous wizard session until an account exists. outcome is
// "submitted" for an accepted step or the rejection message for a vetted one.
func (s *Service) emitStepEvent(ctx context.Context, sessionID string, step Step, outcome string, fields map[string]any) {
	properties := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		properties[k] = v
	}
	if _, ok := properties["email"]; !ok {
		email, err := s.resolveEmail(ctx, sessionID, step, nil)
		if err != nil {
			email = ""
		}
		properties["email"] = email
	}
	properties["tracking_status"] = fmt.Sprintf("%s screen %s", step, outcome)

	s.emitter.Emit(sessionID, fmt.Sprintf("investment inquiry - %s screen submitted", step), properties)
}

func firstStepEventFields(data FirstStepData) map[string]any {
	return map[string]any{
		"email":               data.Email,
		"street":              data.Street,
		"unit":                data.Unit,
		"city":                data.City,
		"state":               data.State,
		"zip_code":            data.ZipCode,
		"use_case_debts":      data.UseCaseDebts,
		"use_case_diversify":  data.UseCaseDiversify,
		"use_case_renovate":   data.UseCaseRenovate,
		"use_case_education":  data.UseCaseEducation,
		"use_case_buy_home":   data.UseCaseBuyHome,
		"use_case_business":   data.UseCaseBusiness,
		"use_case_emergency":  data.UseCaseEmergency,
		"use_case_retirement": data.UseCaseRetirement,
		"use_case_other":      data.UseCaseOther,
	}
}
