package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hearthshare/inquiry/internal/analytics"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/eligibility"
	forecastdomain "github.com/hearthshare/inquiry/internal/forecast/domain"
	inquirydomain "github.com/hearthshare/inquiry/internal/inquiry/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	// ErrEmailTaken re-renders the first step: the address belongs to an
	// existing account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrStepOutOfOrder rejects a POST to a step the session has not
	// reached.
	ErrStepOutOfOrder = errors.New("wizard step out of order")
)

// StepResult is the outcome of one step submission.
type StepResult struct {
	// Next is the step to render, when the wizard continues.
	Next Step
	// OutcomeSlug routes the whole wizard to an outcome page when the first
	// step was vetted and rejected. Later steps never run.
	OutcomeSlug string
	// Done carries the final-submission result after the signup step.
	Done *DoneResult
}

// DoneResult is returned once the creation protocol succeeds.
type DoneResult struct {
	Login    *clientdomain.LoginResult
	Client   *clientdomain.Client
	Redirect string
}

// SubmittedPath is where a completed wizard lands.
const SubmittedPath = "/inquiry/submitted"

// OutcomePathPrefix is the base of rejection outcome URLs.
const OutcomePathPrefix = "/inquiry/outcome/"

type Params struct {
	fx.In

	Log       *zap.Logger
	Store     Store
	Rules     eligibility.Rules
	Registry  *eligibility.Registry
	Forecast  forecastdomain.Provider
	Clients   clientdomain.Service
	Inquiries inquirydomain.Service
	Emitter   analytics.Emitter
}

type Service struct {
	log       *zap.Logger
	store     Store
	rules     eligibility.Rules
	registry  *eligibility.Registry
	forecast  forecastdomain.Provider
	clients   clientdomain.Service
	inquiries inquirydomain.Service
	emitter   analytics.Emitter
}

func NewService(p Params) *Service {
	return &Service{
		log:       p.Log.Named("wizard.service"),
		store:     p.Store,
		rules:     p.Rules,
		registry:  p.Registry,
		forecast:  p.Forecast,
		clients:   p.Clients,
		inquiries: p.Inquiries,
		emitter:   p.Emitter,
	}
}

// Begin returns the session's current step, initializing a fresh session at
// the first step.
func (s *Service) Begin(ctx context.Context, sessionID string) (Step, error) {
	step, ok, err := s.store.Current(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		if err := s.store.SetCurrent(ctx, sessionID, StepFirst); err != nil {
			return "", err
		}
		return StepFirst, nil
	}
	return step, nil
}

// FirstStepInitial merges upstream fit-quiz session values into the first
// step's initial values. Prefix-stripped prefill keys never overwrite keys
// the caller set explicitly.
func (s *Service) FirstStepInitial(ctx context.Context, sessionID string, initial map[string]string) (map[string]string, error) {
	if initial == nil {
		initial = map[string]string{}
	}
	prefill, err := s.store.Prefill(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for key, value := range prefill {
		remaining := strings.TrimPrefix(key, PrefillKeyPrefix)
		if _, ok := initial[remaining]; !ok {
			initial[remaining] = value
		}
	}
	return initial, nil
}

// resolveEmail applies the email precedence rules: the email typed on the
// first step always wins over any pre-fill.
func (s *Service) resolveEmail(ctx context.Context, sessionID string, step Step, submitted *FirstStepData) (string, error) {
	if step == StepFirst && submitted != nil && submitted.Email != "" {
		return submitted.Email, nil
	}

	if step != StepFirst {
		first, err := getStep[FirstStepData](ctx, s.store, sessionID, StepFirst)
		if err != nil {
			return "", err
		}
		if first != nil {
			return first.Email, nil
		}
		return "", nil
	}

	initial, err := s.FirstStepInitial(ctx, sessionID, nil)
	if err != nil {
		return "", err
	}
	return initial["email"], nil
}

// guard checks that the session may submit the given step: the current step
// itself, or an earlier step being revised.
func (s *Service) guard(ctx context.Context, sessionID string, step Step) error {
	current, ok, err := s.store.Current(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		current = StepFirst
	}
	if current.Before(step) {
		return ErrStepOutOfOrder
	}
	return nil
}

func (s *Service) advance(ctx context.Context, sessionID string, step Step) error {
	current, ok, err := s.store.Current(ctx, sessionID)
	if err != nil {
		return err
	}
	if ok && step.Before(current) {
		// Revising an earlier step keeps the later position.
		return nil
	}
	return s.store.SetCurrent(ctx, sessionID, step.Next())
}

// SubmitFirst vets the address screen. Only this step is vetted: a rejected
// state or zip code short-circuits the wizard to an outcome page and the
// remaining steps never run.
func (s *Service) SubmitFirst(ctx context.Context, sessionID string, data FirstStepData) (*StepResult, error) {
	if err := s.guard(ctx, sessionID, StepFirst); err != nil {
		return nil, err
	}

	taken, err := s.clients.EmailTaken(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	category, message := s.rules.Classify(data.State, data.ZipCode, s.forecast.Snapshot())
	if category != eligibility.CategoryNone {
		slug, ok := s.registry.Resolve(category)
		if !ok {
			return nil, fmt.Errorf("no outcome slug for category %q", category)
		}
		s.emitStepEvent(ctx, sessionID, StepFirst, message, firstStepEventFields(data))
		return &StepResult{OutcomeSlug: slug}, nil
	}

	if err := putStep(ctx, s.store, sessionID, StepFirst, data); err != nil {
		return nil, err
	}
	if err := s.advance(ctx, sessionID, StepFirst); err != nil {
		return nil, err
	}

	s.emitStepEvent(ctx, sessionID, StepFirst, "submitted", firstStepEventFields(data))
	return &StepResult{Next: StepHome}, nil
}

func (s *Service) SubmitHome(ctx context.Context, sessionID string, data HomeStepData) (*StepResult, error) {
	if err := s.guard(ctx, sessionID, StepHome); err != nil {
		return nil, err
	}
	if err := putStep(ctx, s.store, sessionID, StepHome, data); err != nil {
		return nil, err
	}
	if err := s.advance(ctx, sessionID, StepHome); err != nil {
		return nil, err
	}

	s.emitStepEvent(ctx, sessionID, StepHome, "submitted", map[string]any{
		"property_type":                data.PropertyType,
		"primary_residence":            data.PrimaryResidence != nil && *data.PrimaryResidence,
		"rent_type":                    data.RentType,
		"ten_year_duration_prediction": data.TenYearDurationPrediction,
		"home_value":                   data.HomeValue,
		"household_debt":               data.HouseholdDebt,
	})
	return &StepResult{Next: StepHomeowner}, nil
}

func (s *Service) SubmitHomeowner(ctx context.Context, sessionID string, data HomeownerStepData) (*StepResult, error) {
	if err := s.guard(ctx, sessionID, StepHomeowner); err != nil {
		return nil, err
	}
	if err := putStep(ctx, s.store, sessionID, StepHomeowner, data); err != nil {
		return nil, err
	}
	if err := s.advance(ctx, sessionID, StepHomeowner); err != nil {
		return nil, err
	}

	s.emitStepEvent(ctx, sessionID, StepHomeowner, "submitted", map[string]any{
		"first_name":    data.FirstName,
		"last_name":     data.LastName,
		"referrer_name": data.ReferrerName,
		"notes":         data.Notes,
	})
	return &StepResult{Next: StepSignup}, nil
}

// SubmitSignup stores the final step, assembles the combined submission, and
// runs the creation protocol. Secrets are never written to the session store
// or to analytics.
func (s *Service) SubmitSignup(ctx context.Context, sessionID string, data SignupStepData, ip, userAgent string) (*StepResult, error) {
	if err := s.guard(ctx, sessionID, StepSignup); err != nil {
		return nil, err
	}

	first, err := getStep[FirstStepData](ctx, s.store, sessionID, StepFirst)
	if err != nil {
		return nil, err
	}
	home, err := getStep[HomeStepData](ctx, s.store, sessionID, StepHome)
	if err != nil {
		return nil, err
	}
	homeowner, err := getStep[HomeownerStepData](ctx, s.store, sessionID, StepHomeowner)
	if err != nil {
		return nil, err
	}
	if first == nil || home == nil || homeowner == nil {
		return nil, ErrStepOutOfOrder
	}

	s.emitStepEvent(ctx, sessionID, StepSignup, "submitted", map[string]any{
		"phone_number":   data.PhoneNumber,
		"sms_opt_in":     data.SMSOptIn,
		"agree_to_terms": data.AgreeToTerms,
	})

	// The email from the first step wins over anything typed on signup.
	email, err := s.resolveEmail(ctx, sessionID, StepSignup, nil)
	if err != nil {
		return nil, err
	}
	if email == "" {
		email = data.Email
	}
	submission := assembleSubmission(email, first, home, homeowner, data, ip)
	result, err := s.inquiries.Submit(ctx, submission)
	if err != nil {
		return nil, err
	}

	login, err := s.clients.IssueSession(ctx, clientdomain.IssueSessionRequest{
		Client:    result.Client,
		UserAgent: userAgent,
		IPAddress: ip,
	})
	if err != nil {
		// The inquiry exists; the client just is not logged in yet.
		s.log.Warn("post-signup session issue failed", zap.Error(err))
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.log.Warn("wizard session clear failed", zap.Error(err))
	}

	return &StepResult{
		Next: StepDone,
		Done: &DoneResult{
			Login:    login,
			Client:   result.Client,
			Redirect: SubmittedPath,
		},
	}, nil
}

func assembleSubmission(email string, first *FirstStepData, home *HomeStepData, homeowner *HomeownerStepData, signup SignupStepData, ip string) inquirydomain.Submission {
	primaryResidence := home.PrimaryResidence != nil && *home.PrimaryResidence
	return inquirydomain.Submission{
		Email:        email,
		Password:     signup.Password,
		PhoneNumber:  signup.PhoneNumber,
		SMSOptIn:     signup.SMSOptIn,
		AgreeToTerms: signup.AgreeToTerms,

		Street:  first.Street,
		Unit:    first.Unit,
		City:    first.City,
		State:   first.State,
		ZipCode: first.ZipCode,

		UseCaseDebts:      first.UseCaseDebts,
		UseCaseDiversify:  first.UseCaseDiversify,
		UseCaseRenovate:   first.UseCaseRenovate,
		UseCaseEducation:  first.UseCaseEducation,
		UseCaseBuyHome:    first.UseCaseBuyHome,
		UseCaseBusiness:   first.UseCaseBusiness,
		UseCaseEmergency:  first.UseCaseEmergency,
		UseCaseRetirement: first.UseCaseRetirement,
		UseCaseOther:      first.UseCaseOther,

		PropertyType:              home.PropertyType,
		RentType:                  home.RentType,
		PrimaryResidence:          primaryResidence,
		TenYearDurationPrediction: home.TenYearDurationPrediction,
		HomeValue:                 home.HomeValue,
		HouseholdDebt:             home.HouseholdDebt,

		WhenInterested: homeowner.WhenInterested,
		FirstName:      homeowner.FirstName,
		LastName:       homeowner.LastName,
		ReferrerName:   homeowner.ReferrerName,
		Notes:          homeowner.Notes,

		IPAddress: ip,
	}
}
