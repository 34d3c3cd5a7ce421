package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/hearthshare/inquiry/internal/address/domain"
	"github.com/hearthshare/inquiry/internal/analytics"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/clock"
	"github.com/hearthshare/inquiry/internal/inquiry/domain"
	lifecycledomain "github.com/hearthshare/inquiry/internal/lifecycle/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventAccountCreated is the server-side summary event fired once per
// successful submission. A similar page-load event is sent client side.
const EventAccountCreated = "investment inquiry - created account - server"

// EventInquiryCreated notifies reviewers that a new inquiry arrived.
const EventInquiryCreated = "inquiry.created"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	AddressRepo addressdomain.Repository
	ClientRepo  clientdomain.Repository
	Clients     clientdomain.Service
	Lifecycle   lifecycledomain.Service
	Emitter     analytics.Emitter
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	addressRepo addressdomain.Repository
	clientRepo  clientdomain.Repository
	clients     clientdomain.Service
	lifecycle   lifecycledomain.Service
	emitter     analytics.Emitter
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("inquiry.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		addressRepo: p.AddressRepo,
		clientRepo:  p.ClientRepo,
		clients:     p.Clients,
		lifecycle:   p.Lifecycle,
		emitter:     p.Emitter,
	}
}

// Submit creates the client account, then the address and inquiry in one
// transaction, then fires the lifecycle transition. The account creation and
// the lifecycle transition each manage their own transaction, so the three
// phases cannot share one; later-phase failures compensate with explicit
// deletes instead.
func (s *Service) Submit(ctx context.Context, submission domain.Submission) (*domain.Result, error) {
	client, err := s.clients.CreateClient(ctx, clientdomain.CreateClientRequest{
		Email:        submission.Email,
		Password:     submission.Password,
		FirstName:    submission.FirstName,
		LastName:     submission.LastName,
		PhoneNumber:  submission.PhoneNumber,
		State:        submission.State,
		IPAddress:    submission.IPAddress,
		SMSOptIn:     submission.SMSOptIn,
		AgreeToTerms: submission.AgreeToTerms,
	})
	if err != nil {
		s.log.Error("user+client save failed", zap.Error(err))
		return nil, domain.ErrSubmissionFailed
	}

	address, inquiry, err := s.createDomainData(ctx, client, submission)
	if err != nil {
		s.log.Error("address/inquiry save failed", zap.Error(err))
		if delErr := s.clients.DeleteClient(ctx, client.ID); delErr != nil {
			s.log.Error("client compensation delete failed", zap.Error(delErr))
		}
		return nil, domain.ErrSubmissionFailed
	}

	if err := s.lifecycle.SubmitInquiry(ctx, client.ID, inquiry.ID); err != nil {
		s.log.Error("client submit inquiry failed", zap.Error(err))
		s.compensate(ctx, client, address, inquiry)
		return nil, domain.ErrSubmissionFailed
	}

	s.emitSummary(ctx, client)
	s.emitter.Emit(client.User.Email, EventInquiryCreated, map[string]any{
		"first_name": inquiry.FirstName,
		"last_name":  inquiry.LastName,
	})

	return &domain.Result{Client: client, Address: address, Inquiry: inquiry}, nil
}

func (s *Service) createDomainData(ctx context.Context, client *clientdomain.Client, submission domain.Submission) (*addressdomain.Address, *domain.Inquiry, error) {
	now := s.clock.Now()
	address := &addressdomain.Address{
		ID:        s.genID.Generate(),
		Street:    submission.Street,
		Unit:      submission.Unit,
		City:      submission.City,
		State:     submission.State,
		ZipCode:   submission.ZipCode,
		CreatedAt: now,
	}
	addressID := address.ID
	inquiry := &domain.Inquiry{
		ID:        s.genID.Generate(),
		ClientID:  client.ID,
		AddressID: &addressID,
		IPAddress: submission.IPAddress,

		UseCaseDebts:      submission.UseCaseDebts,
		UseCaseDiversify:  submission.UseCaseDiversify,
		UseCaseRenovate:   submission.UseCaseRenovate,
		UseCaseEducation:  submission.UseCaseEducation,
		UseCaseBuyHome:    submission.UseCaseBuyHome,
		UseCaseBusiness:   submission.UseCaseBusiness,
		UseCaseEmergency:  submission.UseCaseEmergency,
		UseCaseRetirement: submission.UseCaseRetirement,
		UseCaseOther:      submission.UseCaseOther,

		WhenInterested: submission.WhenInterested,

		PropertyType:              submission.PropertyType,
		RentType:                  submission.RentType,
		PrimaryResidence:          submission.PrimaryResidence,
		TenYearDurationPrediction: submission.TenYearDurationPrediction,
		HomeValue:                 submission.HomeValue,
		HouseholdDebt:             submission.HouseholdDebt,

		FirstName:    submission.FirstName,
		LastName:     submission.LastName,
		ReferrerName: submission.ReferrerName,
		Notes:        submission.Notes,

		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.addressRepo.Insert(ctx, tx, address); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, inquiry)
	})
	if err != nil {
		return nil, nil, err
	}
	return address, inquiry, nil
}

// compensate unwinds everything created by phases 1 and 2. Deletes are best
// effort; a failed delete is logged for manual cleanup.
func (s *Service) compensate(ctx context.Context, client *clientdomain.Client, address *addressdomain.Address, inquiry *domain.Inquiry) {
	if err := s.repo.Delete(ctx, s.db, inquiry.ID); err != nil {
		s.log.Error("inquiry compensation delete failed", zap.Error(err))
	}
	if err := s.addressRepo.Delete(ctx, s.db, address.ID); err != nil {
		s.log.Error("address compensation delete failed", zap.Error(err))
	}
	if err := s.clients.DeleteClient(ctx, client.ID); err != nil {
		s.log.Error("client compensation delete failed", zap.Error(err))
	}
}

func (s *Service) emitSummary(ctx context.Context, client *clientdomain.Client) {
	properties, err := s.Summarize(ctx, client.ID)
	if err != nil {
		s.log.Warn("summary event skipped", zap.Error(err))
		return
	}
	s.emitter.Emit(client.User.Email, EventAccountCreated, properties)
}
