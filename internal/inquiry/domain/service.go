package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/hearthshare/inquiry/internal/address/domain"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"gorm.io/gorm"
)

// Submission is the assembled output of all four wizard steps.
type Submission struct {
	// Signup credentials (email grafted from the first step).
	Email        string
	Password     string
	PhoneNumber  string
	SMSOptIn     bool
	AgreeToTerms bool

	// Property address from the first step.
	Street  string
	Unit    string
	City    string
	State   string
	ZipCode string

	// Use cases from the first step.
	UseCaseDebts      bool
	UseCaseDiversify  bool
	UseCaseRenovate   bool
	UseCaseEducation  bool
	UseCaseBuyHome    bool
	UseCaseBusiness   bool
	UseCaseEmergency  bool
	UseCaseRetirement bool
	UseCaseOther      string

	// Home step.
	PropertyType              string
	RentType                  string
	PrimaryResidence          bool
	TenYearDurationPrediction string
	HomeValue                 int64
	HouseholdDebt             int64

	// Homeowner step.
	WhenInterested string
	FirstName      string
	LastName       string
	ReferrerName   string
	Notes          string

	// Request metadata.
	IPAddress string
}

type Result struct {
	Client  *clientdomain.Client
	Address *addressdomain.Address
	Inquiry *Inquiry
}

type Service interface {
	// Submit runs the three-phase creation protocol: account, then
	// address+inquiry in one transaction, then the lifecycle transition.
	// Any later-phase failure deletes everything created by earlier phases.
	Submit(ctx context.Context, submission Submission) (*Result, error)
	// Summarize flattens client, user, inquiry, and address into one
	// key-value map for the post-submission tracking event.
	Summarize(ctx context.Context, clientID snowflake.ID) (map[string]any, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inquiry *Inquiry) error
	FindByClientID(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (*Inquiry, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

var (
	// ErrSubmissionFailed is terminal for the attempt; the user must resubmit
	// from scratch.
	ErrSubmissionFailed = errors.New("inquiry submission failed")
	ErrNoInquiry        = errors.New("client has no inquiry")
)
