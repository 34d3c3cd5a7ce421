package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Property types offered on the home step.
const (
	PropertySingleFamily = "sf"
	PropertyMultiFamily  = "mf"
	PropertyCondo        = "co"
	PropertyVacation     = "va"
)

// Rent-out answers.
const (
	RentNo      = "no"
	RentUnder14 = "under_14"
	RentOver14  = "over_14"
)

// Ten-year duration predictions.
const (
	DurationOver10    = "over_10"
	Duration10OrLess  = "10_or_less"
	DurationDontKnow  = "dont_know"
)

// Inquiry is the persisted submission. Exactly one per client, created only
// at the end of a successful wizard run with the client and address already
// persisted.
type Inquiry struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID  `gorm:"column:client_id;not null;uniqueIndex" json:"client_id"`
	AddressID *snowflake.ID `gorm:"column:address_id" json:"address_id,omitempty"`
	IPAddress string        `gorm:"column:ip_address" json:"ip_address,omitempty"`

	UseCaseDebts      bool   `gorm:"column:use_case_debts;not null;default:false" json:"use_case_debts"`
	UseCaseDiversify  bool   `gorm:"column:use_case_diversify;not null;default:false" json:"use_case_diversify"`
	UseCaseRenovate   bool   `gorm:"column:use_case_renovate;not null;default:false" json:"use_case_renovate"`
	UseCaseEducation  bool   `gorm:"column:use_case_education;not null;default:false" json:"use_case_education"`
	UseCaseBuyHome    bool   `gorm:"column:use_case_buy_home;not null;default:false" json:"use_case_buy_home"`
	UseCaseBusiness   bool   `gorm:"column:use_case_business;not null;default:false" json:"use_case_business"`
	UseCaseEmergency  bool   `gorm:"column:use_case_emergency;not null;default:false" json:"use_case_emergency"`
	UseCaseRetirement bool   `gorm:"column:use_case_retirement;not null;default:false" json:"use_case_retirement"`
	UseCaseOther      string `gorm:"column:use_case_other;not null;default:''" json:"use_case_other"`

	WhenInterested string `gorm:"column:when_interested;not null;default:''" json:"when_interested"`

	PropertyType              string `gorm:"column:property_type;not null" json:"property_type"`
	RentType                  string `gorm:"column:rent_type;not null" json:"rent_type"`
	PrimaryResidence          bool   `gorm:"column:primary_residence;not null" json:"primary_residence"`
	TenYearDurationPrediction string `gorm:"column:ten_year_duration_prediction;not null;default:'10_or_less'" json:"ten_year_duration_prediction"`
	HomeValue                 int64  `gorm:"column:home_value;not null" json:"home_value"`
	HouseholdDebt             int64  `gorm:"column:household_debt;not null" json:"household_debt"`

	FirstName    string `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string `gorm:"column:last_name;not null" json:"last_name"`
	ReferrerName string `gorm:"column:referrer_name;not null;default:''" json:"referrer_name"`
	Notes        string `gorm:"column:notes;not null;default:''" json:"notes"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Inquiry) TableName() string { return "inquiries" }

// FullNameShort joins the homeowner's first and last name.
func (i Inquiry) FullNameShort() string {
	return i.FirstName + " " + i.LastName
}
