package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/hearthshare/inquiry/internal/address/domain"
)

// Summarize joins client, user, inquiry, and address into the flat property
// map used by the post-submission tracking events. Pure read; calling it
// twice without mutation yields identical output.
func (s *Service) Summarize(ctx context.Context, clientID snowflake.ID) (map[string]any, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	inquiry, err := s.repo.FindByClientID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	var address *addressdomain.Address
	if inquiry.AddressID != nil {
		address, err = s.addressRepo.FindByID(ctx, s.db, *inquiry.AddressID)
		if err != nil {
			return nil, err
		}
	}
	if address == nil {
		address = &addressdomain.Address{}
	}

	consent, err := s.clientRepo.FindSMSConsentByClientID(ctx, s.db, clientID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"tracking_status": "investment inquiry submitted",
		"email":           client.User.Email,
		"phone":           client.PhoneNumber,
		"email_confirmed": client.User.EmailConfirmed, // always false here
		"friendly_id":     client.FriendlyID,
		"first_name":      client.User.FirstName,
		"last_name":       client.User.LastName,

		"use_case_debts":      inquiry.UseCaseDebts,
		"use_case_diversify":  inquiry.UseCaseDiversify,
		"use_case_renovate":   inquiry.UseCaseRenovate,
		"use_case_education":  inquiry.UseCaseEducation,
		"use_case_buy_home":   inquiry.UseCaseBuyHome,
		"use_case_business":   inquiry.UseCaseBusiness,
		"use_case_emergency":  inquiry.UseCaseEmergency,
		"use_case_retirement": inquiry.UseCaseRetirement,

		"when_interested":              inquiry.WhenInterested,
		"household_debt":               inquiry.HouseholdDebt,
		"referrer_name":                inquiry.ReferrerName,
		"property_type":                inquiry.PropertyType,
		"primary_residence":            inquiry.PrimaryResidence,
		"home_value":                   inquiry.HomeValue,
		"ten_year_duration_prediction": inquiry.TenYearDurationPrediction,

		"street":   address.Street,
		"unit":     address.Unit,
		"city":     address.City,
		"state":    address.State,
		"zip_code": address.ZipCode,

		"sms_allowed": consent != nil,
	}, nil
}
