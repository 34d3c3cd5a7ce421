package wizard

// Step payloads arrive already syntax-validated by the binding layer; the
// wizard only checks business eligibility. Binding tags are the validation
// contract.

// FirstStepData is the address and use-case screen.
type FirstStepData struct {
	Email   string `json:"email" binding:"required,email"`
	Street  string `json:"street" binding:"required"`
	Unit    string `json:"unit"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required,len=2"`
	ZipCode string `json:"zip_code" binding:"required,len=5"`

	UseCaseDebts      bool   `json:"use_case_debts"`
	UseCaseDiversify  bool   `json:"use_case_diversify"`
	UseCaseRenovate   bool   `json:"use_case_renovate"`
	UseCaseEducation  bool   `json:"use_case_education"`
	UseCaseBuyHome    bool   `json:"use_case_buy_home"`
	UseCaseBusiness   bool   `json:"use_case_business"`
	UseCaseEmergency  bool   `json:"use_case_emergency"`
	UseCaseRetirement bool   `json:"use_case_retirement"`
	UseCaseOther      string `json:"use_case_other"`
}

// HomeStepData is the home-details screen.
type HomeStepData struct {
	PropertyType              string `json:"property_type" binding:"required,oneof=sf mf co va"`
	RentType                  string `json:"rent_type" binding:"required,oneof=no under_14 over_14"`
	PrimaryResidence          *bool  `json:"primary_residence" binding:"required"`
	TenYearDurationPrediction string `json:"ten_year_duration_prediction" binding:"required,oneof=over_10 10_or_less dont_know"`
	HomeValue                 int64  `json:"home_value" binding:"required,gt=0"`
	HouseholdDebt             int64  `json:"household_debt" binding:"gte=0"`
}

// HomeownerStepData is the homeowner-details screen.
type HomeownerStepData struct {
	WhenInterested string `json:"when_interested"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	ReferrerName   string `json:"referrer_name"`
	Notes          string `json:"notes" binding:"max=1000"`
}

// SignupStepData is the account-creation screen. Email is optional here
// because it was entered on the first step.
type SignupStepData struct {
	Email        string `json:"email" binding:"omitempty,email"`
	Password     string `json:"password" binding:"required,min=8"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	SMSOptIn     bool   `json:"sms_opt_in"`
	AgreeToTerms bool   `json:"agree_to_terms" binding:"required"`
}
