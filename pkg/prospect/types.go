package prospect

import (
	"strconv"

	"github.com/google/uuid"
)

// Prospect is a company/contact pair with its precomputed acquisition-fit
// scores. JSON tags match the keys of the source dataset.
//
// The query pipeline treats prospects as immutable.
type Prospect struct {
	// ID is a surrogate row identity assigned at load time. It is not part
	// of the source data and is never used as a rating key.
	ID string `json:"-"`

	// Company identity
	CompanyName        string `json:"Company Name"`
	CompanyLinkedInURL string `json:"Company LinkedIn URL"`

	// Decision maker breakdown
	DecisionMakerStatus1            string `json:"Decision Maker Status 1"`
	DecisionMakerStatus2            string `json:"Decision Maker Status 2"`
	PrimaryDecisionMakers           Number `json:"Primary Decision Makers Count,omitzero"`
	PrimaryDecisionMakersInactive   Number `json:"Primary Decision Makers Count (Inactive),omitzero"`
	SecondaryDecisionMakers         Number `json:"Secondary Decision Makers Count,omitzero"`
	SecondaryDecisionMakersInactive Number `json:"Secondary Decision Makers Count (Inactive),omitzero"`
	NonDecisionMakers               Number `json:"Not a Decision Makers Count,omitzero"`
	NonDecisionMakersInactive       Number `json:"Not a Decision Makers Count (Inactive),omitzero"`
	TotalInactiveContacts           Number `json:"Total Inactive Contacts,omitzero"`
	TotalActiveContacts             Number `json:"Total Active Contacts,omitzero"`
	TotalAllContacts                Number `json:"Total ALL Contacts,omitzero"`

	// Contact identity
	FullName               string `json:"fullName"`
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	LinkedInProfileURL     string `json:"linkedinProfileUrl"`
	LinkedInJobTitle       string `json:"linkedinJobTitle"`
	LinkedInJobDateRange   string `json:"linkedinJobDateRange"`
	CompanyIndustry        string `json:"companyIndustry"`
	Location               string `json:"location"`
	ProfessionalEmail      string `json:"professionalEmail1"`
	LinkedInFollowersCount Number `json:"linkedinFollowersCount,omitzero"`

	// Scores (0-100)
	EstimatedContactAge       Number `json:"Estimated Contact Age,omitzero"`
	BoomerScore               Number `json:"Boomer Score,omitzero"`
	YearsInCurrentRole        Number `json:"Years in Current Role,omitzero"`
	BurnoutScore              Number `json:"Burnout Score,omitzero"`
	IndustryHotnessScore      Number `json:"Industry Hotness Score,omitzero"`
	ContactAccessibilityScore Number `json:"Contact Accessibility Score,omitzero"`
	EducationPedigreeScore    Number `json:"Education Pedigree Score,omitzero"`
	SerialEntrepreneurScore   Number `json:"Serial Entrepreneur Score,omitzero"`
	CompanyMaturityScore      Number `json:"Company Maturity Score,omitzero"`
	CombinedAcquisitionScore  Number `json:"Combined Acquisition Score,omitzero"`
}

// Combined returns the coerced Combined Acquisition Score.
func (p *Prospect) Combined() float64 { return p.CombinedAcquisitionScore.Float() }

// Boomer returns the coerced Boomer Score.
func (p *Prospect) Boomer() float64 { return p.BoomerScore.Float() }

// Burnout returns the coerced Burnout Score.
func (p *Prospect) Burnout() float64 { return p.BurnoutScore.Float() }

// RatingKey identifies a prospect in a ratings map.
type RatingKey string

// Key derives the rating key from full name and company name. Two distinct
// prospects sharing both values map to the same key; ratings set on one
// apply to the other.
func (p *Prospect) Key() RatingKey {
	return RatingKey(p.FullName + "-" + p.CompanyName)
}

// idNamespace scopes surrogate IDs generated by AssignIDs.
var idNamespace = uuid.MustParse("6f1c2a4e-8d0b-5b7e-9a3c-2e4f6d8b0a1c")

// AssignIDs gives every prospect a deterministic surrogate ID derived from
// the dataset source name and the record's position in it. Reloading the
// same source yields the same IDs.
func AssignIDs(source string, prospects []Prospect) {
	for i := range prospects {
		prospects[i].ID = uuid.NewSHA1(idNamespace, []byte(source+"#"+strconv.Itoa(i))).String()
	}
}
