package prospect

import (
	"math"
	"strconv"
)

// Kind classifies how a field's value is read and rendered.
type Kind int

const (
	// KindText is a plain string field.
	KindText Kind = iota
	// KindScore is a 0-100 score rendered with fixed precision.
	KindScore
	// KindCount is a numeric count or measurement rendered as-is.
	KindCount
	// KindRating is the per-session star rating pseudo-column. It has no
	// backing value on the record.
	KindRating
)

// Field identifiers. Apart from ColumnRating these are the dataset's JSON
// keys and double as CSV headers.
const (
	ColumnRating = "rating"

	FieldCompanyName        = "Company Name"
	FieldCompanyLinkedInURL = "Company LinkedIn URL"

	FieldDecisionMakerStatus1            = "Decision Maker Status 1"
	FieldDecisionMakerStatus2            = "Decision Maker Status 2"
	FieldPrimaryDecisionMakers           = "Primary Decision Makers Count"
	FieldPrimaryDecisionMakersInactive   = "Primary Decision Makers Count (Inactive)"
	FieldSecondaryDecisionMakers         = "Secondary Decision Makers Count"
	FieldSecondaryDecisionMakersInactive = "Secondary Decision Makers Count (Inactive)"
	FieldNonDecisionMakers               = "Not a Decision Makers Count"
	FieldNonDecisionMakersInactive       = "Not a Decision Makers Count (Inactive)"
	FieldTotalInactiveContacts           = "Total Inactive Contacts"
	FieldTotalActiveContacts             = "Total Active Contacts"
	FieldTotalAllContacts                = "Total ALL Contacts"

	FieldFullName               = "fullName"
	FieldFirstName              = "firstName"
	FieldLastName               = "lastName"
	FieldLinkedInProfileURL     = "linkedinProfileUrl"
	FieldLinkedInJobTitle       = "linkedinJobTitle"
	FieldLinkedInJobDateRange   = "linkedinJobDateRange"
	FieldCompanyIndustry        = "companyIndustry"
	FieldLocation               = "location"
	FieldProfessionalEmail      = "professionalEmail1"
	FieldLinkedInFollowersCount = "linkedinFollowersCount"

	FieldEstimatedContactAge       = "Estimated Contact Age"
	FieldBoomerScore               = "Boomer Score"
	FieldYearsInCurrentRole        = "Years in Current Role"
	FieldBurnoutScore              = "Burnout Score"
	FieldIndustryHotnessScore      = "Industry Hotness Score"
	FieldContactAccessibilityScore = "Contact Accessibility Score"
	FieldEducationPedigreeScore    = "Education Pedigree Score"
	FieldSerialEntrepreneurScore   = "Serial Entrepreneur Score"
	FieldCompanyMaturityScore      = "Company Maturity Score"
	FieldCombinedAcquisitionScore  = "Combined Acquisition Score"
)

// Field describes one column of a prospect: its identifier, display label,
// kind, and how to read it from a record.
type Field struct {
	ID    string
	Label string
	Kind  Kind

	text func(*Prospect) string
	num  func(*Prospect) Number
}

// Raw returns the field value as stored, in the form used for export.
// Numeric fields render their original text; missing values are empty.
func (f Field) Raw(p *Prospect) string {
	switch {
	case f.text != nil:
		return f.text(p)
	case f.num != nil:
		return f.num(p).String()
	default:
		return ""
	}
}

// Number returns the underlying lenient value for numeric fields.
func (f Field) Number(p *Prospect) (Number, bool) {
	if f.num == nil {
		return Number{}, false
	}
	return f.num(p), true
}

// Float returns the coerced numeric value of the field. Text fields and the
// rating pseudo-column yield 0.
func (f Field) Float(p *Prospect) float64 {
	if f.num == nil {
		return 0
	}
	return f.num(p).Float()
}

// IsString reports whether the field's value on p is textual. Only textual
// values are candidates for CSV quoting.
func (f Field) IsString(p *Prospect) bool {
	if f.text != nil {
		return true
	}
	if f.num != nil {
		return f.num(p).IsString()
	}
	return false
}

// Display renders the field for a table cell.
//
// The combined score shows one decimal and other scores none. Age and
// tenure show "-" when empty or zero, and contact totals show "0".
func (f Field) Display(p *Prospect) string {
	switch f.Kind {
	case KindScore:
		if f.ID == FieldCombinedAcquisitionScore {
			return FormatScore(f.Float(p), 1)
		}
		return FormatScore(f.Float(p), 0)
	case KindCount:
		n, _ := f.Number(p)
		if n.Truthy() {
			return n.String()
		}
		if f.ID == FieldTotalAllContacts {
			return "0"
		}
		return "-"
	case KindRating:
		return ""
	default:
		return f.Raw(p)
	}
}

// FormatScore formats v with the given number of decimals, rounding halves
// away from zero.
func FormatScore(v float64, decimals int) string {
	pow := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(v*pow)/pow, 'f', decimals, 64)
}

func textField(id, label string, get func(*Prospect) string) Field {
	return Field{ID: id, Label: label, Kind: KindText, text: get}
}

func numField(id, label string, kind Kind, get func(*Prospect) Number) Field {
	return Field{ID: id, Label: label, Kind: kind, num: get}
}

var allFields = []Field{
	{ID: ColumnRating, Label: "My Rating", Kind: KindRating},

	textField(FieldCompanyName, "Company", func(p *Prospect) string { return p.CompanyName }),
	textField(FieldCompanyLinkedInURL, "Company URL", func(p *Prospect) string { return p.CompanyLinkedInURL }),

	textField(FieldDecisionMakerStatus1, "Decision Maker", func(p *Prospect) string { return p.DecisionMakerStatus1 }),
	textField(FieldDecisionMakerStatus2, "Decision Maker 2", func(p *Prospect) string { return p.DecisionMakerStatus2 }),
	numField(FieldPrimaryDecisionMakers, "Primary DMs", KindCount, func(p *Prospect) Number { return p.PrimaryDecisionMakers }),
	numField(FieldPrimaryDecisionMakersInactive, "Primary DMs (Inactive)", KindCount, func(p *Prospect) Number { return p.PrimaryDecisionMakersInactive }),
	numField(FieldSecondaryDecisionMakers, "Secondary DMs", KindCount, func(p *Prospect) Number { return p.SecondaryDecisionMakers }),
	numField(FieldSecondaryDecisionMakersInactive, "Secondary DMs (Inactive)", KindCount, func(p *Prospect) Number { return p.SecondaryDecisionMakersInactive }),
	numField(FieldNonDecisionMakers, "Non-DMs", KindCount, func(p *Prospect) Number { return p.NonDecisionMakers }),
	numField(FieldNonDecisionMakersInactive, "Non-DMs (Inactive)", KindCount, func(p *Prospect) Number { return p.NonDecisionMakersInactive }),
	numField(FieldTotalInactiveContacts, "Inactive Contacts", KindCount, func(p *Prospect) Number { return p.TotalInactiveContacts }),
	numField(FieldTotalActiveContacts, "Active Contacts", KindCount, func(p *Prospect) Number { return p.TotalActiveContacts }),
	numField(FieldTotalAllContacts, "Contacts", KindCount, func(p *Prospect) Number { return p.TotalAllContacts }),

	textField(FieldFullName, "Contact", func(p *Prospect) string { return p.FullName }),
	textField(FieldFirstName, "First Name", func(p *Prospect) string { return p.FirstName }),
	textField(FieldLastName, "Last Name", func(p *Prospect) string { return p.LastName }),
	textField(FieldLinkedInProfileURL, "Profile", func(p *Prospect) string { return p.LinkedInProfileURL }),
	textField(FieldLinkedInJobTitle, "Title", func(p *Prospect) string { return p.LinkedInJobTitle }),
	textField(FieldLinkedInJobDateRange, "Tenure", func(p *Prospect) string { return p.LinkedInJobDateRange }),
	textField(FieldCompanyIndustry, "Industry", func(p *Prospect) string { return p.CompanyIndustry }),
	textField(FieldLocation, "Location", func(p *Prospect) string { return p.Location }),
	textField(FieldProfessionalEmail, "Email", func(p *Prospect) string { return p.ProfessionalEmail }),
	numField(FieldLinkedInFollowersCount, "Followers", KindCount, func(p *Prospect) Number { return p.LinkedInFollowersCount }),

	numField(FieldEstimatedContactAge, "Age", KindCount, func(p *Prospect) Number { return p.EstimatedContactAge }),
	numField(FieldBoomerScore, "Boomer", KindScore, func(p *Prospect) Number { return p.BoomerScore }),
	numField(FieldYearsInCurrentRole, "Years", KindCount, func(p *Prospect) Number { return p.YearsInCurrentRole }),
	numField(FieldBurnoutScore, "Burnout", KindScore, func(p *Prospect) Number { return p.BurnoutScore }),
	numField(FieldIndustryHotnessScore, "Hotness", KindScore, func(p *Prospect) Number { return p.IndustryHotnessScore }),
	numField(FieldContactAccessibilityScore, "Access", KindScore, func(p *Prospect) Number { return p.ContactAccessibilityScore }),
	numField(FieldEducationPedigreeScore, "Education", KindScore, func(p *Prospect) Number { return p.EducationPedigreeScore }),
	numField(FieldSerialEntrepreneurScore, "Entrepreneur", KindScore, func(p *Prospect) Number { return p.SerialEntrepreneurScore }),
	numField(FieldCompanyMaturityScore, "Maturity", KindScore, func(p *Prospect) Number { return p.CompanyMaturityScore }),
	numField(FieldCombinedAcquisitionScore, "Score", KindScore, func(p *Prospect) Number { return p.CombinedAcquisitionScore }),
}

var fieldIndex = func() map[string]Field {
	m := make(map[string]Field, len(allFields))
	for _, f := range allFields {
		m[f.ID] = f
	}
	return m
}()

// LookupField returns the field with the given identifier.
func LookupField(id string) (Field, bool) {
	f, ok := fieldIndex[id]
	return f, ok
}

// MustField returns the field with the given identifier and panics if it
// does not exist. Intended for package-level tables of known identifiers.
func MustField(id string) Field {
	f, ok := fieldIndex[id]
	if !ok {
		panic("prospect: unknown field " + strconv.Quote(id))
	}
	return f
}

// AllFields returns every known field, starting with the rating column and
// then in dataset order.
func AllFields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ToggleableColumns lists the columns a user may show or hide, in the
// order they are presented and rendered.
func ToggleableColumns() []string {
	return []string{
		ColumnRating,
		FieldCombinedAcquisitionScore,
		FieldCompanyName,
		FieldFullName,
		FieldLinkedInJobTitle,
		FieldCompanyIndustry,
		FieldBoomerScore,
		FieldBurnoutScore,
		FieldIndustryHotnessScore,
		FieldContactAccessibilityScore,
		FieldEducationPedigreeScore,
		FieldSerialEntrepreneurScore,
		FieldCompanyMaturityScore,
		FieldEstimatedContactAge,
		FieldYearsInCurrentRole,
		FieldTotalAllContacts,
	}
}

// DefaultVisibleColumns lists the columns visible in a fresh session, in
// the order they were enabled. That order is also the CSV column order.
func DefaultVisibleColumns() []string {
	return []string{
		ColumnRating,
		FieldCombinedAcquisitionScore,
		FieldCompanyName,
		FieldFullName,
		FieldLinkedInJobTitle,
		FieldBoomerScore,
		FieldBurnoutScore,
		FieldIndustryHotnessScore,
		FieldCompanyIndustry,
		FieldEstimatedContactAge,
		FieldYearsInCurrentRole,
	}
}

// Tier is the colour band a score falls into.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierLow       Tier = "low"
)

// ScoreTier classifies a score for colouring: 70 and above is excellent,
// 50 good, 30 fair, anything lower is low.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 70:
		return TierExcellent
	case score >= 50:
		return TierGood
	case score >= 30:
		return TierFair
	default:
		return TierLow
	}
}

// Stars renders a 1-5 rating as filled and empty stars. Ratings outside
// the range render as five empty stars.
func Stars(rating int) string {
	const filled, empty = "★", "☆"
	out := make([]byte, 0, 5*len(filled))
	for i := 1; i <= 5; i++ {
		if rating >= 1 && rating <= 5 && i <= rating {
			out = append(out, filled...)
		} else {
			out = append(out, empty...)
		}
	}
	return string(out)
}
