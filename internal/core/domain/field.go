package domain

// FieldCategory is the semantic category resolved for a form field.
// Categories are derived from a FieldDescriptor and never stored.
type FieldCategory string

// Known field categories. The zero-ish value is CategoryUnknown.
const (
	CategoryFirstName   FieldCategory = "first_name"
	CategoryLastName    FieldCategory = "last_name"
	CategoryFullName    FieldCategory = "full_name"
	CategoryEmail       FieldCategory = "email"
	CategoryPhone       FieldCategory = "phone"
	CategoryAddress     FieldCategory = "address"
	CategoryCity        FieldCategory = "city"
	CategoryState       FieldCategory = "state"
	CategoryPostalCode  FieldCategory = "postal_code"
	CategoryCountry     FieldCategory = "country"
	CategoryCompany     FieldCategory = "company"
	CategoryJobTitle    FieldCategory = "job_title"
	CategorySalary      FieldCategory = "salary"
	CategoryEducation   FieldCategory = "education"
	CategoryDateOfBirth FieldCategory = "date_of_birth"
	CategoryDate        FieldCategory = "date"
	CategoryWebsite     FieldCategory = "website"
	CategoryUnknown     FieldCategory = "unknown"
)

// String returns the category as a plain string.
func (c FieldCategory) String() string {
	return string(c)
}

// IsKnown reports whether the category carries semantic meaning.
func (c FieldCategory) IsKnown() bool {
	return c != "" && c != CategoryUnknown
}

// FieldDescriptor describes a form field awaiting a suggested value.
// It is request-scoped and never persisted.
type FieldDescriptor struct {
	// Name is the raw field name attribute.
	Name string

	// Label is the inferred label text, if any was found.
	Label string

	// Type is the HTML input type (e.g. "text", "email", "tel").
	Type string

	// Value is the current field value, if any.
	Value string

	// Required reports whether the field is marked required.
	Required bool
}

// Classification is the result of classifying a form field.
type Classification struct {
	// Category is the resolved semantic category.
	Category FieldCategory

	// Sensitive reports whether the field must never be retrieved
	// for or auto-filled (credentials, SSNs, payment data).
	Sensitive bool

	// Skippable reports whether the field should be silently skipped
	// (hidden inputs, captcha/csrf plumbing).
	Skippable bool

	// Confidence is the classification confidence in [0,1].
	// Downstream code trusts retrieval for this field only above
	// the fill threshold.
	Confidence float64
}
