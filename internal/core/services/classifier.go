package services

import (
	"regexp"
	"strings"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

// Classification confidence weights. The base score assumes a bare
// descriptor; signals add evidence and a generic machine name subtracts.
const (
	confidenceBase          = 0.5
	confidenceTypeBonus     = 0.2
	confidenceLabelBonus    = 0.2
	confidenceCategoryBonus = 0.3
	confidenceGenericMalus  = 0.3
)

// sensitiveTerms mark fields that must never be auto-filled or sent to
// retrieval. Terms of three characters or fewer match whole tokens
// only, so "pin" does not flag "shipping".
var sensitiveTerms = []string{
	"password", "passwd", "pwd",
	"ssn", "social_security", "social-security", "socialsecurity",
	"credit_card", "credit-card", "creditcard", "card_number", "cardnumber",
	"cvv", "cvc", "pin",
	"tax_id", "tax-id", "taxid",
}

// skipTerms mark fields that are not worth filling: anti-bot and
// session plumbing rather than user data.
var skipTerms = []string{
	"captcha", "csrf", "token", "security", "verification", "honeypot",
}

// genericNamePattern matches machine-generated field names that carry
// no semantic signal.
var genericNamePattern = regexp.MustCompile(`^(field|input|data)[0-9]*$`)

// categoryEntry binds a category to the name/label substrings that
// select it.
type categoryEntry struct {
	category domain.FieldCategory
	patterns []string
}

// categoryTable is scanned in order and the first match wins. Order
// matters: specific categories come before the ones whose patterns are
// substrings of theirs, so "first_name" resolves before the bare
// "name" pattern of full_name.
var categoryTable = []categoryEntry{
	{domain.CategoryFirstName, []string{"first_name", "firstname", "first-name", "fname", "given_name", "givenname", "given-name"}},
	{domain.CategoryLastName, []string{"last_name", "lastname", "last-name", "lname", "surname", "family_name", "familyname", "family-name"}},
	{domain.CategoryEmail, []string{"email", "e-mail", "e_mail"}},
	{domain.CategoryPhone, []string{"phone", "mobile", "telephone", "cell"}},
	{domain.CategoryDateOfBirth, []string{"date_of_birth", "date-of-birth", "birthdate", "birth_date", "birth-date", "birthday", "dob"}},
	{domain.CategoryPostalCode, []string{"postal_code", "postal-code", "postalcode", "postcode", "zip_code", "zip-code", "zipcode", "zip"}},
	{domain.CategoryCity, []string{"city", "town", "locality"}},
	{domain.CategoryState, []string{"state", "province", "region"}},
	{domain.CategoryCountry, []string{"country", "nation"}},
	{domain.CategoryAddress, []string{"address", "street", "addr"}},
	{domain.CategoryCompany, []string{"company", "employer", "organization", "organisation", "workplace"}},
	{domain.CategoryJobTitle, []string{"job_title", "job-title", "jobtitle", "position", "occupation", "role", "title"}},
	{domain.CategorySalary, []string{"salary", "compensation", "income", "wage", "pay"}},
	{domain.CategoryEducation, []string{"education", "degree", "university", "college", "school", "qualification"}},
	{domain.CategoryWebsite, []string{"website", "homepage", "portfolio", "linkedin", "github", "url"}},
	{domain.CategoryDate, []string{"date"}},
	{domain.CategoryFullName, []string{"full_name", "full-name", "fullname", "name"}},
}

// typeCategories resolves a category from the input type when the name
// and label gave no signal.
var typeCategories = map[string]domain.FieldCategory{
	"email": domain.CategoryEmail,
	"tel":   domain.CategoryPhone,
	"url":   domain.CategoryWebsite,
	"date":  domain.CategoryDate,
}

// Classify resolves a field descriptor to a category with sensitivity,
// skippability and a confidence score. Sensitivity is checked first
// and wins over everything else.
func (s *FieldService) Classify(field domain.FieldDescriptor) domain.Classification {
	name := strings.ToLower(strings.TrimSpace(field.Name))
	label := strings.ToLower(strings.TrimSpace(field.Label))
	fieldType := strings.ToLower(strings.TrimSpace(field.Type))

	if fieldType == "password" || matchesAnyTerm(name, sensitiveTerms) || matchesAnyTerm(label, sensitiveTerms) {
		return domain.Classification{
			Category:  domain.CategoryUnknown,
			Sensitive: true,
		}
	}

	if fieldType == "hidden" || matchesAnyTerm(name, skipTerms) || matchesAnyTerm(label, skipTerms) {
		return domain.Classification{
			Category:  domain.CategoryUnknown,
			Skippable: true,
		}
	}

	category := domain.CategoryUnknown
	for _, entry := range categoryTable {
		if matchesAnyTerm(name, entry.patterns) || matchesAnyTerm(label, entry.patterns) {
			category = entry.category
			break
		}
	}
	if category == domain.CategoryUnknown {
		if c, ok := typeCategories[fieldType]; ok {
			category = c
		}
	}

	confidence := confidenceBase
	if fieldType != "" && fieldType != "text" {
		confidence += confidenceTypeBonus
	}
	if label != "" {
		confidence += confidenceLabelBonus
	}
	if category.IsKnown() {
		confidence += confidenceCategoryBonus
	}
	if genericNamePattern.MatchString(name) {
		confidence -= confidenceGenericMalus
	}
	confidence = clamp01(confidence)

	return domain.Classification{
		Category:   category,
		Confidence: confidence,
	}
}

// matchesAnyTerm reports whether value matches any term. Long terms
// match by substring; terms of three characters or fewer only match a
// whole token of value, to keep short terms from false-flagging.
func matchesAnyTerm(value string, terms []string) bool {
	if value == "" {
		return false
	}
	var tokens []string
	for _, term := range terms {
		if len(term) > 3 {
			if strings.Contains(value, term) {
				return true
			}
			continue
		}
		if tokens == nil {
			tokens = splitTokens(value)
		}
		for _, tok := range tokens {
			if tok == term {
				return true
			}
		}
	}
	return false
}

// splitTokens splits a field name or label on non-alphanumeric runs.
func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
