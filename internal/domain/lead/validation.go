package lead

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Validation message texts. These are user-facing and relied on by clients,
// so they must not be reworded casually.
const (
	MsgFullNameTooShort  = "Full name must be at least 2 characters."
	MsgFullNameTooLong   = "Full name must be 80 characters or less."
	MsgInvalidEmail      = "Invalid email address."
	MsgPhoneTooShort     = "Phone number must be at least 10 digits."
	MsgPhoneTooLong      = "Phone number cannot exceed 15 digits."
	MsgPhoneNotDigits    = "Phone number must contain only digits."
	MsgInvalidCity       = "Invalid city."
	MsgInvalidProperty   = "Invalid property type."
	MsgInvalidBHK        = "Invalid BHK value."
	MsgInvalidPurpose    = "Invalid purpose."
	MsgBudgetNotPositive = "Budget must be a positive number."
	MsgInvalidTimeline   = "Invalid timeline."
	MsgInvalidSource     = "Invalid source."
	MsgInvalidStatus     = "Invalid status."
	MsgNotesTooLong      = "Notes cannot exceed 1000 characters."
	MsgBHKRequired       = "BHK is required for Apartments and Villas."
	MsgBudgetMaxBelowMin = "Max budget must be greater than or equal to min budget."
	MsgRequiredForImport = "fullName and phone are required for import."
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitRegex = regexp.MustCompile(`^\d+$`)
)

// ValidationErrors maps a field name to its ordered list of error messages.
// It implements error so services can return it directly.
type ValidationErrors map[string][]string

// Error implements the error interface
func (v ValidationErrors) Error() string {
	fields := v.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, strings.Join(v[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message for a field
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Fields returns the failing field names in a stable order
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Merge folds other's messages into v
func (v ValidationErrors) Merge(other ValidationErrors) {
	for field, msgs := range other {
		v[field] = append(v[field], msgs...)
	}
}

// Validate applies the full rule set: every mandatory field must satisfy its
// constraint and both cross-field invariants must hold. All failures are
// collected; a nil return means the candidate is valid.
func (c *Candidate) Validate() ValidationErrors {
	errs := ValidationErrors{}

	validateFullName(c.FullName, errs)
	validateEmail(c.Email, errs)
	validatePhone(c.Phone, errs)

	if !c.City.IsValid() {
		errs.Add("city", MsgInvalidCity)
	}
	if !c.PropertyType.IsValid() {
		errs.Add("propertyType", MsgInvalidProperty)
	}
	if c.BHK != nil && !c.BHK.IsValid() {
		errs.Add("bhk", MsgInvalidBHK)
	}
	if !c.Purpose.IsValid() {
		errs.Add("purpose", MsgInvalidPurpose)
	}
	validateBudget(c.BudgetMin, "budgetMin", errs)
	validateBudget(c.BudgetMax, "budgetMax", errs)
	if !c.Timeline.IsValid() {
		errs.Add("timeline", MsgInvalidTimeline)
	}
	if !c.Source.IsValid() {
		errs.Add("source", MsgInvalidSource)
	}
	if !c.Status.IsValid() {
		errs.Add("status", MsgInvalidStatus)
	}
	if utf8.RuneCountInString(c.Notes) > 1000 {
		errs.Add("notes", MsgNotesTooLong)
	}

	// Cross-field invariants
	if c.PropertyType.IsResidential() && c.BHK == nil {
		errs.Add("bhk", MsgBHKRequired)
	}
	if c.BudgetMin != nil && c.BudgetMax != nil && *c.BudgetMax < *c.BudgetMin {
		errs.Add("budgetMax", MsgBudgetMaxBelowMin)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidatePartial applies the lenient rule set used as the first import pass:
// full name and phone are mandatory, every other field is checked only when
// set. A record that passes must still be re-validated with Validate.
func (c *Candidate) ValidatePartial() ValidationErrors {
	errs := ValidationErrors{}

	if c.FullName == "" || c.Phone == "" {
		errs.Add("record", MsgRequiredForImport)
	}
	if c.FullName != "" {
		validateFullName(c.FullName, errs)
	}
	validateEmail(c.Email, errs)
	if c.Phone != "" {
		validatePhone(c.Phone, errs)
	}
	if c.City != "" && !c.City.IsValid() {
		errs.Add("city", MsgInvalidCity)
	}
	if c.PropertyType != "" && !c.PropertyType.IsValid() {
		errs.Add("propertyType", MsgInvalidProperty)
	}
	if c.BHK != nil && !c.BHK.IsValid() {
		errs.Add("bhk", MsgInvalidBHK)
	}
	if c.Purpose != "" && !c.Purpose.IsValid() {
		errs.Add("purpose", MsgInvalidPurpose)
	}
	validateBudget(c.BudgetMin, "budgetMin", errs)
	validateBudget(c.BudgetMax, "budgetMax", errs)
	if c.Timeline != "" && !c.Timeline.IsValid() {
		errs.Add("timeline", MsgInvalidTimeline)
	}
	if c.Source != "" && !c.Source.IsValid() {
		errs.Add("source", MsgInvalidSource)
	}
	if c.Status != "" && !c.Status.IsValid() {
		errs.Add("status", MsgInvalidStatus)
	}
	if utf8.RuneCountInString(c.Notes) > 1000 {
		errs.Add("notes", MsgNotesTooLong)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Name limits count characters, not bytes, so multi-byte names are measured
// the same way a user would count them.
func validateFullName(name string, errs ValidationErrors) {
	runes := utf8.RuneCountInString(name)
	if runes < 2 {
		errs.Add("fullName", MsgFullNameTooShort)
	}
	if runes > 80 {
		errs.Add("fullName", MsgFullNameTooLong)
	}
}

func validateEmail(email string, errs ValidationErrors) {
	// Email is optional: empty means unset.
	if email != "" && !emailRegex.MatchString(email) {
		errs.Add("email", MsgInvalidEmail)
	}
}

func validatePhone(phone string, errs ValidationErrors) {
	if len(phone) < 10 {
		errs.Add("phone", MsgPhoneTooShort)
	}
	if len(phone) > 15 {
		errs.Add("phone", MsgPhoneTooLong)
	}
	if phone != "" && !digitRegex.MatchString(phone) {
		errs.Add("phone", MsgPhoneNotDigits)
	}
}

func validateBudget(value *int64, field string, errs ValidationErrors) {
	if value != nil && *value <= 0 {
		errs.Add(field, MsgBudgetNotPositive)
	}
}
