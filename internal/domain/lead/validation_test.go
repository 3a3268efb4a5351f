package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() Candidate {
	bhk := BHK2
	return Candidate{
		FullName:     "Priya Sharma",
		Email:        "priya@example.com",
		Phone:        "9876543210",
		City:         CityChandigarh,
		PropertyType: PropertyApartment,
		BHK:          &bhk,
		Purpose:      PurposeBuy,
		Timeline:     TimelineZeroToThree,
		Source:       SourceWebsite,
		Status:       StatusNew,
	}
}

func TestValidate_ValidCandidate(t *testing.T) {
	c := validCandidate()
	assert.Nil(t, c.Validate())
}

func TestValidate_FullName(t *testing.T) {
	c := validCandidate()
	c.FullName = "A"
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgFullNameTooShort}, errs["fullName"])

	c.FullName = strings.Repeat("x", 81)
	errs = c.Validate()
	assert.Equal(t, []string{MsgFullNameTooLong}, errs["fullName"])

	c.FullName = strings.Repeat("x", 80)
	assert.Nil(t, c.Validate())
}

func TestValidate_FullNameCountsRunes(t *testing.T) {
	// Multi-byte names are measured in characters, not bytes.
	c := validCandidate()
	c.FullName = strings.Repeat("ра", 40) // 80 runes, 160 bytes
	assert.Nil(t, c.Validate())

	c.FullName = strings.Repeat("ра", 40) + "м"
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgFullNameTooLong}, errs["fullName"])
}

func TestValidate_EmailOptional(t *testing.T) {
	c := validCandidate()
	c.Email = ""
	assert.Nil(t, c.Validate())

	c.Email = "not-an-email"
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidEmail}, errs["email"])
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		want  []string
	}{
		{"9876543210", nil},
		{"123456789012345", nil},
		{"123456789", []string{MsgPhoneTooShort}},
		{"1234567890123456", []string{MsgPhoneTooLong}},
		{"98765abcde", []string{MsgPhoneNotDigits}},
		{"", []string{MsgPhoneTooShort}},
	}

	for _, tt := range tests {
		c := validCandidate()
		c.Phone = tt.phone
		errs := c.Validate()
		if tt.want == nil {
			assert.Nil(t, errs, "phone %q", tt.phone)
		} else {
			require.NotNil(t, errs, "phone %q", tt.phone)
			assert.Equal(t, tt.want, errs["phone"], "phone %q", tt.phone)
		}
	}
}

func TestValidate_EnumFields(t *testing.T) {
	c := validCandidate()
	c.City = "Atlantis"
	c.PropertyType = "Castle"
	c.Purpose = "Lease"
	c.Timeline = "someday"
	c.Source = "Telepathy"
	c.Status = "Paused"

	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidCity}, errs["city"])
	assert.Equal(t, []string{MsgInvalidProperty}, errs["propertyType"])
	assert.Equal(t, []string{MsgInvalidPurpose}, errs["purpose"])
	assert.Equal(t, []string{MsgInvalidTimeline}, errs["timeline"])
	assert.Equal(t, []string{MsgInvalidSource}, errs["source"])
	assert.Equal(t, []string{MsgInvalidStatus}, errs["status"])
}

func TestValidate_BHKRequiredForResidential(t *testing.T) {
	for _, pt := range []PropertyType{PropertyApartment, PropertyVilla} {
		c := validCandidate()
		c.PropertyType = pt
		c.BHK = nil
		errs := c.Validate()
		require.NotNil(t, errs, "property %s", pt)
		assert.Equal(t, []string{MsgBHKRequired}, errs["bhk"], "property %s", pt)
	}

	for _, pt := range []PropertyType{PropertyPlot, PropertyOffice, PropertyRetail} {
		c := validCandidate()
		c.PropertyType = pt
		c.BHK = nil
		assert.Nil(t, c.Validate(), "property %s", pt)
	}
}

func TestValidate_InvalidBHKValue(t *testing.T) {
	c := validCandidate()
	bad := BHK("5")
	c.BHK = &bad
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidBHK}, errs["bhk"])
}

func TestValidate_Budgets(t *testing.T) {
	c := validCandidate()
	min := int64(500000)
	max := int64(400000)
	c.BudgetMin = &min
	c.BudgetMax = &max
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgBudgetMaxBelowMin}, errs["budgetMax"])

	// Equal budgets are allowed.
	max = min
	assert.Nil(t, c.Validate())

	zero := int64(0)
	c.BudgetMin = &zero
	errs = c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgBudgetNotPositive}, errs["budgetMin"])

	// One-sided budgets skip the ordering check.
	c = validCandidate()
	c.BudgetMax = &max
	assert.Nil(t, c.Validate())
}

func TestValidate_NotesLength(t *testing.T) {
	c := validCandidate()
	c.Notes = strings.Repeat("n", 1000)
	assert.Nil(t, c.Validate())

	c.Notes = strings.Repeat("n", 1001)
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgNotesTooLong}, errs["notes"])

	// 1000 multi-byte characters still fit.
	c.Notes = strings.Repeat("ध", 1000)
	assert.Nil(t, c.Validate())

	c.Notes = strings.Repeat("ध", 1001)
	errs = c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgNotesTooLong}, errs["notes"])
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	c := Candidate{FullName: "A", Phone: "12"}
	errs := c.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{"city", "fullName", "phone", "propertyType", "purpose", "source", "status", "timeline"}, errs.Fields())
}

func TestValidatePartial_RequiresNameAndPhone(t *testing.T) {
	c := Candidate{}
	errs := c.ValidatePartial()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgRequiredForImport}, errs["record"])

	c = Candidate{FullName: "Priya Sharma", Phone: "9876543210"}
	assert.Nil(t, c.ValidatePartial())
}

func TestValidatePartial_ChecksOnlySetFields(t *testing.T) {
	c := Candidate{
		FullName: "Priya Sharma",
		Phone:    "9876543210",
		City:     "Atlantis",
	}
	errs := c.ValidatePartial()
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidCity}, errs["city"])
	assert.NotContains(t, errs, "purpose")
	assert.NotContains(t, errs, "status")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{}
	errs.Add("phone", MsgPhoneTooShort)
	errs.Add("fullName", MsgFullNameTooShort)

	msg := errs.Error()
	assert.Contains(t, msg, "validation failed: ")
	// Fields are reported in stable alphabetical order.
	assert.Less(t, strings.Index(msg, "fullName"), strings.Index(msg, "phone"))
}

func TestValidationErrors_Merge(t *testing.T) {
	a := ValidationErrors{}
	a.Add("phone", MsgPhoneTooShort)
	b := ValidationErrors{}
	b.Add("phone", MsgPhoneNotDigits)
	b.Add("email", MsgInvalidEmail)

	a.Merge(b)
	assert.Equal(t, []string{MsgPhoneTooShort, MsgPhoneNotDigits}, a["phone"])
	assert.Equal(t, []string{MsgInvalidEmail}, a["email"])
}
