package lead

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseLead() *Lead {
	c := validCandidate()
	return New(c, uuid.New())
}

func TestDiff_NoChanges(t *testing.T) {
	l := baseLead()
	snapshot := *l
	assert.Empty(t, Diff(&snapshot, l))
}

func TestDiff_ScalarFields(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead
	newLead.FullName = "Priya S"
	newLead.Status = StatusContacted
	newLead.Notes = "left voicemail"

	changes := Diff(oldLead, &newLead)
	require.Len(t, changes, 3)
	assert.Equal(t, FieldChange{"Priya Sharma", "Priya S"}, changes["fullName"])
	assert.Equal(t, FieldChange{StatusNew, StatusContacted}, changes["status"])
	assert.Equal(t, FieldChange{"", "left voicemail"}, changes["notes"])
}

func TestDiff_IgnoresIdentityAndTimestamps(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead
	newLead.IncrementVersion()
	newLead.UpdatedAt = newLead.UpdatedAt.Add(1)

	assert.Empty(t, Diff(oldLead, &newLead))
}

func TestDiff_BudgetPointers(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead

	set := int64(500000)
	newLead.BudgetMin = &set

	changes := Diff(oldLead, &newLead)
	require.Contains(t, changes, "budgetMin")
	assert.Equal(t, FieldChange{nil, int64(500000)}, changes["budgetMin"])

	// Same value behind different pointers is not a change.
	a, b := int64(750000), int64(750000)
	oldLead.BudgetMax = &a
	newLead.BudgetMax = &b
	changes = Diff(oldLead, &newLead)
	assert.NotContains(t, changes, "budgetMax")

	// Clearing a budget is a change back to nil.
	newLead.BudgetMin = nil
	newLead.BudgetMax = nil
	changes = Diff(oldLead, &newLead)
	assert.Equal(t, FieldChange{int64(750000), nil}, changes["budgetMax"])
}

func TestDiff_BHKPointers(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead

	three := BHK3
	newLead.BHK = &three
	changes := Diff(oldLead, &newLead)
	assert.Equal(t, FieldChange{BHK2, BHK3}, changes["bhk"])

	newLead.BHK = nil
	changes = Diff(oldLead, &newLead)
	assert.Equal(t, FieldChange{BHK2, nil}, changes["bhk"])
}

func TestDiff_Tags(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead

	// nil and empty are distinct states.
	newLead.Tags = []string{}
	changes := Diff(oldLead, &newLead)
	require.Contains(t, changes, "tags")

	// Order matters.
	oldLead.Tags = []string{"hot", "nri"}
	newLead.Tags = []string{"nri", "hot"}
	changes = Diff(oldLead, &newLead)
	assert.Equal(t, FieldChange{[]string{"hot", "nri"}, []string{"nri", "hot"}}, changes["tags"])

	newLead.Tags = []string{"hot", "nri"}
	changes = Diff(oldLead, &newLead)
	assert.NotContains(t, changes, "tags")
}

func TestDiff_OwnerReassignment(t *testing.T) {
	oldLead := baseLead()
	newLead := *oldLead
	newOwner := uuid.New()
	newLead.OwnerID = newOwner

	changes := Diff(oldLead, &newLead)
	assert.Equal(t, FieldChange{oldLead.OwnerID.String(), newOwner.String()}, changes["ownerId"])
}

func TestFieldChange_JSONShape(t *testing.T) {
	change := FieldChange{"New", "Qualified"}
	data, err := json.Marshal(change)
	require.NoError(t, err)
	assert.JSONEq(t, `["New","Qualified"]`, string(data))

	var decoded FieldChange
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "New", decoded[0])
	assert.Equal(t, "Qualified", decoded[1])
}
