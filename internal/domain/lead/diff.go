package lead

// FieldChange holds the before and after value of a single field.
// It serializes as a two-element JSON array [old, new].
type FieldChange [2]any

// Diff compares two lead snapshots field by field and returns the minimal
// change set, keyed by field name. Identity and timestamp fields are excluded.
// Each field is compared with semantics matching its type: unset pointers are
// distinct from zero values, and tag sequences compare order-sensitively with
// nil distinct from empty.
func Diff(oldLead, newLead *Lead) map[string]FieldChange {
	changes := make(map[string]FieldChange)

	if oldLead.FullName != newLead.FullName {
		changes["fullName"] = FieldChange{oldLead.FullName, newLead.FullName}
	}
	if oldLead.Email != newLead.Email {
		changes["email"] = FieldChange{oldLead.Email, newLead.Email}
	}
	if oldLead.Phone != newLead.Phone {
		changes["phone"] = FieldChange{oldLead.Phone, newLead.Phone}
	}
	if oldLead.City != newLead.City {
		changes["city"] = FieldChange{oldLead.City, newLead.City}
	}
	if oldLead.PropertyType != newLead.PropertyType {
		changes["propertyType"] = FieldChange{oldLead.PropertyType, newLead.PropertyType}
	}
	if !bhkEqual(oldLead.BHK, newLead.BHK) {
		changes["bhk"] = FieldChange{bhkValue(oldLead.BHK), bhkValue(newLead.BHK)}
	}
	if oldLead.Purpose != newLead.Purpose {
		changes["purpose"] = FieldChange{oldLead.Purpose, newLead.Purpose}
	}
	if !budgetEqual(oldLead.BudgetMin, newLead.BudgetMin) {
		changes["budgetMin"] = FieldChange{budgetValue(oldLead.BudgetMin), budgetValue(newLead.BudgetMin)}
	}
	if !budgetEqual(oldLead.BudgetMax, newLead.BudgetMax) {
		changes["budgetMax"] = FieldChange{budgetValue(oldLead.BudgetMax), budgetValue(newLead.BudgetMax)}
	}
	if oldLead.Timeline != newLead.Timeline {
		changes["timeline"] = FieldChange{oldLead.Timeline, newLead.Timeline}
	}
	if oldLead.Source != newLead.Source {
		changes["source"] = FieldChange{oldLead.Source, newLead.Source}
	}
	if oldLead.Status != newLead.Status {
		changes["status"] = FieldChange{oldLead.Status, newLead.Status}
	}
	if oldLead.Notes != newLead.Notes {
		changes["notes"] = FieldChange{oldLead.Notes, newLead.Notes}
	}
	if !tagsEqual(oldLead.Tags, newLead.Tags) {
		changes["tags"] = FieldChange{tagsValue(oldLead.Tags), tagsValue(newLead.Tags)}
	}
	if oldLead.OwnerID != newLead.OwnerID {
		changes["ownerId"] = FieldChange{oldLead.OwnerID.String(), newLead.OwnerID.String()}
	}

	return changes
}

func bhkEqual(a, b *BHK) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func bhkValue(b *BHK) any {
	if b == nil {
		return nil
	}
	return *b
}

func budgetEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func budgetValue(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// tagsEqual is order-sensitive; a nil sequence is not equal to an empty one.
func tagsEqual(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func tagsValue(tags []string) any {
	if tags == nil {
		return nil
	}
	return tags
}
