package persistence

// leadSortColumns whitelists sortable lead fields and maps the API field name
// to its column. Anything not listed falls back to the default sort.
var leadSortColumns = map[string]string{
	"fullName":     "full_name",
	"email":        "email",
	"phone":        "phone",
	"city":         "city",
	"propertyType": "property_type",
	"bhk":          "bhk",
	"purpose":      "purpose",
	"budgetMin":    "budget_min",
	"budgetMax":    "budget_max",
	"timeline":     "timeline",
	"source":       "source",
	"status":       "status",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// nullableLeadColumns are columns that may hold NULL; their sort always pushes
// NULL rows to the end regardless of direction.
var nullableLeadColumns = map[string]bool{
	"bhk":        true,
	"budget_min": true,
	"budget_max": true,
}

// leadOrderClause builds a safe ORDER BY clause for the given sort field.
// Unknown fields sort by updated_at descending.
func leadOrderClause(field string, desc bool) string {
	column, ok := leadSortColumns[field]
	if !ok {
		return "updated_at DESC"
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	clause := column + " " + dir
	if nullableLeadColumns[column] {
		clause += " NULLS LAST"
	}
	return clause
}
