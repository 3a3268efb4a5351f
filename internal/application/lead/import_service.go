package lead

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/infrastructure/csv"
)

// maxImportRows caps one import payload, counted over every data line
// including blank ones.
const maxImportRows = 200

// ErrTooManyRows is returned when the payload exceeds the import row cap
var ErrTooManyRows = shared.NewDomainError("LIMIT_EXCEEDED", "CSV file cannot exceed 200 rows.")

// importColumns are the recognized CSV columns. Unknown columns are ignored;
// fullName and phone must be present in the header.
var (
	importColumns   = []string{"fullName", "email", "phone", "city", "propertyType", "bhk", "purpose", "budgetMin", "budgetMax", "timeline", "source", "notes", "tags", "status"}
	requiredColumns = []string{"fullName", "phone"}
)

// ImportError reports a rejected import: the payload had at least one invalid
// row, so nothing was inserted.
type ImportError struct {
	Message string          `json:"message"`
	Rows    []csv.RowErrors `json:"rows"`
}

// Error implements the error interface
func (e *ImportError) Error() string {
	return e.Message
}

func newImportError(rows []csv.RowErrors) *ImportError {
	return &ImportError{
		Message: "CSV contains errors. No leads were imported.",
		Rows:    rows,
	}
}

// ImportResult summarizes a successful all-or-nothing import
type ImportResult struct {
	TotalRows    int `json:"totalRows"`
	ImportedRows int `json:"importedRows"`
}

// ImportService handles bulk lead import from CSV payloads. An import either
// inserts every row or none: a single invalid row rejects the whole payload
// with per-row errors.
type ImportService struct {
	leadRepo lead.LeadRepository
}

// NewImportService creates a new ImportService
func NewImportService(leadRepo lead.LeadRepository) *ImportService {
	return &ImportService{leadRepo: leadRepo}
}

// Import parses, validates and inserts the payload's rows on behalf of the
// actor, who becomes the owner of every imported lead.
func (s *ImportService) Import(ctx context.Context, actor *identity.User, raw string) (*ImportResult, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}

	table, err := csv.Parse(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "CSV payload is empty.")
	}
	if table.RawRowCount > maxImportRows {
		return nil, ErrTooManyRows
	}
	if missing := table.MissingHeaders(requiredColumns); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("CSV is missing required columns: %s.", strings.Join(missing, ", ")))
	}

	collected := csv.NewErrorCollection()
	candidates := make([]lead.Candidate, 0, len(table.Rows))

	for _, row := range table.Rows {
		c, rowErrs := candidateFromRow(&row)
		if rowErrs == nil {
			rowErrs = c.ValidatePartial()
		}
		if rowErrs == nil {
			c.Normalize()
			rowErrs = c.Validate()
		}
		if rowErrs != nil {
			collected.AddFieldErrors(row.LineNumber, rowErrs.Fields(), rowErrs)
			continue
		}
		candidates = append(candidates, c)
	}

	if collected.HasErrors() {
		return nil, newImportError(collected.Rows())
	}

	leads := make([]*lead.Lead, len(candidates))
	for i, c := range candidates {
		leads[i] = lead.New(c, actor.ID)
	}
	if err := s.leadRepo.InsertBatch(ctx, leads); err != nil {
		return nil, err
	}

	return &ImportResult{
		TotalRows:    table.RawRowCount,
		ImportedRows: len(leads),
	}, nil
}

// candidateFromRow maps one CSV row onto an unvalidated candidate. Cell-level
// parse failures (non-numeric budgets) are reported the same way validation
// failures are.
func candidateFromRow(row *csv.Row) (lead.Candidate, lead.ValidationErrors) {
	errs := lead.ValidationErrors{}

	c := lead.Candidate{
		FullName:     row.Get("fullName"),
		Email:        row.Get("email"),
		Phone:        row.Get("phone"),
		City:         lead.City(row.Get("city")),
		PropertyType: lead.PropertyType(row.Get("propertyType")),
		Purpose:      lead.Purpose(row.Get("purpose")),
		Timeline:     lead.Timeline(row.Get("timeline")),
		Source:       lead.Source(row.Get("source")),
		Status:       lead.Status(row.Get("status")),
		Notes:        row.Get("notes"),
	}

	if row.Has("bhk") {
		bhk := lead.BHK(row.Get("bhk"))
		c.BHK = &bhk
	}
	if row.Has("budgetMin") {
		c.BudgetMin = parseBudgetCell(row.Get("budgetMin"), "budgetMin", errs)
	}
	if row.Has("budgetMax") {
		c.BudgetMax = parseBudgetCell(row.Get("budgetMax"), "budgetMax", errs)
	}
	if row.Has("tags") {
		c.Tags = splitTags(row.Get("tags"))
	}

	if len(errs) == 0 {
		return c, nil
	}
	return c, errs
}

func parseBudgetCell(value, field string, errs lead.ValidationErrors) *int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		errs.Add(field, "Budget must be a whole number.")
		return nil
	}
	return &n
}

// splitTags splits a semicolon-separated tag cell, dropping empties
func splitTags(value string) []string {
	var tags []string
	for _, t := range strings.Split(value, ";") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
