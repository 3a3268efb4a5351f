package lead

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/infrastructure/csv"
)

// maxExportRows caps one export to keep the response bounded
const maxExportRows = 1000

// ErrNothingToExport is returned when the filtered listing matches no leads
var ErrNothingToExport = shared.NewDomainError("NOT_FOUND", "No leads found for the current filters.")

// exportColumns is the fixed column order of an export file
var exportColumns = []string{"id", "fullName", "email", "phone", "city", "propertyType", "bhk", "purpose", "budgetMin", "budgetMax", "timeline", "source", "status", "notes", "tags", "ownerId", "updatedAt"}

// ExportService renders the current filtered listing as a CSV file. It honors
// the same filters, search and sort as the listing itself, without pagination.
type ExportService struct {
	leadRepo lead.LeadRepository
}

// NewExportService creates a new ExportService
func NewExportService(leadRepo lead.LeadRepository) *ExportService {
	return &ExportService{leadRepo: leadRepo}
}

// Export returns the CSV rendition of every lead matching the request, up to
// the export cap
func (s *ExportService) Export(ctx context.Context, req ListRequest) (string, error) {
	q := lead.ListQuery{
		Page:         1,
		Limit:        maxExportRows,
		City:         req.City,
		PropertyType: req.PropertyType,
		Status:       req.Status,
		Timeline:     req.Timeline,
		Search:       strings.TrimSpace(req.Search),
	}
	q.SortField, q.SortDesc = parseSort(req.Sort)

	leads, _, err := s.leadRepo.List(ctx, q)
	if err != nil {
		return "", err
	}
	if len(leads) == 0 {
		return "", ErrNothingToExport
	}

	rows := make([][]string, len(leads))
	for i := range leads {
		rows[i] = exportRow(&leads[i])
	}
	return csv.Write(exportColumns, rows), nil
}

// exportRow renders one lead in exportColumns order
func exportRow(l *lead.Lead) []string {
	return []string{
		l.ID.String(),
		l.FullName,
		l.Email,
		l.Phone,
		string(l.City),
		string(l.PropertyType),
		bhkCell(l.BHK),
		string(l.Purpose),
		budgetCell(l.BudgetMin),
		budgetCell(l.BudgetMax),
		string(l.Timeline),
		string(l.Source),
		string(l.Status),
		l.Notes,
		strings.Join(l.Tags, ";"),
		l.OwnerID.String(),
		l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func bhkCell(b *lead.BHK) string {
	if b == nil {
		return ""
	}
	return string(*b)
}

func budgetCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
