package lead

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportService_Success(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	owner := uuid.New()

	l := storedLead(owner)
	l.Notes = "Prefers sector 17, call after 6pm"
	l.Tags = []string{"hot", "site-visit"}

	leadRepo.On("List", ctx, mock.MatchedBy(func(q lead.ListQuery) bool {
		return q.Page == 1 && q.Limit == 1000
	})).Return([]lead.Lead{*l}, int64(1), nil)

	svc := NewExportService(leadRepo)
	out, err := svc.Export(ctx, ListRequest{})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(exportColumns, ","), lines[0])

	cells := strings.Split(lines[1], ",")
	assert.Equal(t, l.ID.String(), cells[0])
	assert.Equal(t, "Priya Sharma", cells[1])
	assert.Contains(t, lines[1], `"Prefers sector 17, call after 6pm"`)
	assert.Contains(t, lines[1], "hot;site-visit")
	assert.Contains(t, lines[1], l.UpdatedAt.UTC().Format(time.RFC3339))
}

func TestExportService_NothingMatches(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)

	leadRepo.On("List", ctx, mock.Anything).Return([]lead.Lead{}, int64(0), nil)

	svc := NewExportService(leadRepo)
	out, err := svc.Export(ctx, ListRequest{City: "Mohali"})

	assert.Empty(t, out)
	require.Equal(t, ErrNothingToExport, err)
	assert.Equal(t, "No leads found for the current filters.", err.Error())
}

func TestExportService_HonorsFiltersAndSort(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	owner := uuid.New()

	leadRepo.On("List", ctx, mock.MatchedBy(func(q lead.ListQuery) bool {
		return q.City == "Zirakpur" && q.Status == "Qualified" &&
			q.SortField == "fullName" && !q.SortDesc
	})).Return([]lead.Lead{*storedLead(owner)}, int64(1), nil)

	svc := NewExportService(leadRepo)
	_, err := svc.Export(ctx, ListRequest{
		City:   "Zirakpur",
		Status: "Qualified",
		Sort:   "fullName:asc",
	})

	require.NoError(t, err)
	leadRepo.AssertExpectations(t)
}
