package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	leadapp "github.com/riya0704/LeadTrak/internal/application/lead"
	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/domain/lead"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockLeadRepository is a mock implementation of lead.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lead.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, q lead.ListQuery) ([]lead.Lead, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]lead.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) Insert(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) InsertBatch(ctx context.Context, leads []*lead.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of lead.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *lead.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]lead.HistoryEntry, error) {
	args := m.Called(ctx, leadID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lead.HistoryEntry), args.Error(1)
}

func testActor(role identity.Role) *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              "Test User",
		Email:             "test@example.com",
		Role:              role,
	}
}

// setUser stands in for the JWT middleware in handler tests
func setUser(user *identity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, user)
		c.Next()
	}
}

func setupLeadRouter(leadRepo *MockLeadRepository, historyRepo *MockHistoryRepository, user *identity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	leadService := leadapp.NewLeadService(leadRepo, historyRepo)
	importService := leadapp.NewImportService(leadRepo)
	exportService := leadapp.NewExportService(leadRepo)
	handler := NewLeadHandler(leadService, importService, exportService, zap.NewNop())

	r := gin.New()
	leads := r.Group("/api/v1/leads")
	leads.Use(setUser(user))
	{
		leads.GET("", handler.List)
		leads.POST("", handler.Create)
		leads.GET("/export", handler.Export)
		leads.POST("/import", handler.Import)
		leads.GET("/:id", handler.Get)
		leads.PUT("/:id", handler.Update)
		leads.GET("/:id/history", handler.History)
	}
	return r
}

func leadBody() map[string]any {
	return map[string]any{
		"fullName":     "Priya Sharma",
		"phone":        "9876543210",
		"city":         "Chandigarh",
		"propertyType": "Apartment",
		"bhk":          "2",
		"purpose":      "Buy",
		"timeline":     "0-3m",
		"source":       "Website",
		"status":       "New",
	}
}

func existingLead(ownerID uuid.UUID) *lead.Lead {
	bhk := lead.BHK2
	c := lead.Candidate{
		FullName:     "Priya Sharma",
		Phone:        "9876543210",
		City:         lead.CityChandigarh,
		PropertyType: lead.PropertyApartment,
		BHK:          &bhk,
		Purpose:      lead.PurposeBuy,
		Timeline:     lead.TimelineZeroToThree,
		Source:       lead.SourceWebsite,
		Status:       lead.StatusNew,
	}
	l := lead.New(c, ownerID)
	l.UpdatedAt = time.Now().Add(-time.Hour)
	return l
}

func TestLeadHandler_Create_Success(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	actor := testActor(identity.RoleUser)

	leadRepo.On("Insert", mock.Anything, mock.AnythingOfType("*lead.Lead")).Return(nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), actor)

	body, _ := json.Marshal(leadBody())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]any)
	assert.Equal(t, "Priya Sharma", data["fullName"])
	assert.Equal(t, actor.ID.String(), data["ownerId"])
}

func TestLeadHandler_Create_InvalidBody(t *testing.T) {
	router := setupLeadRouter(new(MockLeadRepository), new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandler_Create_ValidationFailure(t *testing.T) {
	router := setupLeadRouter(new(MockLeadRepository), new(MockHistoryRepository), testActor(identity.RoleUser))

	body := leadBody()
	body["fullName"] = "A"
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errInfo["code"])
	fields := errInfo["fields"].(map[string]any)
	assert.Contains(t, fields, "fullName")
}

func TestLeadHandler_Get_InvalidID(t *testing.T) {
	router := setupLeadRouter(new(MockLeadRepository), new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandler_Get_NotFound(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	id := uuid.New()
	leadRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeadHandler_Update_Forbidden(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	stored := existingLead(uuid.New())
	leadRepo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	body, _ := json.Marshal(leadBody())
	req := httptest.NewRequest(http.MethodPut, "/api/v1/leads/"+stored.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]any)
	assert.Equal(t, "You do not have permission to edit this lead.", errInfo["message"])
}

func TestLeadHandler_Update_StaleRecord(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	actor := testActor(identity.RoleUser)
	stored := existingLead(actor.ID)
	leadRepo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), actor)

	body := leadBody()
	body["updatedAt"] = stored.UpdatedAt.Add(-time.Minute).Format(time.RFC3339Nano)
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/leads/"+stored.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]any)
	assert.Equal(t, "CONCURRENCY_CONFLICT", errInfo["code"])
	assert.Equal(t, "This record has been updated by someone else. Please refresh and try again.", errInfo["message"])
}

func TestLeadHandler_List_Pagination(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	owner := uuid.New()

	leadRepo.On("List", mock.Anything, mock.MatchedBy(func(q lead.ListQuery) bool {
		return q.Page == 2 && q.Limit == 5 && q.City == "Mohali"
	})).Return([]lead.Lead{*existingLead(owner)}, int64(11), nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?page=2&limit=5&city=Mohali", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	meta := response["meta"].(map[string]any)
	assert.Equal(t, float64(11), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(5), meta["pageSize"])
	assert.Equal(t, float64(3), meta["totalPages"])
}

func TestLeadHandler_Import_RejectsBadRows(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	payload := "fullName,phone\nPriya Sharma,12\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/import", strings.NewReader(payload))
	req.Header.Set("Content-Type", "text/csv")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]any)
	assert.Equal(t, "CSV contains errors. No leads were imported.", errInfo["message"])
	rows := errInfo["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(2), rows[0].(map[string]any)["row"])
	leadRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestLeadHandler_Export_Success(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	owner := uuid.New()

	leadRepo.On("List", mock.Anything, mock.Anything).Return([]lead.Lead{*existingLead(owner)}, int64(1), nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,fullName,"))
}

func TestLeadHandler_Export_NothingMatches(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	leadRepo.On("List", mock.Anything, mock.Anything).Return([]lead.Lead{}, int64(0), nil)

	router := setupLeadRouter(leadRepo, new(MockHistoryRepository), testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/export?city=Panchkula", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]any)
	assert.Equal(t, "No leads found for the current filters.", errInfo["message"])
}

func TestLeadHandler_History_Success(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	historyRepo := new(MockHistoryRepository)
	owner := uuid.New()
	stored := existingLead(owner)

	entry := lead.NewHistoryEntry(stored.ID, time.Now(),
		lead.Actor{ID: owner, Name: "Owner", Role: identity.RoleUser},
		map[string]lead.FieldChange{"status": {"New", "Contacted"}})

	leadRepo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	historyRepo.On("FindByLead", mock.Anything, stored.ID, 5).Return([]lead.HistoryEntry{*entry}, nil)

	router := setupLeadRouter(leadRepo, historyRepo, testActor(identity.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/"+stored.ID.String()+"/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, stored.ID.String(), first["leadId"])
	diff := first["diff"].(map[string]any)
	assert.Contains(t, diff, "status")
}
