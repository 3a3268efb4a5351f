package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	leadapp "github.com/riya0704/LeadTrak/internal/application/lead"
	"github.com/riya0704/LeadTrak/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// maxImportBodyBytes bounds an import upload; 200 rows fit comfortably
const maxImportBodyBytes = 1 << 20

// LeadHandler handles lead CRUD, listing, history, import and export
type LeadHandler struct {
	BaseHandler
	leadService   *leadapp.LeadService
	importService *leadapp.ImportService
	exportService *leadapp.ExportService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(
	leadService *leadapp.LeadService,
	importService *leadapp.ImportService,
	exportService *leadapp.ExportService,
	logger *zap.Logger,
) *LeadHandler {
	return &LeadHandler{
		BaseHandler:   NewBaseHandler(logger),
		leadService:   leadService,
		importService: importService,
		exportService: exportService,
	}
}

// Create handles POST /api/v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var req leadapp.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.leadService.Create(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/leads/:id
func (h *LeadHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	resp, err := h.leadService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req leadapp.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.leadService.Update(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/leads
func (h *LeadHandler) List(c *gin.Context) {
	var req leadapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.leadService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// History handles GET /api/v1/leads/:id/history
func (h *LeadHandler) History(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.leadService.History(c.Request.Context(), id, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Import handles POST /api/v1/leads/import with a raw CSV body
func (h *LeadHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBodyBytes))
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), middleware.GetCurrentUser(c), string(body))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Export handles GET /api/v1/leads/export, streaming the current filtered
// listing as a CSV download
func (h *LeadHandler) Export(c *gin.Context) {
	var req leadapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payload, err := h.exportService.Export(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload))
}
