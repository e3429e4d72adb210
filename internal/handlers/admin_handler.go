package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/senselive/vms-api/internal/services"
)

// AdminHandler serves the org-wide administration surface.
type AdminHandler struct {
	userService      *services.UserService
	visitService     *services.VisitService
	analyticsService *services.AnalyticsService
	exportService    *services.ExportService
	auditService     *services.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userService *services.UserService,
	visitService *services.VisitService,
	analyticsService *services.AnalyticsService,
	exportService *services.ExportService,
	auditService *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		visitService:     visitService,
		analyticsService: analyticsService,
		exportService:    exportService,
		auditService:     auditService,
	}
}

// Users godoc
// @Summary List staff accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param department_id query int false "Filter by department"
// @Success 200 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *AdminHandler) Users(c *gin.Context) {
	var departmentID uint
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid department ID."})
			return
		}
		departmentID = uint(parsed)
	}

	users, err := h.userService.ListUsers(c.Request.Context(), departmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Users fetched successfully.", "users": users})
}

// Departments godoc
// @Summary List departments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/departments [get]
func (h *AdminHandler) Departments(c *gin.Context) {
	departments, err := h.userService.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Departments fetched successfully.", "departments": departments})
}

// Analytics godoc
// @Summary Org-wide visit analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/analytics [get]
func (h *AdminHandler) Analytics(c *gin.Context) {
	start, end, ok := optionalDateRange(c)
	if !ok {
		return
	}

	analytics, err := h.analyticsService.VisitAnalytics(c.Request.Context(), nil, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analytics fetched successfully.", "analytics": analytics})
}

// VisitLogs godoc
// @Summary List all visit logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/visit-logs [get]
func (h *AdminHandler) VisitLogs(c *gin.Context) {
	logs, err := h.visitService.AllLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit logs fetched successfully.", "logs": logs})
}

// ExportVisitLogs godoc
// @Summary Download the visit log report
// @Tags admin
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "csv or xlsx" default(csv)
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /admin/visit-logs/export [get]
func (h *AdminHandler) ExportVisitLogs(c *gin.Context) {
	start, end, ok := optionalDateRange(c)
	if !ok {
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, filename, err = h.exportService.ExportCSV(c.Request.Context(), start, end)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(c.Request.Context(), start, end)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported export format: " + format})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Audits godoc
// @Summary List workflow audit entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /admin/audits [get]
func (h *AdminHandler) Audits(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	logs, total, err := h.auditService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Audit logs fetched successfully.",
		"audits":  logs,
		"total":   total,
	})
}

// optionalDateRange parses the start_date/end_date query pair. Both are
// optional, but a provided value must parse and the range must not be
// inverted. Writes the 400 itself and returns ok=false on bad input.
func optionalDateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	parse := func(name string) (*time.Time, bool) {
		raw := c.Query(name)
		if raw == "" {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + ", expected YYYY-MM-DD."})
			return nil, false
		}
		return &t, true
	}

	start, ok = parse("start_date")
	if !ok {
		return nil, nil, false
	}
	end, ok = parse("end_date")
	if !ok {
		return nil, nil, false
	}
	if start != nil && end != nil && end.Before(*start) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "end_date must not be before start_date."})
		return nil, nil, false
	}
	return start, end, true
}
