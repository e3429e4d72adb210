package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/senselive/vms-api/internal/services"
	"gorm.io/datatypes"
)

// SecurityHandler serves the gate surface: entry decisions, checkouts, the
// gate dashboard and the printable visitor pass.
type SecurityHandler struct {
	visitService     *services.VisitService
	analyticsService *services.AnalyticsService
	passService      *services.PassService
}

// NewSecurityHandler creates a new security handler
func NewSecurityHandler(
	visitService *services.VisitService,
	analyticsService *services.AnalyticsService,
	passService *services.PassService,
) *SecurityHandler {
	return &SecurityHandler{
		visitService:     visitService,
		analyticsService: analyticsService,
		passService:      passService,
	}
}

type securityApproveRequest struct {
	Approval     *bool          `json:"approval" binding:"required"`
	SecurityData datatypes.JSON `json:"security_data"`
}

// SecurityApprove godoc
// @Summary Record the security gate decision
// @Tags security
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visit_id path string true "Visit ID"
// @Param request body securityApproveRequest true "Decision and gate data"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /security/security-approve/{visit_id} [put]
func (h *SecurityHandler) SecurityApprove(c *gin.Context) {
	var req securityApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	log, err := h.visitService.SecurityDecide(c.Request.Context(), actorFrom(c), c.Param("visit_id"), *req.Approval, req.SecurityData)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Visitor rejected by security."
	if *req.Approval {
		message = "Visitor approved and checked in by security."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       message,
		"status":        log.Status(),
		"check_in_time": log.CheckInTime,
	})
}

// Analytics godoc
// @Summary Gate dashboard analytics
// @Tags security
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /security/security-analytics [get]
func (h *SecurityHandler) Analytics(c *gin.Context) {
	analytics, err := h.analyticsService.SecurityAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analytics fetched successfully.", "analytics": analytics})
}

// Requests godoc
// @Summary Manager-approved visits awaiting the gate
// @Tags security
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /security/requests [get]
func (h *SecurityHandler) Requests(c *gin.Context) {
	logs, err := h.visitService.SecurityRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pending requests fetched successfully.", "requests": logs})
}

// Checkout godoc
// @Summary Stamp the checkout time on a visit
// @Tags security
// @Produce json
// @Security BearerAuth
// @Param visit_log_id path string true "Visit Log ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /security/checkout/{visit_log_id} [put]
func (h *SecurityHandler) Checkout(c *gin.Context) {
	log, err := h.visitService.Checkout(c.Request.Context(), actorFrom(c), c.Param("visit_log_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Visitor checked out successfully.",
		"check_out_time": log.CheckOutTime,
	})
}

// ProcessedLogs godoc
// @Summary Fully processed visits in a date range
// @Tags security
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /security/processed-logs [get]
func (h *SecurityHandler) ProcessedLogs(c *gin.Context) {
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Start and end date are required"})
		return
	}

	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid start_date, expected YYYY-MM-DD."})
		return
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid end_date, expected YYYY-MM-DD."})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "end_date must not be before start_date."})
		return
	}

	logs, err := h.visitService.ProcessedLogs(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Processed logs fetched successfully.", "logs": logs})
}

// VisitorPass godoc
// @Summary Download the printable visitor gate pass
// @Tags security
// @Produce application/pdf
// @Security BearerAuth
// @Param visit_id path string true "Visit ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /security/visitor-pass/{visit_id} [get]
func (h *SecurityHandler) VisitorPass(c *gin.Context) {
	data, filename, err := h.passService.VisitorPassPDF(c.Request.Context(), c.Param("visit_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
