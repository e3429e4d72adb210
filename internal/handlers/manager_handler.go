package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/senselive/vms-api/internal/middleware"
	"github.com/senselive/vms-api/internal/services"
	"gorm.io/datatypes"
)

// ManagerHandler serves the host manager surface: opening visits, deciding
// the manager gates and the department views.
type ManagerHandler struct {
	visitService     *services.VisitService
	visitorService   *services.VisitorService
	analyticsService *services.AnalyticsService
}

// NewManagerHandler creates a new manager handler
func NewManagerHandler(
	visitService *services.VisitService,
	visitorService *services.VisitorService,
	analyticsService *services.AnalyticsService,
) *ManagerHandler {
	return &ManagerHandler{
		visitService:     visitService,
		visitorService:   visitorService,
		analyticsService: analyticsService,
	}
}

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middleware.GetUserID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

type createLogRequest struct {
	FirstName           string         `json:"first_name" binding:"required"`
	LastName            string         `json:"last_name"`
	Email               string         `json:"email"`
	ContactNumber       string         `json:"contact_number"`
	Company             string         `json:"company"`
	VisitDate           string         `json:"visit_date" binding:"required"`
	AccompanyingPersons datatypes.JSON `json:"accompanying_persons"`
	DepartmentID        uint           `json:"department_id" binding:"required"`
	VisitingUserID      uint           `json:"visiting_user_id"`
	Purpose             string         `json:"purpose" binding:"required"`
	VisitType           string         `json:"visit_type" binding:"required"`
	VisitorType         string         `json:"visitor_type"`
	Location            string         `json:"location"`
}

// CreateLog godoc
// @Summary Open a visit log
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createLogRequest true "Visit details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /manager/log [post]
func (h *ManagerHandler) CreateLog(c *gin.Context) {
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid visit_date, expected YYYY-MM-DD."})
		return
	}

	hostUserID := req.VisitingUserID
	if hostUserID == 0 {
		hostUserID = middleware.GetUserID(c)
	}

	log, err := h.visitService.CreateVisit(c.Request.Context(), actorFrom(c), services.CreateVisitInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		ContactNumber:       req.ContactNumber,
		Company:             req.Company,
		VisitDate:           visitDate,
		AccompanyingPersons: req.AccompanyingPersons,
		DepartmentID:        req.DepartmentID,
		HostUserID:          hostUserID,
		Purpose:             req.Purpose,
		VisitType:           req.VisitType,
		VisitorType:         req.VisitorType,
		Location:            req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Visit log created successfully.",
		"visit_id": log.ID,
	})
}

// Logs godoc
// @Summary Visit logs for the caller's department
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /manager/logs [get]
func (h *ManagerHandler) Logs(c *gin.Context) {
	logs, err := h.visitService.DepartmentLogs(c.Request.Context(), middleware.GetDepartmentID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit logs fetched successfully.", "logs": logs})
}

// Visitors godoc
// @Summary List visitor identity records
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /manager/visitors [get]
func (h *ManagerHandler) Visitors(c *gin.Context) {
	visitors, err := h.visitorService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visitors fetched successfully.", "visitors": visitors})
}

// Requests godoc
// @Summary Walk-ins awaiting the caller's decision
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /manager/requests [get]
func (h *ManagerHandler) Requests(c *gin.Context) {
	logs, err := h.visitService.ManagerRequests(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pending requests fetched successfully.", "requests": logs})
}

// Analytics godoc
// @Summary Visit analytics scoped to the caller's department
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /manager/analytics [get]
func (h *ManagerHandler) Analytics(c *gin.Context) {
	start, end, ok := optionalDateRange(c)
	if !ok {
		return
	}

	departmentID := middleware.GetDepartmentID(c)
	analytics, err := h.analyticsService.VisitAnalytics(c.Request.Context(), &departmentID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analytics fetched successfully.", "analytics": analytics})
}

type approvalRequest struct {
	Approval *bool `json:"approval" binding:"required"`
}

// Approve godoc
// @Summary Record the manager's entry decision
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visit_id path string true "Visit ID"
// @Param request body approvalRequest true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /manager/approve/{visit_id} [put]
func (h *ManagerHandler) Approve(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	log, err := h.visitService.ManagerDecide(c.Request.Context(), actorFrom(c), c.Param("visit_id"), *req.Approval)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Visitor rejected."
	if *req.Approval {
		message = "Visitor approved."
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "status": log.Status()})
}

// ExitApproval godoc
// @Summary Record the manager's exit decision
// @Tags manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visit_id path string true "Visit ID"
// @Param request body approvalRequest true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /manager/check-out/{visit_id} [put]
func (h *ManagerHandler) ExitApproval(c *gin.Context) {
	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	_, err := h.visitService.ExitDecide(c.Request.Context(), actorFrom(c), c.Param("visit_id"), *req.Approval)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exit approval recorded successfully."})
}
