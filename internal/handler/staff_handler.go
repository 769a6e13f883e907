package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lawdesk/internal/middleware"
	"lawdesk/internal/model"
	"lawdesk/internal/service"
	"lawdesk/pkg/pagination"
	"lawdesk/pkg/response"
)

type StaffHandler struct {
	staffService service.StaffService
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func (h *StaffHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := router.Group("/staff", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer))
	{
		staff.GET("", h.ListStaff)
		staff.GET("/:id", h.GetStaff)
		staff.POST("/create-staff", h.CreateStaff)
		staff.PUT("/update-staff/:id", h.UpdateStaff)
		staff.PUT("/block-unblock-staff/:id", h.BlockUnblockStaff)
		staff.PUT("/:id/soft-delete", h.SoftDeleteStaff)
		staff.PUT("/:id/restore", h.RestoreStaff)
		staff.DELETE("/:id", h.DeleteStaff)
	}
}

// ListStaff returns a paginated list of active staff
// @Summary      List staff
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	p := pagination.Parse(c)
	staff, total, err := h.staffService.ListStaff(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(staff, total, p)))
}

// GetStaff returns one active staff member
// @Summary      Get staff member
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  response.Response{data=service.StaffResponse}
// @Failure      404  {object}  response.Response
// @Router       /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// CreateStaff creates a staff account
// @Summary      Create staff member
// @Tags         staff
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateStaffRequest  true  "Create Staff Payload"
// @Success      201      {object}  response.Response{data=service.StaffResponse}
// @Failure      400      {object}  response.Response
// @Router       /staff/create-staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	staff, err := h.staffService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, staff))
}

// UpdateStaff updates the provided fields of a staff account
// @Summary      Update staff member
// @Tags         staff
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Staff ID"
// @Param        payload  body      service.UpdateStaffRequest  true  "Update Staff Payload"
// @Success      200      {object}  response.Response{data=service.StaffResponse}
// @Failure      404      {object}  response.Response
// @Router       /staff/update-staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// BlockUnblockStaff toggles the blocked flag
// @Summary      Block or unblock staff member
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  response.Response{data=service.StaffResponse}
// @Failure      404  {object}  response.Response
// @Router       /staff/block-unblock-staff/{id} [put]
func (h *StaffHandler) BlockUnblockStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	staff, err := h.staffService.BlockUnblockStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// SoftDeleteStaff marks a staff account deleted
// @Summary      Soft-delete staff member
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /staff/{id}/soft-delete [put]
func (h *StaffHandler) SoftDeleteStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.staffService.SoftDeleteStaff(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// RestoreStaff clears the deleted flag
// @Summary      Restore staff member
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /staff/{id}/restore [put]
func (h *StaffHandler) RestoreStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.staffService.RestoreStaff(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// DeleteStaff permanently removes a staff account
// @Summary      Delete staff member
// @Tags         staff
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /staff/{id} [delete]
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
