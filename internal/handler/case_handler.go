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

// CaseHandler exposes case management. Staff get read access scoped to their
// own assignments; create, update and the delete lifecycle stay with admins
// and lawyers.
type CaseHandler struct {
	caseService service.CaseService
}

func NewCaseHandler(caseService service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

func (h *CaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	cases := router.Group("/cases")
	{
		cases.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer, model.RoleStaff), h.ListCases)
		cases.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer, model.RoleStaff), h.GetCase)
		cases.POST("/create-case", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.CreateCase)
		cases.PUT("/update-case/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.UpdateCase)
		cases.PUT("/:id/soft-delete", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.SoftDeleteCase)
		cases.PUT("/:id/restore", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.RestoreCase)
		cases.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.DeleteCase)
	}
}

// ListCases returns a paginated list of active cases visible to the caller
// @Summary      List cases
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /cases [get]
func (h *CaseHandler) ListCases(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	p := pagination.Parse(c)
	cases, total, err := h.caseService.ListCases(c.Request.Context(), principal, p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(cases, total, p)))
}

// GetCase returns one active case visible to the caller
// @Summary      Get case
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Case ID"
// @Success      200  {object}  response.Response{data=service.CaseResponse}
// @Failure      404  {object}  response.Response
// @Router       /cases/{id} [get]
func (h *CaseHandler) GetCase(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.caseService.GetCase(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CreateCase opens a new case owned by the calling lawyer
// @Summary      Create case
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCaseRequest  true  "Create Case Payload"
// @Success      201      {object}  response.Response{data=service.CaseResponse}
// @Failure      400      {object}  response.Response
// @Router       /cases/create-case [post]
func (h *CaseHandler) CreateCase(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	var req service.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.caseService.CreateCase(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateCase updates the provided fields; a staff_ids field replaces the
// whole assignment set
// @Summary      Update case
// @Tags         cases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Case ID"
// @Param        payload  body      service.UpdateCaseRequest  true  "Update Case Payload"
// @Success      200      {object}  response.Response{data=service.CaseResponse}
// @Failure      404      {object}  response.Response
// @Router       /cases/update-case/{id} [put]
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.caseService.UpdateCase(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// SoftDeleteCase marks a case deleted
// @Summary      Soft-delete case
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Case ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /cases/{id}/soft-delete [put]
func (h *CaseHandler) SoftDeleteCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.caseService.SoftDeleteCase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// RestoreCase clears the deleted flag
// @Summary      Restore case
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Case ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /cases/{id}/restore [put]
func (h *CaseHandler) RestoreCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.caseService.RestoreCase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// DeleteCase permanently removes a case and its staff assignments
// @Summary      Delete case
// @Tags         cases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Case ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cases/{id} [delete]
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.caseService.DeleteCase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
