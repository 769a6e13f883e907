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

// LawyerHandler exposes lawyer account management. Every route is admin-only.
type LawyerHandler struct {
	lawyerService service.LawyerService
}

func NewLawyerHandler(lawyerService service.LawyerService) *LawyerHandler {
	return &LawyerHandler{lawyerService: lawyerService}
}

func (h *LawyerHandler) RegisterRoutes(router *gin.RouterGroup) {
	lawyers := router.Group("/lawyers", middleware.RequireRole(model.RoleAdmin))
	{
		lawyers.GET("", h.ListLawyers)
		lawyers.GET("/:id", h.GetLawyer)
		lawyers.POST("/create-lawyer", h.CreateLawyer)
		lawyers.PUT("/update-lawyer/:id", h.UpdateLawyer)
		lawyers.PUT("/block-unblock-lawyer/:id", h.BlockUnblockLawyer)
		lawyers.PUT("/:id/soft-delete", h.SoftDeleteLawyer)
		lawyers.PUT("/:id/restore", h.RestoreLawyer)
		lawyers.DELETE("/:id", h.DeleteLawyer)
	}
}

// ListLawyers returns a paginated list of active lawyers
// @Summary      List lawyers
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /lawyers [get]
func (h *LawyerHandler) ListLawyers(c *gin.Context) {
	p := pagination.Parse(c)
	lawyers, total, err := h.lawyerService.ListLawyers(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(lawyers, total, p)))
}

// GetLawyer returns one active lawyer
// @Summary      Get lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Lawyer ID"
// @Success      200  {object}  response.Response{data=service.LawyerResponse}
// @Failure      404  {object}  response.Response
// @Router       /lawyers/{id} [get]
func (h *LawyerHandler) GetLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lawyer, err := h.lawyerService.GetLawyer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lawyer))
}

// CreateLawyer creates a lawyer account
// @Summary      Create lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLawyerRequest  true  "Create Lawyer Payload"
// @Success      201      {object}  response.Response{data=service.LawyerResponse}
// @Failure      400      {object}  response.Response
// @Router       /lawyers/create-lawyer [post]
func (h *LawyerHandler) CreateLawyer(c *gin.Context) {
	var req service.CreateLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lawyer, err := h.lawyerService.CreateLawyer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lawyer))
}

// UpdateLawyer updates the provided fields of a lawyer account
// @Summary      Update lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Lawyer ID"
// @Param        payload  body      service.UpdateLawyerRequest  true  "Update Lawyer Payload"
// @Success      200      {object}  response.Response{data=service.LawyerResponse}
// @Failure      404      {object}  response.Response
// @Router       /lawyers/update-lawyer/{id} [put]
func (h *LawyerHandler) UpdateLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lawyer, err := h.lawyerService.UpdateLawyer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lawyer))
}

// BlockUnblockLawyer toggles the blocked flag
// @Summary      Block or unblock lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Lawyer ID"
// @Success      200  {object}  response.Response{data=service.LawyerResponse}
// @Failure      404  {object}  response.Response
// @Router       /lawyers/block-unblock-lawyer/{id} [put]
func (h *LawyerHandler) BlockUnblockLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lawyer, err := h.lawyerService.BlockUnblockLawyer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, lawyer))
}

// SoftDeleteLawyer marks a lawyer account deleted
// @Summary      Soft-delete lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Lawyer ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /lawyers/{id}/soft-delete [put]
func (h *LawyerHandler) SoftDeleteLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.lawyerService.SoftDeleteLawyer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// RestoreLawyer clears the deleted flag
// @Summary      Restore lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Lawyer ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /lawyers/{id}/restore [put]
func (h *LawyerHandler) RestoreLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.lawyerService.RestoreLawyer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// DeleteLawyer permanently removes a lawyer account
// @Summary      Delete lawyer
// @Tags         lawyers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Lawyer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /lawyers/{id} [delete]
func (h *LawyerHandler) DeleteLawyer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.lawyerService.DeleteLawyer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
