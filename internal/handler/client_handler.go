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

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/clients")
	{
		clients.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer, model.RoleStaff), h.ListClients)
		clients.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer, model.RoleStaff), h.GetClient)
		clients.POST("/create-client", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.CreateClient)
		clients.PUT("/update-client/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.UpdateClient)
		clients.PUT("/block-unblock-client/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.BlockUnblockClient)
		clients.PUT("/:id/soft-delete", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.SoftDeleteClient)
		clients.PUT("/:id/restore", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.RestoreClient)
		clients.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer), h.DeleteClient)
	}
}

// ListClients returns a paginated list of active clients
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	p := pagination.Parse(c)
	clients, total, err := h.clientService.ListClients(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(clients, total, p)))
}

// GetClient returns one active client
// @Summary      Get client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientResponse}
// @Failure      404  {object}  response.Response
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// CreateClient registers a new client
// @Summary      Create client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateClientRequest  true  "Create Client Payload"
// @Success      201      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Router       /clients/create-client [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// UpdateClient updates the provided fields of a client
// @Summary      Update client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Client ID"
// @Param        payload  body      service.UpdateClientRequest  true  "Update Client Payload"
// @Success      200      {object}  response.Response{data=service.ClientResponse}
// @Failure      404      {object}  response.Response
// @Router       /clients/update-client/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// BlockUnblockClient toggles the blocked flag
// @Summary      Block or unblock client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientResponse}
// @Failure      404  {object}  response.Response
// @Router       /clients/block-unblock-client/{id} [put]
func (h *ClientHandler) BlockUnblockClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := h.clientService.BlockUnblockClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// SoftDeleteClient marks a client deleted
// @Summary      Soft-delete client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /clients/{id}/soft-delete [put]
func (h *ClientHandler) SoftDeleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clientService.SoftDeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// RestoreClient clears the deleted flag
// @Summary      Restore client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /clients/{id}/restore [put]
func (h *ClientHandler) RestoreClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clientService.RestoreClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}

// DeleteClient permanently removes a client
// @Summary      Delete client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
