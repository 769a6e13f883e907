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

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	documents := router.Group("/documents", middleware.RequireRole(model.RoleAdmin, model.RoleLawyer, model.RoleStaff))
	{
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.POST("/create-document", h.CreateDocument)
		documents.PUT("/update-document/:id", h.UpdateDocument)
		documents.DELETE("/:id", h.DeleteDocument)
	}
}

// ListDocuments returns a paginated list of document records
// @Summary      List documents
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	p := pagination.Parse(c)
	documents, total, err := h.documentService.ListDocuments(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(documents, total, p)))
}

// GetDocument returns one document record
// @Summary      Get document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentResponse}
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	document, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, document))
}

// CreateDocument attaches a document record to an active case
// @Summary      Create document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDocumentRequest  true  "Create Document Payload"
// @Success      201      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Router       /documents/create-document [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	document, err := h.documentService.CreateDocument(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, document))
}

// UpdateDocument renames a document record
// @Summary      Update document
// @Tags         documents
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                            true  "Document ID"
// @Param        payload  body      service.UpdateDocumentRequest  true  "Update Document Payload"
// @Success      200      {object}  response.Response{data=service.DocumentResponse}
// @Failure      404      {object}  response.Response
// @Router       /documents/update-document/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	document, err := h.documentService.UpdateDocument(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, document))
}

// DeleteDocument permanently removes a document record
// @Summary      Delete document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
