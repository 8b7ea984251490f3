package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
	"github.com/irodasoft/docuflow_app/internal/middleware"
)

// documentHandler handles HTTP requests for document intake and reads.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

// registerDocumentRoutes sets up the document routes scoped to a company.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/companies/:companyID/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.GET("/:documentID/history", h.getDocumentHistory)
		documents.GET("/:documentID/comments", h.getDocumentComments)
	}
}

// createDocument godoc
// @Summary Register a new document
// @Description Registers a document, allocates its archive number and places it in Draft.
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param document body dto.CreateDocumentRequest true "Document data"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, err := h.documentService.CreateDocument(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create document"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// listDocuments godoc
// @Summary List documents of a company
// @Description Lists documents, optionally filtered by status and assignee.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param status query string false "Filter by status"
// @Param assignedTo query string false "Filter by assigned user ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{companyID}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	params := dto.ListDocumentsParams{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.DocumentStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown status filter"})
			return
		}
		params.Status = &status
	}
	if assignedTo := c.Query("assignedTo"); assignedTo != "" {
		params.AssignedToUserID = &assignedTo
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	documents, err := h.documentService.ListDocuments(c.Request.Context(), companyID, requestingUserID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
			return
		}
		logger.Error("Failed to list documents", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(documents))
}

// getDocument godoc
// @Summary Get a document
// @Description Retrieves a single document by ID.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, err := h.documentService.GetDocumentByID(c.Request.Context(), companyID, documentID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
		default:
			logger.Error("Failed to get document", slog.String("error", err.Error()), slog.String("document_id", documentID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// getDocumentHistory godoc
// @Summary Get a document's audit trail
// @Description Retrieves the append-only audit trail of a document.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentHistoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID}/history [get]
func (h *documentHandler) getDocumentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.documentService.GetDocumentHistory(c.Request.Context(), companyID, documentID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
		default:
			logger.Error("Failed to get document history", slog.String("error", err.Error()), slog.String("document_id", documentID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve history"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DocumentHistoryResponse{Entries: dto.ToAuditEntryResponses(entries)})
}

// getDocumentComments godoc
// @Summary Get a document's comment thread
// @Description Retrieves the document's comments, including rejection markers.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentCommentsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{companyID}/documents/{documentID}/comments [get]
func (h *documentHandler) getDocumentComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	comments, err := h.documentService.GetDocumentComments(c.Request.Context(), companyID, documentID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "You have no access to this company"})
		default:
			logger.Error("Failed to get document comments", slog.String("error", err.Error()), slog.String("document_id", documentID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve comments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DocumentCommentsResponse{Comments: dto.ToCommentResponses(comments)})
}
