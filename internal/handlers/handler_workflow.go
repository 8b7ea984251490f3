package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
	"github.com/irodasoft/docuflow_app/internal/middleware"
)

// workflowHandler handles HTTP requests for workflow actions on documents.
type workflowHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

func newWorkflowHandler(workflowService portssvc.WorkflowSvcFacade) *workflowHandler {
	return &workflowHandler{workflowService: workflowService}
}

// registerWorkflowRoutes sets up the workflow action routes.
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newWorkflowHandler(workflowService)

	documents := rg.Group("/documents/:documentID")
	{
		documents.POST("/advance", h.advance)
		documents.POST("/reject", h.reject)
		documents.POST("/delegate", h.delegate)
		documents.POST("/stepback", h.stepBack)
	}
}

// respondWorkflowError maps workflow service errors to HTTP responses. Internal
// errors are never echoed to the client.
func respondWorkflowError(c *gin.Context, err error, documentID string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You may not act on this document"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrNoTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Workflow action failed",
			slog.String("document_id", documentID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Workflow action failed"})
	}
}

// advance godoc
// @Summary Advance a document
// @Description Moves a document to the next status in the approval pipeline.
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param request body dto.AdvanceDocumentRequest false "Optional explicit assignee and comment"
// @Success 200 {object} dto.WorkflowResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /documents/{documentID}/advance [post]
func (h *workflowHandler) advance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.AdvanceDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Failed to bind JSON for advance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.workflowService.Advance(c.Request.Context(), documentID, actorUserID, req)
	if err != nil {
		respondWorkflowError(c, err, documentID)
		return
	}

	logger.Info("Document advanced",
		slog.String("document_id", documentID),
		slog.String("new_status", string(result.Status)))
	c.JSON(http.StatusOK, result)
}

// reject godoc
// @Summary Reject a document
// @Description Rejects a document with a mandatory reason; the document returns to its creator.
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param request body dto.RejectDocumentRequest true "Rejection reason"
// @Success 200 {object} dto.WorkflowResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /documents/{documentID}/reject [post]
func (h *workflowHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.RejectDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A rejection reason is required"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.workflowService.Reject(c.Request.Context(), documentID, actorUserID, req)
	if err != nil {
		respondWorkflowError(c, err, documentID)
		return
	}

	logger.Info("Document rejected", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, result)
}

// delegate godoc
// @Summary Delegate a document
// @Description Hands the document to another eligible user without changing its status.
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param request body dto.DelegateDocumentRequest true "Delegation target"
// @Success 200 {object} dto.WorkflowResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /documents/{documentID}/delegate [post]
func (h *workflowHandler) delegate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.DelegateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for delegate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A delegation target is required"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.workflowService.Delegate(c.Request.Context(), documentID, actorUserID, req)
	if err != nil {
		respondWorkflowError(c, err, documentID)
		return
	}

	logger.Info("Document delegated",
		slog.String("document_id", documentID),
		slog.String("target_user_id", req.TargetUserID))
	c.JSON(http.StatusOK, result)
}

// stepBack godoc
// @Summary Step a document back
// @Description Returns the document to the previous status in the pipeline.
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param request body dto.StepBackDocumentRequest false "Optional explicit assignee and comment"
// @Success 200 {object} dto.WorkflowResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /documents/{documentID}/stepback [post]
func (h *workflowHandler) stepBack(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.StepBackDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Failed to bind JSON for stepback", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.workflowService.StepBack(c.Request.Context(), documentID, actorUserID, req)
	if err != nil {
		respondWorkflowError(c, err, documentID)
		return
	}

	logger.Info("Document stepped back",
		slog.String("document_id", documentID),
		slog.String("new_status", string(result.Status)))
	c.JSON(http.StatusOK, result)
}
