package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	"github.com/irodasoft/docuflow_app/internal/core/ports"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

// documentService covers intake and read paths around the workflow engine.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	userRepo     portsrepo.UserReader
	auditRepo    portsrepo.AuditRepositoryFacade
	commentRepo  portsrepo.CommentReader
	archiveSvc   portssvc.ArchiveNumberSvcFacade
	clock        ports.Clock
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	userRepo portsrepo.UserReader,
	auditRepo portsrepo.AuditRepositoryFacade,
	commentRepo portsrepo.CommentReader,
	archiveSvc portssvc.ArchiveNumberSvcFacade,
	clock ports.Clock,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		commentRepo:  commentRepo,
		archiveSvc:   archiveSvc,
		clock:        clock,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// authorizeCompanyAccess ensures the user is a member of the company.
func (s *documentService) authorizeCompanyAccess(ctx context.Context, userID string, companyID string) error {
	hasAccess, err := s.userRepo.HasCompanyAccess(ctx, userID, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check company access",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to check company access: %w", err)
	}
	if !hasAccess {
		return fmt.Errorf("%w: user %s has no access to company %s", apperrors.ErrForbidden, userID, companyID)
	}
	return nil
}

// CreateDocument implements portssvc.DocumentSvcFacade.
func (s *documentService) CreateDocument(ctx context.Context, companyID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	if err := s.authorizeCompanyAccess(ctx, creatorUserID, companyID); err != nil {
		return nil, err
	}

	if req.GrossAmount != nil && req.GrossAmount.IsNegative() {
		return nil, fmt.Errorf("%w: gross amount must not be negative", apperrors.ErrValidation)
	}

	archiveNumber, err := s.archiveSvc.Allocate(ctx, companyID, req.DocumentTypeCode)
	if err != nil {
		// Allocation exhaustion is fatal for the intake; propagate as-is.
		return nil, err
	}

	now := s.clock.Now()
	document := domain.Document{
		DocumentID:       uuid.NewString(),
		ArchiveNumber:    archiveNumber,
		DocumentTypeCode: req.DocumentTypeCode,
		Status:           domain.StatusDraft,
		GrossAmount:      req.GrossAmount,
		CurrencyCode:     req.CurrencyCode,
		CompanyID:        companyID,
		AssignedToUserID: nil,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, document); err != nil {
		s.LogError(ctx, err, "Failed to save document",
			slog.String("archive_number", archiveNumber),
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	// Intake audit entry; a failure here is logged but does not undo intake.
	newStatus := string(domain.StatusDraft)
	if err := s.auditRepo.AppendAuditEntry(ctx, domain.AuditEntry{
		EntryID:     uuid.NewString(),
		DocumentID:  document.DocumentID,
		ActorUserID: creatorUserID,
		Action:      domain.AuditCreated,
		NewValue:    &newStatus,
		CreatedAt:   now,
	}); err != nil {
		s.LogWarn(ctx, "Failed to write intake audit entry",
			slog.String("document_id", document.DocumentID),
			slog.String("error", err.Error()))
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", document.DocumentID),
		slog.String("archive_number", archiveNumber),
		slog.String("company_id", companyID))
	return &document, nil
}

// GetDocumentByID implements portssvc.DocumentSvcFacade.
func (s *documentService) GetDocumentByID(ctx context.Context, companyID string, documentID string, requestingUserID string) (*domain.Document, error) {
	if err := s.authorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	// Obscure existence of documents belonging to other companies.
	if document.CompanyID != companyID {
		s.LogWarn(ctx, "Document requested through wrong company",
			slog.String("document_id", documentID),
			slog.String("document_company", document.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}

	return document, nil
}

// ListDocuments implements portssvc.DocumentSvcFacade.
func (s *documentService) ListDocuments(ctx context.Context, companyID string, requestingUserID string, params dto.ListDocumentsParams) ([]domain.Document, error) {
	if err := s.authorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	documents, err := s.documentRepo.ListDocumentsByCompany(ctx, companyID, params.Status, params.AssignedToUserID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	s.LogDebug(ctx, "Documents listed", slog.Int("count", len(documents)), slog.String("company_id", companyID))
	return documents, nil
}

// GetDocumentHistory implements portssvc.DocumentSvcFacade.
func (s *documentService) GetDocumentHistory(ctx context.Context, companyID string, documentID string, requestingUserID string) ([]domain.AuditEntry, error) {
	// Reuses the company scoping of GetDocumentByID.
	if _, err := s.GetDocumentByID(ctx, companyID, documentID, requestingUserID); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListAuditEntriesByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load document history", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to load history of document %s: %w", documentID, err)
	}
	return entries, nil
}

// GetDocumentComments implements portssvc.DocumentSvcFacade.
func (s *documentService) GetDocumentComments(ctx context.Context, companyID string, documentID string, requestingUserID string) ([]domain.Comment, error) {
	// Reuses the company scoping of GetDocumentByID.
	if _, err := s.GetDocumentByID(ctx, companyID, documentID, requestingUserID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListCommentsByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load document comments", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to load comments of document %s: %w", documentID, err)
	}
	return comments, nil
}
