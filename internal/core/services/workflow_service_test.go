package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
	"github.com/irodasoft/docuflow_app/internal/core/services"
	"github.com/irodasoft/docuflow_app/internal/dto"
)

const testThresholdHUF = 500000

type WorkflowServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo  *MockDocumentRepository
	mockUserRepo      *MockUserRepository
	mockPermissionSvc *MockPermissionService
	mockAssignmentSvc *MockAssignmentService
	service           portssvc.WorkflowSvcFacade
	now               time.Time
	companyID         string
	actorID           string
	creatorID         string
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockPermissionSvc = new(MockPermissionService)
	suite.mockAssignmentSvc = new(MockAssignmentService)
	suite.now = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewWorkflowService(
		suite.mockDocumentRepo,
		suite.mockUserRepo,
		suite.mockPermissionSvc,
		suite.mockAssignmentSvc,
		fixedClock{now: suite.now},
		decimal.NewFromInt(testThresholdHUF),
	)
	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.creatorID = uuid.NewString()
}

func (suite *WorkflowServiceTestSuite) newDocument(typeCode string, status domain.DocumentStatus, gross *decimal.Decimal) *domain.Document {
	return &domain.Document{
		DocumentID:       uuid.NewString(),
		ArchiveNumber:    "A-" + typeCode + "-250314-0001",
		DocumentTypeCode: typeCode,
		Status:           status,
		GrossAmount:      gross,
		CurrencyCode:     "HUF",
		CompanyID:        suite.companyID,
		AssignedToUserID: &suite.actorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     suite.now.Add(-time.Hour),
			CreatedBy:     suite.creatorID,
			LastUpdatedAt: suite.now.Add(-time.Hour),
			LastUpdatedBy: suite.creatorID,
		},
	}
}

func grossOf(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func (suite *WorkflowServiceTestSuite) expectLoad(doc *domain.Document) {
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	suite.mockPermissionSvc.On("CanAct", mock.Anything, doc, suite.actorID).Return(true, nil).Once()
}

func (suite *WorkflowServiceTestSuite) captureTransition() *domain.Transition {
	captured := &domain.Transition{}
	suite.mockDocumentRepo.On("SaveTransition", mock.Anything, mock.AnythingOfType("domain.Transition")).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(domain.Transition)
		}).Return(nil).Once()
	return captured
}

// --- Advance ---

func (suite *WorkflowServiceTestSuite) TestAdvance_DraftToPendingApproval() {
	doc := suite.newDocument("CONTRACT", domain.StatusDraft, grossOf(1000))
	suite.expectLoad(doc)

	approverID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleApprover).
		Return(strPtr(approverID), nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPendingApproval, result.Status)
	assert.Equal(suite.T(), approverID, *result.AssignedToUserID)
	assert.Equal(suite.T(), domain.StatusPendingApproval, captured.Document.Status)
	assert.Equal(suite.T(), suite.actorID, captured.Document.LastUpdatedBy)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestAdvance_NonInvoiceAtThresholdGoesToDone() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(testThresholdHUF))
	suite.expectLoad(doc)
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDone, result.Status)
	// Completed documents return to their creator.
	assert.Equal(suite.T(), suite.creatorID, *captured.Document.AssignedToUserID)
	suite.mockAssignmentSvc.AssertNotCalled(suite.T(), "NextAssignee")
}

func (suite *WorkflowServiceTestSuite) TestAdvance_NonInvoiceAboveThresholdNeedsElevated() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(testThresholdHUF+1))
	suite.expectLoad(doc)

	elevatedID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleElevatedApprover).
		Return(strPtr(elevatedID), nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusElevatedApproval, result.Status)
	assert.Equal(suite.T(), elevatedID, *captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvoiceAlwaysGoesThroughElevated() {
	// Even a tiny invoice must pass elevated review.
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusPendingApproval, grossOf(10))
	suite.expectLoad(doc)

	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleElevatedApprover).
		Return(strPtr(uuid.NewString()), nil).Once()
	suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusElevatedApproval, result.Status)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvoiceElevatedToAccountant() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, grossOf(250000))
	suite.expectLoad(doc)

	accountantID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleAccountant).
		Return(strPtr(accountantID), nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusAccountant, result.Status)
	assert.Equal(suite.T(), accountantID, *captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvoiceWithoutGrossAmountBlocked() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, nil)
	suite.expectLoad(doc)

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveTransition")
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvoiceWithNonPositiveGrossBlocked() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, grossOf(0))
	suite.expectLoad(doc)

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvoiceAboveThresholdBlockedAtValueGate() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, grossOf(testThresholdHUF+1))
	suite.expectLoad(doc)

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveTransition")
}

func (suite *WorkflowServiceTestSuite) TestAdvance_NonInvoiceElevatedToDone() {
	doc := suite.newDocument("CONTRACT", domain.StatusElevatedApproval, grossOf(750000))
	suite.expectLoad(doc)
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDone, result.Status)
	assert.Equal(suite.T(), suite.creatorID, *captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_AccountantToDone() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusAccountant, grossOf(250000))
	suite.expectLoad(doc)
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDone, result.Status)
	assert.Equal(suite.T(), suite.creatorID, *captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_TerminalStatusFails() {
	for _, status := range []domain.DocumentStatus{domain.StatusDone, domain.StatusRejected} {
		doc := suite.newDocument("CONTRACT", status, grossOf(1000))
		suite.expectLoad(doc)

		_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

		assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
	}
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveTransition")
}

func (suite *WorkflowServiceTestSuite) TestAdvance_DeniedWhenPermissionRefused() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(1000))
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	suite.mockPermissionSvc.On("CanAct", mock.Anything, doc, suite.actorID).Return(false, nil).Once()

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_UnknownDocument() {
	documentID := uuid.NewString()
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, documentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Advance(context.Background(), documentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_ExplicitEligibleAssigneeWins() {
	doc := suite.newDocument("CONTRACT", domain.StatusDraft, grossOf(1000))
	suite.expectLoad(doc)

	targetID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, targetID).
		Return(&domain.User{UserID: targetID, IsActive: true}, nil).Once()
	suite.mockUserRepo.On("HasCompanyAccess", mock.Anything, targetID, suite.companyID).Return(true, nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{
		AssignToUserID: strPtr(targetID),
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), targetID, *result.AssignedToUserID)
	assert.Equal(suite.T(), targetID, *captured.Document.AssignedToUserID)
	suite.mockAssignmentSvc.AssertNotCalled(suite.T(), "NextAssignee")
}

func (suite *WorkflowServiceTestSuite) TestAdvance_IneligibleExplicitAssigneeFallsBack() {
	doc := suite.newDocument("CONTRACT", domain.StatusDraft, grossOf(1000))
	suite.expectLoad(doc)

	inactiveID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, inactiveID).
		Return(&domain.User{UserID: inactiveID, IsActive: false}, nil).Once()

	fallbackID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleApprover).
		Return(strPtr(fallbackID), nil).Once()
	suite.captureTransition()

	result, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{
		AssignToUserID: strPtr(inactiveID),
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), fallbackID, *result.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_AuditEntriesForStatusAndAssignment() {
	doc := suite.newDocument("CONTRACT", domain.StatusDraft, grossOf(1000))
	suite.expectLoad(doc)

	approverID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleApprover).
		Return(strPtr(approverID), nil).Once()
	captured := suite.captureTransition()

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), captured.AuditEntries, 2)
	assert.Equal(suite.T(), domain.AuditStatusChanged, captured.AuditEntries[0].Action)
	assert.Equal(suite.T(), string(domain.StatusDraft), *captured.AuditEntries[0].OldValue)
	assert.Equal(suite.T(), string(domain.StatusPendingApproval), *captured.AuditEntries[0].NewValue)
	assert.Equal(suite.T(), domain.AuditAssigned, captured.AuditEntries[1].Action)
	assert.Equal(suite.T(), approverID, *captured.AuditEntries[1].NewValue)
	assert.Nil(suite.T(), captured.Comment)
}

// --- Reject ---

func (suite *WorkflowServiceTestSuite) TestReject_ReturnsDocumentToCreator() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, grossOf(250000))
	suite.expectLoad(doc)
	captured := suite.captureTransition()

	result, err := suite.service.Reject(context.Background(), doc.DocumentID, suite.actorID, dto.RejectDocumentRequest{
		Reason: "missing supplier data",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRejected, result.Status)
	assert.Equal(suite.T(), suite.creatorID, *captured.Document.AssignedToUserID)

	actions := make([]domain.AuditAction, len(captured.AuditEntries))
	for i, e := range captured.AuditEntries {
		actions[i] = e.Action
	}
	assert.Contains(suite.T(), actions, domain.AuditStatusChanged)
	assert.Contains(suite.T(), actions, domain.AuditRejected)
	assert.Contains(suite.T(), actions, domain.AuditAssigned)

	assert.NotNil(suite.T(), captured.Comment)
	assert.Equal(suite.T(), "Rejected: missing supplier data", captured.Comment.Body)
	assert.Equal(suite.T(), suite.actorID, captured.Comment.AuthorUserID)
}

func (suite *WorkflowServiceTestSuite) TestReject_BlankReasonFails() {
	_, err := suite.service.Reject(context.Background(), uuid.NewString(), suite.actorID, dto.RejectDocumentRequest{
		Reason: "   ",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindDocumentByID")
}

func (suite *WorkflowServiceTestSuite) TestReject_TerminalStatusFails() {
	doc := suite.newDocument("CONTRACT", domain.StatusRejected, grossOf(1000))
	suite.expectLoad(doc)

	_, err := suite.service.Reject(context.Background(), doc.DocumentID, suite.actorID, dto.RejectDocumentRequest{
		Reason: "already gone",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
}

// --- Delegate ---

func (suite *WorkflowServiceTestSuite) TestDelegate_ChangesAssigneeOnly() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(1000))
	suite.expectLoad(doc)

	targetID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, targetID).
		Return(&domain.User{UserID: targetID, IsActive: true}, nil).Once()
	suite.mockUserRepo.On("HasCompanyAccess", mock.Anything, targetID, suite.companyID).Return(true, nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.Delegate(context.Background(), doc.DocumentID, suite.actorID, dto.DelegateDocumentRequest{
		TargetUserID: targetID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPendingApproval, result.Status)
	assert.Equal(suite.T(), targetID, *captured.Document.AssignedToUserID)
	assert.Equal(suite.T(), domain.StatusPendingApproval, captured.Document.Status)

	assert.Len(suite.T(), captured.AuditEntries, 1)
	assert.Equal(suite.T(), domain.AuditDelegated, captured.AuditEntries[0].Action)
	assert.Equal(suite.T(), suite.actorID, *captured.AuditEntries[0].OldValue)
	assert.Equal(suite.T(), targetID, *captured.AuditEntries[0].NewValue)
}

func (suite *WorkflowServiceTestSuite) TestDelegate_IneligibleTargetFails() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(1000))
	suite.expectLoad(doc)

	targetID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, targetID).
		Return(&domain.User{UserID: targetID, IsActive: true}, nil).Once()
	suite.mockUserRepo.On("HasCompanyAccess", mock.Anything, targetID, suite.companyID).Return(false, nil).Once()

	_, err := suite.service.Delegate(context.Background(), doc.DocumentID, suite.actorID, dto.DelegateDocumentRequest{
		TargetUserID: targetID,
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTarget)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveTransition")
}

func (suite *WorkflowServiceTestSuite) TestDelegate_TerminalStatusFails() {
	doc := suite.newDocument("CONTRACT", domain.StatusDone, grossOf(1000))
	suite.expectLoad(doc)

	_, err := suite.service.Delegate(context.Background(), doc.DocumentID, suite.actorID, dto.DelegateDocumentRequest{
		TargetUserID: uuid.NewString(),
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
}

// --- StepBack ---

func (suite *WorkflowServiceTestSuite) TestStepBack_PendingReturnsToDraft() {
	doc := suite.newDocument("CONTRACT", domain.StatusPendingApproval, grossOf(1000))
	suite.expectLoad(doc)
	captured := suite.captureTransition()

	result, err := suite.service.StepBack(context.Background(), doc.DocumentID, suite.actorID, dto.StepBackDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusDraft, result.Status)
	// Draft has no role category; the document ends up unassigned.
	assert.Nil(suite.T(), captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestStepBack_ElevatedReturnsToPending() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusElevatedApproval, grossOf(250000))
	suite.expectLoad(doc)

	approverID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleApprover).
		Return(strPtr(approverID), nil).Once()
	captured := suite.captureTransition()

	result, err := suite.service.StepBack(context.Background(), doc.DocumentID, suite.actorID, dto.StepBackDocumentRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPendingApproval, result.Status)
	assert.Equal(suite.T(), approverID, *captured.Document.AssignedToUserID)
}

func (suite *WorkflowServiceTestSuite) TestStepBack_FromDraftFails() {
	doc := suite.newDocument("CONTRACT", domain.StatusDraft, grossOf(1000))
	suite.expectLoad(doc)

	_, err := suite.service.StepBack(context.Background(), doc.DocumentID, suite.actorID, dto.StepBackDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
}

func (suite *WorkflowServiceTestSuite) TestStepBack_FromTerminalFails() {
	doc := suite.newDocument("CONTRACT", domain.StatusDone, grossOf(1000))
	suite.expectLoad(doc)

	_, err := suite.service.StepBack(context.Background(), doc.DocumentID, suite.actorID, dto.StepBackDocumentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidState)
}

func (suite *WorkflowServiceTestSuite) TestAdvanceThenStepBack_Roundtrip() {
	doc := suite.newDocument(domain.DocumentTypeInvoice, domain.StatusPendingApproval, grossOf(250000))
	suite.expectLoad(doc)

	elevatedID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleElevatedApprover).
		Return(strPtr(elevatedID), nil).Once()
	advanced := suite.captureTransition()

	_, err := suite.service.Advance(context.Background(), doc.DocumentID, suite.actorID, dto.AdvanceDocumentRequest{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusElevatedApproval, advanced.Document.Status)

	// Stepping the advanced document back lands on the status it came from.
	after := advanced.Document
	suite.expectLoad(&after)
	approverID := uuid.NewString()
	suite.mockAssignmentSvc.On("NextAssignee", mock.Anything, suite.companyID, domain.RoleApprover).
		Return(strPtr(approverID), nil).Once()
	stepped := suite.captureTransition()

	_, err = suite.service.StepBack(context.Background(), after.DocumentID, suite.actorID, dto.StepBackDocumentRequest{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPendingApproval, stepped.Document.Status)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
