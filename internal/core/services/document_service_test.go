package services_test

import (
	"context"
	"errors"
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

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo *MockDocumentRepository
	mockUserRepo     *MockUserRepository
	mockAuditRepo    *MockAuditRepository
	mockCommentRepo  *MockCommentRepository
	mockArchiveSvc   *MockArchiveNumberService
	service          portssvc.DocumentSvcFacade
	now              time.Time
	companyID        string
	userID           string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockCommentRepo = new(MockCommentRepository)
	suite.mockArchiveSvc = new(MockArchiveNumberService)
	suite.now = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewDocumentService(
		suite.mockDocumentRepo,
		suite.mockUserRepo,
		suite.mockAuditRepo,
		suite.mockCommentRepo,
		suite.mockArchiveSvc,
		fixedClock{now: suite.now},
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *DocumentServiceTestSuite) grantAccess() {
	suite.mockUserRepo.On("HasCompanyAccess", mock.Anything, suite.userID, suite.companyID).Return(true, nil).Once()
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_Success() {
	suite.grantAccess()
	suite.mockArchiveSvc.On("Allocate", mock.Anything, suite.companyID, "INVOICE").
		Return("A-INVOICE-250314-0001", nil).Once()

	var saved domain.Document
	suite.mockDocumentRepo.On("SaveDocument", mock.Anything, mock.AnythingOfType("domain.Document")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Document) }).
		Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", mock.Anything, mock.AnythingOfType("domain.AuditEntry")).
		Return(nil).Once()

	gross := decimal.NewFromInt(125000)
	document, err := suite.service.CreateDocument(context.Background(), suite.companyID, dto.CreateDocumentRequest{
		DocumentTypeCode: "INVOICE",
		GrossAmount:      &gross,
		CurrencyCode:     "HUF",
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "A-INVOICE-250314-0001", document.ArchiveNumber)
	assert.Equal(suite.T(), domain.StatusDraft, document.Status)
	assert.Equal(suite.T(), suite.userID, document.CreatedBy)
	assert.Nil(suite.T(), document.AssignedToUserID)
	assert.Equal(suite.T(), saved.DocumentID, document.DocumentID)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_AuditFailureDoesNotUndoIntake() {
	suite.grantAccess()
	suite.mockArchiveSvc.On("Allocate", mock.Anything, suite.companyID, "INVOICE").
		Return("A-INVOICE-250314-0001", nil).Once()
	suite.mockDocumentRepo.On("SaveDocument", mock.Anything, mock.AnythingOfType("domain.Document")).
		Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", mock.Anything, mock.AnythingOfType("domain.AuditEntry")).
		Return(errors.New("audit table unavailable")).Once()

	document, err := suite.service.CreateDocument(context.Background(), suite.companyID, dto.CreateDocumentRequest{
		DocumentTypeCode: "INVOICE",
		CurrencyCode:     "HUF",
	}, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), document)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NoCompanyAccess() {
	suite.mockUserRepo.On("HasCompanyAccess", mock.Anything, suite.userID, suite.companyID).Return(false, nil).Once()

	_, err := suite.service.CreateDocument(context.Background(), suite.companyID, dto.CreateDocumentRequest{
		DocumentTypeCode: "INVOICE",
		CurrencyCode:     "HUF",
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrForbidden)
	suite.mockArchiveSvc.AssertNotCalled(suite.T(), "Allocate")
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_NegativeGrossRejected() {
	suite.grantAccess()
	gross := decimal.NewFromInt(-1)

	_, err := suite.service.CreateDocument(context.Background(), suite.companyID, dto.CreateDocumentRequest{
		DocumentTypeCode: "INVOICE",
		GrossAmount:      &gross,
		CurrencyCode:     "HUF",
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_AllocationExhaustionPropagates() {
	suite.grantAccess()
	suite.mockArchiveSvc.On("Allocate", mock.Anything, suite.companyID, "INVOICE").
		Return("", apperrors.ErrAllocationExhausted).Once()

	_, err := suite.service.CreateDocument(context.Background(), suite.companyID, dto.CreateDocumentRequest{
		DocumentTypeCode: "INVOICE",
		CurrencyCode:     "HUF",
	}, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrAllocationExhausted)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "SaveDocument")
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_WrongCompanyHidden() {
	suite.grantAccess()
	documentID := uuid.NewString()
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, documentID).
		Return(&domain.Document{DocumentID: documentID, CompanyID: uuid.NewString()}, nil).Once()

	_, err := suite.service.GetDocumentByID(context.Background(), suite.companyID, documentID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentHistory_ReturnsAuditTrail() {
	documentID := uuid.NewString()
	// History reuses the company-scoped read.
	suite.grantAccess()
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, documentID).
		Return(&domain.Document{DocumentID: documentID, CompanyID: suite.companyID}, nil).Once()

	entries := []domain.AuditEntry{
		{EntryID: uuid.NewString(), DocumentID: documentID, Action: domain.AuditCreated},
		{EntryID: uuid.NewString(), DocumentID: documentID, Action: domain.AuditStatusChanged},
	}
	suite.mockAuditRepo.On("ListAuditEntriesByDocument", mock.Anything, documentID).
		Return(entries, nil).Once()

	got, err := suite.service.GetDocumentHistory(context.Background(), suite.companyID, documentID, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), domain.AuditCreated, got[0].Action)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentComments_IncludesRejectionMarker() {
	documentID := uuid.NewString()
	suite.grantAccess()
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, documentID).
		Return(&domain.Document{DocumentID: documentID, CompanyID: suite.companyID}, nil).Once()

	comments := []domain.Comment{
		{CommentID: uuid.NewString(), DocumentID: documentID, Body: "Rejected: missing supplier data"},
	}
	suite.mockCommentRepo.On("ListCommentsByDocument", mock.Anything, documentID).
		Return(comments, nil).Once()

	got, err := suite.service.GetDocumentComments(context.Background(), suite.companyID, documentID, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), "Rejected: missing supplier data", got[0].Body)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentComments_WrongCompanyHidden() {
	documentID := uuid.NewString()
	suite.grantAccess()
	suite.mockDocumentRepo.On("FindDocumentByID", mock.Anything, documentID).
		Return(&domain.Document{DocumentID: documentID, CompanyID: uuid.NewString()}, nil).Once()

	_, err := suite.service.GetDocumentComments(context.Background(), suite.companyID, documentID, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockCommentRepo.AssertNotCalled(suite.T(), "ListCommentsByDocument")
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
