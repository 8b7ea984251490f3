package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/irodasoft/docuflow_app/internal/core/domain"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
)

// --- Fixed clock ---

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, status *domain.DocumentStatus, assignedToUserID *string, limit int, offset int) ([]domain.Document, error) {
	args := m.Called(ctx, companyID, status, assignedToUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ArchiveNumberExists(ctx context.Context, archiveNumber string) (bool, error) {
	args := m.Called(ctx, archiveNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) CountDocumentsForDay(ctx context.Context, companyID string, documentTypeCode string, day time.Time) (int, error) {
	args := m.Called(ctx, companyID, documentTypeCode, day)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveTransition(ctx context.Context, transition domain.Transition) error {
	args := m.Called(ctx, transition)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) HasCompanyAccess(ctx context.Context, userID string, companyID string) (bool, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindFirstActiveUserWithRole(ctx context.Context, companyID string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddUserToCompany(ctx context.Context, membership domain.UserCompany) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock TeamRepository ---

type MockTeamRepository struct {
	mock.Mock
}

var _ portsrepo.TeamRepositoryFacade = (*MockTeamRepository)(nil)

func (m *MockTeamRepository) FindActiveTeam(ctx context.Context, companyID string, roleCategory domain.UserRole) (*domain.ApproverTeam, error) {
	args := m.Called(ctx, companyID, roleCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApproverTeam), args.Error(1)
}

func (m *MockTeamRepository) ListActiveMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) ListTeamsByCompany(ctx context.Context, companyID string) ([]domain.ApproverTeam, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApproverTeam), args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.ApproverTeam) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) AddTeamMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) AdvanceRotationCursor(ctx context.Context, teamID string, memberCount int) (int, error) {
	args := m.Called(ctx, teamID, memberCount)
	return args.Int(0), args.Error(1)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntriesByDocument(ctx context.Context, documentID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// --- Mock CommentRepository ---

type MockCommentRepository struct {
	mock.Mock
}

var _ portsrepo.CommentRepositoryFacade = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) AppendComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListCommentsByDocument(ctx context.Context, documentID string) ([]domain.Comment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

// --- Mock PermissionSvc ---

type MockPermissionService struct {
	mock.Mock
}

var _ portssvc.PermissionSvcFacade = (*MockPermissionService)(nil)

func (m *MockPermissionService) CanAct(ctx context.Context, document *domain.Document, actorUserID string) (bool, error) {
	args := m.Called(ctx, document, actorUserID)
	return args.Bool(0), args.Error(1)
}

// --- Mock AssignmentSvc ---

type MockAssignmentService struct {
	mock.Mock
}

var _ portssvc.AssignmentSvcFacade = (*MockAssignmentService)(nil)

func (m *MockAssignmentService) NextAssignee(ctx context.Context, companyID string, roleCategory domain.UserRole) (*string, error) {
	args := m.Called(ctx, companyID, roleCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// --- Mock ArchiveNumberSvc ---

type MockArchiveNumberService struct {
	mock.Mock
}

var _ portssvc.ArchiveNumberSvcFacade = (*MockArchiveNumberService)(nil)

func (m *MockArchiveNumberService) Allocate(ctx context.Context, companyID string, documentTypeCode string) (string, error) {
	args := m.Called(ctx, companyID, documentTypeCode)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }
