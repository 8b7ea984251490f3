package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/irodasoft/docuflow_app/internal/apperrors"
	"github.com/irodasoft/docuflow_app/internal/core/ports"
	portsrepo "github.com/irodasoft/docuflow_app/internal/core/ports/repositories"
	portssvc "github.com/irodasoft/docuflow_app/internal/core/ports/services"
)

// DefaultArchiveMaxAttempts bounds the number of candidate archive numbers
// probed before allocation fails hard.
const DefaultArchiveMaxAttempts = 1000

// archiveNumberService issues archive numbers of the form
// {CompanyInitial}-{TypeCode}-{yyMMdd}-{seq:4digits}. A process-wide mutex
// serializes allocations; the existence probe plus the unique constraint on
// documents.archive_number keep the numbers unique across processes.
type archiveNumberService struct {
	BaseService
	mu           sync.Mutex
	documentRepo portsrepo.DocumentReader
	companyRepo  portsrepo.CompanyReader
	clock        ports.Clock
	maxAttempts  int

	// issued remembers numbers handed out by this process whose documents
	// may not be saved yet, so concurrent callers cannot receive the same
	// free candidate. Reset on day rollover; guarded by mu.
	issuedDay string
	issued    map[string]struct{}
}

// NewArchiveNumberService creates a new archive number allocator.
func NewArchiveNumberService(documentRepo portsrepo.DocumentReader, companyRepo portsrepo.CompanyReader, clock ports.Clock, maxAttempts int) portssvc.ArchiveNumberSvcFacade {
	if maxAttempts <= 0 {
		maxAttempts = DefaultArchiveMaxAttempts
	}
	return &archiveNumberService{
		documentRepo: documentRepo,
		companyRepo:  companyRepo,
		clock:        clock,
		maxAttempts:  maxAttempts,
	}
}

var _ portssvc.ArchiveNumberSvcFacade = (*archiveNumberService)(nil)

// Allocate implements portssvc.ArchiveNumberSvcFacade.
func (s *archiveNumberService) Allocate(ctx context.Context, companyID string, documentTypeCode string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load company for archive number allocation",
				slog.String("company_id", companyID))
		}
		return "", fmt.Errorf("failed to load company %s: %w", companyID, err)
	}

	now := s.clock.Now()
	day := now.Format("060102")
	if day != s.issuedDay {
		s.issuedDay = day
		s.issued = make(map[string]struct{})
	}

	// Seed the sequence from today's document count; probing from there
	// skips the numbers this process already issued today.
	seed, err := s.documentRepo.CountDocumentsForDay(ctx, companyID, documentTypeCode, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to count documents for archive number seed",
			slog.String("company_id", companyID),
			slog.String("document_type_code", documentTypeCode))
		return "", fmt.Errorf("failed to count documents for %s/%s: %w", companyID, documentTypeCode, err)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		seq := seed + 1 + attempt
		candidate := fmt.Sprintf("%s-%s-%s-%04d", company.ArchivePrefix(), documentTypeCode, day, seq)

		if _, taken := s.issued[candidate]; taken {
			continue
		}

		exists, err := s.documentRepo.ArchiveNumberExists(ctx, candidate)
		if err != nil {
			s.LogError(ctx, err, "Failed to probe archive number",
				slog.String("candidate", candidate))
			return "", fmt.Errorf("failed to probe archive number %s: %w", candidate, err)
		}
		if !exists {
			s.issued[candidate] = struct{}{}
			s.LogDebug(ctx, "Archive number allocated",
				slog.String("archive_number", candidate),
				slog.Int("attempts", attempt+1))
			return candidate, nil
		}
	}

	s.LogError(ctx, apperrors.ErrAllocationExhausted, "No free archive number within attempt bound",
		slog.String("company_id", companyID),
		slog.String("document_type_code", documentTypeCode),
		slog.Int("max_attempts", s.maxAttempts))
	return "", fmt.Errorf("%w: no free number for %s/%s on %s after %d attempts",
		apperrors.ErrAllocationExhausted, companyID, documentTypeCode, day, s.maxAttempts)
}
