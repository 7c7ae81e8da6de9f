package service

import (
	"context"
	"errors"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/app/repository"
	"github.com/ikkim/catalog-console/pkg/logger"
)

// ErrSubmissionLogDisabled is returned by reads when no database is configured
var ErrSubmissionLogDisabled = errors.New("submission log disabled")

const maxSubmissionPage = 100

type SubmissionService interface {
	Record(ctx context.Context, record *model.SubmissionRecord)
	List(filter repository.SubmissionFilter) ([]model.SubmissionRecord, error)
	Get(id uint) (*model.SubmissionRecord, error)
	Counts() (repository.SubmissionCounts, error)
}

type submissionService struct {
	repo repository.SubmissionRepository
}

// NewSubmissionService returns the audit log service. A nil repo turns
// recording into a no-op.
func NewSubmissionService(repo repository.SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

// Record stores a submit outcome. Failures are logged only; the audit log
// never fails a submit.
func (s *submissionService) Record(_ context.Context, record *model.SubmissionRecord) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Create(record); err != nil {
		logger.Warn("Submission outcome not recorded", map[string]interface{}{
			"session_id": record.SessionID,
			"status":     record.Status,
			"error":      err.Error(),
		})
	}
}

func (s *submissionService) List(filter repository.SubmissionFilter) ([]model.SubmissionRecord, error) {
	if s.repo == nil {
		return nil, ErrSubmissionLogDisabled
	}
	if filter.Limit <= 0 || filter.Limit > maxSubmissionPage {
		filter.Limit = maxSubmissionPage
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.FindWithFilter(filter)
}

func (s *submissionService) Get(id uint) (*model.SubmissionRecord, error) {
	if s.repo == nil {
		return nil, ErrSubmissionLogDisabled
	}
	return s.repo.FindByID(id)
}

func (s *submissionService) Counts() (repository.SubmissionCounts, error) {
	if s.repo == nil {
		return repository.SubmissionCounts{}, ErrSubmissionLogDisabled
	}
	return s.repo.CountByStatus()
}
