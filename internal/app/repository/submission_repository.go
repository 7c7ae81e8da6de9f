package repository

import (
	"errors"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/logger"
	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission record not found")

type SubmissionFilter struct {
	SessionID   string
	ProductSlug string
	Status      *model.SubmissionStatus
	Limit       int
	Offset      int
}

// SubmissionCounts is the number of records per outcome
type SubmissionCounts struct {
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

type SubmissionRepository interface {
	Create(record *model.SubmissionRecord) error
	FindByID(id uint) (*model.SubmissionRecord, error)
	FindWithFilter(filter SubmissionFilter) ([]model.SubmissionRecord, error)
	CountByStatus() (SubmissionCounts, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(record *model.SubmissionRecord) error {
	logger.Debug("Creating submission record in database", map[string]interface{}{
		"session_id":   record.SessionID,
		"product_slug": record.ProductSlug,
		"status":       record.Status,
	})

	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed to create submission record in database", err, map[string]interface{}{
			"session_id":   record.SessionID,
			"product_slug": record.ProductSlug,
		})
		return err
	}
	return nil
}

func (r *submissionRepository) FindByID(id uint) (*model.SubmissionRecord, error) {
	var record model.SubmissionRecord
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		logger.Error("Failed to find submission record", err, map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	return &record, nil
}

func (r *submissionRepository) FindWithFilter(filter SubmissionFilter) ([]model.SubmissionRecord, error) {
	logger.Debug("Finding submission records with filter", map[string]interface{}{
		"session_id":   filter.SessionID,
		"product_slug": filter.ProductSlug,
		"status":       filter.Status,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})

	query := r.db.Model(&model.SubmissionRecord{})
	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.ProductSlug != "" {
		query = query.Where("product_slug = ?", filter.ProductSlug)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []model.SubmissionRecord
	if err := query.Find(&records).Error; err != nil {
		logger.Error("Failed to find submission records", err)
		return nil, err
	}
	return records, nil
}

func (r *submissionRepository) CountByStatus() (SubmissionCounts, error) {
	var rows []struct {
		Status model.SubmissionStatus
		Count  int64
	}
	err := r.db.Model(&model.SubmissionRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count submission records", err)
		return SubmissionCounts{}, err
	}

	var counts SubmissionCounts
	for _, row := range rows {
		switch row.Status {
		case model.SubmissionSucceeded:
			counts.Succeeded = row.Count
		case model.SubmissionFailed:
			counts.Failed = row.Count
		}
	}
	return counts, nil
}
