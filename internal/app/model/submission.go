package model

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

type SubmissionMode string

const (
	SubmissionCreate SubmissionMode = "create"
	SubmissionUpdate SubmissionMode = "update"
)

// FieldList stores a list of payload field names. On postgres it is a
// native text[] column; other dialects keep the array literal as text.
type FieldList []string

func (f FieldList) Value() (driver.Value, error) {
	return pq.StringArray(f).Value()
}

func (f *FieldList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*f = FieldList(arr)
	return nil
}

func (FieldList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// SubmissionRecord is the audit trail of one submit attempt
type SubmissionRecord struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	SessionID    string           `gorm:"type:varchar(36);index;not null" json:"session_id"`
	Mode         SubmissionMode   `gorm:"type:varchar(10);not null" json:"mode"`
	ProductSlug  string           `gorm:"type:varchar(255);index" json:"product_slug"`
	ProductName  string           `gorm:"type:varchar(255)" json:"product_name"`
	VariantMode  bool             `json:"variant_mode"`
	VariantCount int              `json:"variant_count"`
	StagedImages int              `json:"staged_images"`
	Persisted    int              `json:"persisted_images"`
	Status       SubmissionStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	ErrorMessage string           `gorm:"type:text" json:"error_message,omitempty"`
	RemoteStatus int              `json:"remote_status,omitempty"`
	Fields       FieldList        `json:"fields"`
	DurationMS   int64            `json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (SubmissionRecord) TableName() string {
	return "submission_records"
}
