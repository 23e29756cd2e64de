package models

import (
	"errors"

	"github.com/julianstephens/hearth/internal/constants"
)

// ErrNotFound is returned by storage providers for missing or deleted records.
var ErrNotFound = errors.New("not found")

// ScheduleSummary describes a stored schedule without its entries.
type ScheduleSummary struct {
	Period      constants.PeriodKind `json:"period"`
	StartDate   string               `json:"start_date"` // first date of the period
	RecordID    string               `json:"record_id"`
	Revision    int                  `json:"revision"`
	Placed      int                  `json:"placed"`
	Total       int                  `json:"total"`
	SuccessRate int                  `json:"success_rate"`
	CreatedAt   string               `json:"created_at"` // RFC3339
	DeletedAt   *string              `json:"deleted_at,omitempty"`
}
