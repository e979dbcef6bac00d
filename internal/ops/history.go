package ops

import (
	"database/sql"

	"github.com/hpungsan/zwogen/internal/db"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Limit int // default DefaultHistoryLimit, capped at MaxHistoryLimit
}

// HistoryOutput contains recent conversions, newest first.
type HistoryOutput struct {
	Conversions []db.Conversion `json:"conversions"`
	Count       int             `json:"count"`
}

// History lists recent conversions.
func History(database *sql.DB, input HistoryInput) (*HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	conversions, err := db.ListConversions(database, limit)
	if err != nil {
		return nil, err
	}
	return &HistoryOutput{Conversions: conversions, Count: len(conversions)}, nil
}
