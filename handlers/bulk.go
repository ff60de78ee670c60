package handlers

import (
	"github.com/google/uuid"

	"p9e.in/sitestock/pkg/apperr"
)

// BulkResult reports how far a sequential batch got.
type BulkResult struct {
	Applied  int        `json:"applied"`
	Total    int        `json:"total"`
	FailedID *uuid.UUID `json:"failedId,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// runSequential applies fn to each id in order and stops at the first
// failure. Mutations already applied stay applied; there is no rollback or
// compensation. This keeps error attribution trivial at the cost of partial
// completion, which the response makes visible through Applied and FailedID.
func runSequential(ids []uuid.UUID, fn func(uuid.UUID) *apperr.Error) BulkResult {
	res := BulkResult{Total: len(ids)}
	for _, id := range ids {
		if appErr := fn(id); appErr != nil {
			failed := id
			res.FailedID = &failed
			res.Error = appErr.Message
			return res
		}
		res.Applied++
	}
	return res
}
