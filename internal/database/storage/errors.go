package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes we translate into domain errors instead of
// pre-checking with extra SELECTs. Relying on the constraints keeps
// multi-step operations free of check-then-act races.
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// pqError unwraps err to a *pq.Error if there is one.
func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}
