package storage

import (
	"fmt"
	"strings"

	"github.com/GoArmGo/ShareBnB/internal/domain"
)

// UpdateField is a single column assignment in a partial update. Repositories
// build the field list from typed update structs, so the set of reachable
// columns is fixed at compile time and values are always bound positionally.
type UpdateField struct {
	Column string
	Value  any
}

// buildPartialUpdate turns an ordered field list into a SET clause with
// positional placeholders starting at $1 and the matching value list.
// The caller appends its own WHERE values after these, continuing the
// numbering at $len(vals)+1.
func buildPartialUpdate(fields []UpdateField) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("no fields to update: %w", domain.ErrInvalidInput)
	}

	assignments := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		vals = append(vals, f.Value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f.Column, len(vals)))
	}

	return strings.Join(assignments, ", "), vals, nil
}

// buildListingFilter turns optional search criteria into a WHERE clause and
// value list. Criteria are ANDed in a fixed order: min price, max price,
// location. Location matches case-insensitively as a substring. With no
// criteria the clause is empty.
func buildListingFilter(f domain.ListingFilter) (string, []any) {
	var whereParts []string
	var vals []any

	if f.MinPrice != nil {
		vals = append(vals, *f.MinPrice)
		whereParts = append(whereParts, fmt.Sprintf("price >= $%d", len(vals)))
	}

	if f.MaxPrice != nil {
		vals = append(vals, *f.MaxPrice)
		whereParts = append(whereParts, fmt.Sprintf("price <= $%d", len(vals)))
	}

	if f.Location != "" {
		vals = append(vals, "%"+f.Location+"%")
		whereParts = append(whereParts, fmt.Sprintf("location ILIKE $%d", len(vals)))
	}

	if len(whereParts) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(whereParts, " AND "), vals
}

// buildUserFilter builds the optional username substring filter for the
// user search query.
func buildUserFilter(username string) (string, []any) {
	if username == "" {
		return "", nil
	}
	return "WHERE username ILIKE $1", []any{"%" + username + "%"}
}
