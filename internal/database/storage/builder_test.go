package storage

import (
	"testing"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildPartialUpdate(t *testing.T) {
	setClause, vals, err := buildPartialUpdate([]UpdateField{
		{Column: "first_name", Value: "Aliya"},
		{Column: "email", Value: "aliya@example.com"},
	})
	require.NoError(t, err)
	require.Equal(t, "first_name = $1, email = $2", setClause)
	require.Equal(t, []any{"Aliya", "aliya@example.com"}, vals)
}

func TestBuildPartialUpdate_SingleField(t *testing.T) {
	setClause, vals, err := buildPartialUpdate([]UpdateField{
		{Column: "price", Value: 120.0},
	})
	require.NoError(t, err)
	require.Equal(t, "price = $1", setClause)
	require.Equal(t, []any{120.0}, vals)
}

func TestBuildPartialUpdate_PreservesFieldOrder(t *testing.T) {
	fields := []UpdateField{
		{Column: "title", Value: "a"},
		{Column: "description", Value: "b"},
		{Column: "location", Value: "c"},
		{Column: "price", Value: 1.0},
		{Column: "image", Value: "d"},
	}
	setClause, vals, err := buildPartialUpdate(fields)
	require.NoError(t, err)
	require.Equal(t, "title = $1, description = $2, location = $3, price = $4, image = $5", setClause)
	require.Len(t, vals, len(fields))
}

func TestBuildPartialUpdate_Empty(t *testing.T) {
	_, _, err := buildPartialUpdate(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildListingFilter_AllCriteria(t *testing.T) {
	where, vals := buildListingFilter(domain.ListingFilter{
		MinPrice: floatPtr(50),
		MaxPrice: floatPtr(200),
		Location: "Almaty",
	})
	require.Equal(t, "WHERE price >= $1 AND price <= $2 AND location ILIKE $3", where)
	require.Equal(t, []any{50.0, 200.0, "%Almaty%"}, vals)
}

func TestBuildListingFilter_PartialCriteria(t *testing.T) {
	where, vals := buildListingFilter(domain.ListingFilter{MaxPrice: floatPtr(200)})
	require.Equal(t, "WHERE price <= $1", where)
	require.Equal(t, []any{200.0}, vals)

	where, vals = buildListingFilter(domain.ListingFilter{Location: "new"})
	require.Equal(t, "WHERE location ILIKE $1", where)
	require.Equal(t, []any{"%new%"}, vals)
}

func TestBuildListingFilter_Empty(t *testing.T) {
	where, vals := buildListingFilter(domain.ListingFilter{})
	require.Empty(t, where)
	require.Empty(t, vals)
}

func TestBuildUserFilter(t *testing.T) {
	where, vals := buildUserFilter("gra")
	require.Equal(t, "WHERE username ILIKE $1", where)
	require.Equal(t, []any{"%gra%"}, vals)

	where, vals = buildUserFilter("")
	require.Empty(t, where)
	require.Empty(t, vals)
}
