package persistence

import (
	"context"
	"testing"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty defaults to ASC", "", "ASC"},
		{"asc lowercase", "asc", "ASC"},
		{"DESC uppercase", "DESC", "DESC"},
		{"desc with whitespace", "  desc  ", "DESC"},
		{"injection attempt falls back to ASC", "DESC; DROP TABLE users;--", "ASC"},
		{"garbage falls back to ASC", "sideways", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty returns default", "", "created_at"},
		{"whitelisted column passes", "name", "name"},
		{"whitelisted with whitespace", "  document  ", "document"},
		{"unknown column returns default", "password_hash", "created_at"},
		{"subquery returns default", "(SELECT password_hash FROM users LIMIT 1)", "created_at"},
		{"quoted injection returns default", "name'--", "created_at"},
		{"case mismatch returns default", "NAME", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ThirdPartySortFields, "created_at"))
		})
	}
}

func TestFindAllRejectsHostileOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormThirdPartyRepository(db)
	seedParty(t, repo)

	// A hostile order_by must degrade to the default column, not reach SQL
	parties, err := repo.FindAll(context.Background(), thirdparty.TypeCliente, shared.Filter{
		OrderBy:  "(SELECT password_hash FROM users LIMIT 1)",
		OrderDir: "ASC; DROP TABLE users;--",
	})
	require.NoError(t, err)
	assert.Len(t, parties, 1)
}
