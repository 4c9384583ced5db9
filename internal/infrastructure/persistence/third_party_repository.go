package persistence

import (
	"context"
	"strings"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormThirdPartyRepository implements thirdparty.Repository using GORM
type GormThirdPartyRepository struct {
	db *gorm.DB
}

// NewGormThirdPartyRepository creates a new GormThirdPartyRepository
func NewGormThirdPartyRepository(db *gorm.DB) *GormThirdPartyRepository {
	return &GormThirdPartyRepository{db: db}
}

// FindByID finds a third party by type and ID
func (r *GormThirdPartyRepository) FindByID(ctx context.Context, t thirdparty.Type, id uuid.UUID) (*thirdparty.ThirdParty, error) {
	var party thirdparty.ThirdParty
	if err := r.db.WithContext(ctx).
		Where("type = ? AND id = ?", t, id).
		First(&party).Error; err != nil {
		return nil, classifyError(err)
	}
	return &party, nil
}

// FindAll finds all third parties of a type matching the filter
func (r *GormThirdPartyRepository) FindAll(ctx context.Context, t thirdparty.Type, filter shared.Filter) ([]thirdparty.ThirdParty, error) {
	var parties []thirdparty.ThirdParty
	query := r.db.WithContext(ctx).
		Model(&thirdparty.ThirdParty{}).
		Where("type = ?", t)
	query = applyFilter(query, filter, ThirdPartySortFields, "name", "document")

	if err := query.Find(&parties).Error; err != nil {
		return nil, classifyError(err)
	}
	return parties, nil
}

// Save creates or updates a third party
func (r *GormThirdPartyRepository) Save(ctx context.Context, party *thirdparty.ThirdParty) error {
	return classifyError(r.db.WithContext(ctx).Save(party).Error)
}

// Count counts third parties of a type
func (r *GormThirdPartyRepository) Count(ctx context.Context, t thirdparty.Type) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&thirdparty.ThirdParty{}).
		Where("type = ?", t).
		Count(&count).Error; err != nil {
		return 0, classifyError(err)
	}
	return count, nil
}

// applyFilter applies search, ordering, and pagination to a list query.
// sortFields is the whitelist of sortable columns; searchCols are the
// columns matched against Filter.Search.
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, searchCols ...string) *gorm.DB {
	if filter.Search != "" && len(searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		clauses := make([]string, len(searchCols))
		args := make([]interface{}, len(searchCols))
		for i, col := range searchCols {
			clauses[i] = col + " LIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	// Whitelist validation so caller input never becomes raw ORDER BY SQL
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	return query
}

// Ensure GormThirdPartyRepository implements thirdparty.Repository
var _ thirdparty.Repository = (*GormThirdPartyRepository)(nil)
