package persistence

import (
	"context"
	"errors"

	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLegalStatusRepository implements thirdparty.LedgerRepository using
// GORM. The ledger table is append-only: this repository never updates
// or deletes records.
type GormLegalStatusRepository struct {
	db *gorm.DB
}

// NewGormLegalStatusRepository creates a new GormLegalStatusRepository
func NewGormLegalStatusRepository(db *gorm.DB) *GormLegalStatusRepository {
	return &GormLegalStatusRepository{db: db}
}

// AppendAndSync appends a ledger record and, in the same transaction,
// updates the party's derived active flag when it changed. Either both
// writes commit or neither does.
func (r *GormLegalStatusRepository) AppendAndSync(ctx context.Context, record *thirdparty.LegalStatusRecord, party *thirdparty.ThirdParty) (bool, error) {
	changed := party.ApplyLegalStatus(record.Status)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if changed {
			return tx.Model(&thirdparty.ThirdParty{}).
				Where("id = ?", party.ID).
				Updates(map[string]interface{}{
					"is_active":  party.IsActive,
					"updated_at": party.UpdatedAt,
				}).Error
		}
		return nil
	})
	if err != nil {
		return false, classifyError(err)
	}
	return changed, nil
}

// FindLatest returns the most recent record for the party, or (nil, nil)
// when the party has no records
func (r *GormLegalStatusRepository) FindLatest(ctx context.Context, t thirdparty.Type, partyID uuid.UUID) (*thirdparty.LegalStatusRecord, error) {
	var record thirdparty.LegalStatusRecord
	err := r.db.WithContext(ctx).
		Where("third_party_type = ? AND third_party_id = ?", t, partyID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyError(err)
	}
	return &record, nil
}

// FindHistory returns all records for the party, newest first
func (r *GormLegalStatusRepository) FindHistory(ctx context.Context, t thirdparty.Type, partyID uuid.UUID) ([]thirdparty.LegalStatusRecord, error) {
	var records []thirdparty.LegalStatusRecord
	if err := r.db.WithContext(ctx).
		Where("third_party_type = ? AND third_party_id = ?", t, partyID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, classifyError(err)
	}
	return records, nil
}

// Ensure GormLegalStatusRepository implements thirdparty.LedgerRepository
var _ thirdparty.LedgerRepository = (*GormLegalStatusRepository)(nil)
