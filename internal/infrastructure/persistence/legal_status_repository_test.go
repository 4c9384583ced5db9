package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/garment/backend/internal/domain/thirdparty"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedParty(t *testing.T, repo *GormThirdPartyRepository) *thirdparty.ThirdParty {
	t.Helper()
	party, err := thirdparty.NewThirdParty(thirdparty.TypeCliente, "Confecciones Andinas", "900123456-7")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), party))
	return party
}

func TestGormLegalStatusRepository_AppendAndSync(t *testing.T) {
	t.Run("VIGENTE activates the party in the same transaction", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		party := seedParty(t, parties)
		require.False(t, party.IsActive)

		record, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusVigente, "Documentos al día", "jlopez")
		require.NoError(t, err)

		changed, err := ledger.AppendAndSync(context.Background(), record, party)
		require.NoError(t, err)
		assert.True(t, changed)

		reloaded, err := parties.FindByID(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.IsActive)

		latest, err := ledger.FindLatest(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, thirdparty.StatusVigente, latest.Status)
		assert.Equal(t, "Confecciones Andinas", latest.ThirdPartyName)
	})

	t.Run("repeated status appends but does not flip the flag", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		party := seedParty(t, parties)

		first, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusVigente, "", "jlopez")
		require.NoError(t, err)
		_, err = ledger.AppendAndSync(context.Background(), first, party)
		require.NoError(t, err)

		second, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusVigente, "Revisión anual", "jlopez")
		require.NoError(t, err)
		changed, err := ledger.AppendAndSync(context.Background(), second, party)
		require.NoError(t, err)
		assert.False(t, changed)

		history, err := ledger.FindHistory(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("BLOQUEADO deactivates an active party", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		party := seedParty(t, parties)

		vigente, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusVigente, "", "jlopez")
		require.NoError(t, err)
		_, err = ledger.AppendAndSync(context.Background(), vigente, party)
		require.NoError(t, err)

		bloqueado, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusBloqueado, "Cartera vencida", "mgarcia")
		require.NoError(t, err)
		changed, err := ledger.AppendAndSync(context.Background(), bloqueado, party)
		require.NoError(t, err)
		assert.True(t, changed)

		reloaded, err := parties.FindByID(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)
	})
}

func TestGormLegalStatusRepository_FindLatest(t *testing.T) {
	t.Run("returns nil nil for party with no records", func(t *testing.T) {
		db := openTestDB(t)
		ledger := NewGormLegalStatusRepository(db)

		latest, err := ledger.FindLatest(context.Background(), thirdparty.TypeProveedor, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("returns the newest record", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		party := seedParty(t, parties)

		old, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusEnRevision, "", "jlopez")
		require.NoError(t, err)
		old.CreatedAt = time.Now().Add(-48 * time.Hour)
		_, err = ledger.AppendAndSync(context.Background(), old, party)
		require.NoError(t, err)

		recent, err := thirdparty.NewLegalStatusRecord(party, thirdparty.StatusVigente, "", "jlopez")
		require.NoError(t, err)
		_, err = ledger.AppendAndSync(context.Background(), recent, party)
		require.NoError(t, err)

		latest, err := ledger.FindLatest(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, thirdparty.StatusVigente, latest.Status)
	})
}

func TestGormLegalStatusRepository_FindHistory(t *testing.T) {
	t.Run("returns records newest first", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		party := seedParty(t, parties)

		statuses := []thirdparty.Status{
			thirdparty.StatusEnRevision,
			thirdparty.StatusVigente,
			thirdparty.StatusBloqueado,
		}
		base := time.Now().Add(-time.Hour)
		for i, st := range statuses {
			record, err := thirdparty.NewLegalStatusRecord(party, st, "", "jlopez")
			require.NoError(t, err)
			record.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			_, err = ledger.AppendAndSync(context.Background(), record, party)
			require.NoError(t, err)
		}

		history, err := ledger.FindHistory(context.Background(), thirdparty.TypeCliente, party.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, thirdparty.StatusBloqueado, history[0].Status)
		assert.Equal(t, thirdparty.StatusVigente, history[1].Status)
		assert.Equal(t, thirdparty.StatusEnRevision, history[2].Status)
	})

	t.Run("does not leak other parties' records", func(t *testing.T) {
		db := openTestDB(t)
		parties := NewGormThirdPartyRepository(db)
		ledger := NewGormLegalStatusRepository(db)
		a := seedParty(t, parties)

		b, err := thirdparty.NewThirdParty(thirdparty.TypeProveedor, "Textiles del Norte", "800555111-2")
		require.NoError(t, err)
		require.NoError(t, parties.Save(context.Background(), b))

		ra, err := thirdparty.NewLegalStatusRecord(a, thirdparty.StatusVigente, "", "jlopez")
		require.NoError(t, err)
		_, err = ledger.AppendAndSync(context.Background(), ra, a)
		require.NoError(t, err)

		rb, err := thirdparty.NewLegalStatusRecord(b, thirdparty.StatusBloqueado, "", "jlopez")
		require.NoError(t, err)
		_, err = ledger.AppendAndSync(context.Background(), rb, b)
		require.NoError(t, err)

		history, err := ledger.FindHistory(context.Background(), thirdparty.TypeCliente, a.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, a.ID, history[0].ThirdPartyID)
	})
}
