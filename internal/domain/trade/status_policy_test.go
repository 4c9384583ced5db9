package trade

import (
	"testing"

	"github.com/garment/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("ADMINISTRADOR may set every status including CANCELADO", func(t *testing.T) {
		for _, status := range AllStatuses() {
			assert.True(t, CanTransition(identity.RoleAdministrador, status), string(status))
		}
	})

	t.Run("LIDER_DE_PROCESOS may set everything except CANCELADO", func(t *testing.T) {
		for _, status := range AllStatuses() {
			want := status != StatusCancelado
			assert.Equal(t, want, CanTransition(identity.RoleLiderDeProcesos, status), string(status))
		}
	})

	t.Run("stage roles are bound to their stage", func(t *testing.T) {
		assert.True(t, CanTransition(identity.RoleOperarioEmpaque, StatusEmpaque))
		assert.False(t, CanTransition(identity.RoleOperarioEmpaque, StatusCorte))
		assert.True(t, CanTransition(identity.RoleOperarioCorte, StatusCorte))
		assert.True(t, CanTransition(identity.RoleAsesorComercial, StatusCreado))
		assert.True(t, CanTransition(identity.RoleAsesorComercial, StatusCompletado))
		assert.False(t, CanTransition(identity.RoleAsesorComercial, StatusCancelado))
	})

	t.Run("unknown or empty role is denied", func(t *testing.T) {
		assert.False(t, CanTransition("", StatusEmpaque))
		assert.False(t, CanTransition("CONTADOR", StatusEmpaque))
	})

	t.Run("statuses outside the enumeration are denied", func(t *testing.T) {
		assert.False(t, CanTransition(identity.RoleAdministrador, OrderStatus("ARCHIVADO")))
	})
}

func TestAllowedStatuses(t *testing.T) {
	t.Run("ADMINISTRADOR gets the full enumeration", func(t *testing.T) {
		assert.ElementsMatch(t, AllStatuses(), AllowedStatuses(identity.RoleAdministrador))
	})

	t.Run("LIDER_DE_PROCESOS gets everything but CANCELADO", func(t *testing.T) {
		allowed := AllowedStatuses(identity.RoleLiderDeProcesos)
		assert.Len(t, allowed, len(AllStatuses())-1)
		assert.NotContains(t, allowed, StatusCancelado)
	})

	t.Run("a stage role gets only its stages", func(t *testing.T) {
		assert.Equal(t, []OrderStatus{StatusEmpaque}, AllowedStatuses(identity.RoleOperarioEmpaque))
	})

	t.Run("unknown role gets the empty set", func(t *testing.T) {
		assert.Empty(t, AllowedStatuses("CONTADOR"))
		assert.Empty(t, AllowedStatuses(""))
	})
}
