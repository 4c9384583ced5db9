package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	clientID := uuid.New()
	item, err := NewOrderItem("REF-CAMISA-01", "MUESTRA", 120, 0)
	require.NoError(t, err)

	t.Run("starts in CREADO with schedule dates derived", func(t *testing.T) {
		order, err := NewOrder("ped-001", clientID, []OrderItem{item}, "")
		require.NoError(t, err)
		assert.Equal(t, "PED-001", order.Code)
		assert.Equal(t, StatusCreado, order.Status)
		require.NotNil(t, order.PromisedDelivery)
		require.NotNil(t, order.QuoteExpiry)
		assert.Equal(t, order.PromisedDelivery.AddDate(0, 0, QuoteValidityDays), *order.QuoteExpiry)
		require.Len(t, order.Items, 1)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
	})

	t.Run("requires a client and at least one item", func(t *testing.T) {
		_, err := NewOrder("PED-002", uuid.Nil, []OrderItem{item}, "")
		assert.Error(t, err)

		_, err = NewOrder("PED-002", clientID, nil, "")
		assert.Error(t, err)
	})
}

func TestOrderChangeStatus(t *testing.T) {
	clientID := uuid.New()
	item, _ := NewOrderItem("REF-PANTALON-02", "PRODUCCION", 50, 1)

	t.Run("moves through workflow stages", func(t *testing.T) {
		order, _ := NewOrder("PED-010", clientID, []OrderItem{item}, "")
		require.NoError(t, order.ChangeStatus(StatusCorte))
		assert.Equal(t, StatusCorte, order.Status)
	})

	t.Run("rejects statuses outside the enumeration", func(t *testing.T) {
		order, _ := NewOrder("PED-011", clientID, []OrderItem{item}, "")
		assert.Error(t, order.ChangeStatus(OrderStatus("ARCHIVADO")))
		assert.Equal(t, StatusCreado, order.Status)
	})

	t.Run("terminal orders cannot move again", func(t *testing.T) {
		order, _ := NewOrder("PED-012", clientID, []OrderItem{item}, "")
		require.NoError(t, order.ChangeStatus(StatusCancelado))
		assert.Error(t, order.ChangeStatus(StatusCorte))
		assert.Equal(t, StatusCancelado, order.Status)
	})
}

func TestParseOrderStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		parsed, err := ParseOrderStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseOrderStatus("ENTREGADO_PARCIAL")
	assert.Error(t, err)
}
