package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/catalog"
	"posledger/internal/domain"
	"posledger/internal/money"
	"posledger/internal/services"
)

func TestInventoryService_CheckAvailability(t *testing.T) {
	cat := catalog.New()
	svc := services.NewInventoryService(cat)

	many, _ := cat.Add("many", money.FromInt(1), 6)
	few, _ := cat.Add("few", money.FromInt(1), 2)
	none, _ := cat.Add("none", money.FromInt(1), 0)

	tests := []struct {
		code   int
		status string
		qty    int
	}{
		{many.Code, "IN_STOCK", 6},
		{few.Code, "LOW_STOCK", 2},
		{none.Code, "OUT_OF_STOCK", 0},
	}
	for _, tt := range tests {
		a, err := svc.CheckAvailability(tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.status, a.Status)
		assert.Equal(t, tt.qty, a.Qty)
	}

	_, err := svc.CheckAvailability(99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestClassifyThreshold(t *testing.T) {
	assert.Equal(t, "IN_STOCK", services.Classify(services.LowStockThreshold).Status)
	assert.Equal(t, "LOW_STOCK", services.Classify(services.LowStockThreshold-1).Status)
	assert.Equal(t, "OUT_OF_STOCK", services.Classify(0).Status)
}
