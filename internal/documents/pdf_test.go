package documents

import (
	"testing"
	"time"

	"konfeksiyon-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	return models.Order{
		ID:           1,
		OrderNo:      "MEH-2026-001",
		Customer:     "Mehmet Tekstil",
		Article:      "2301",
		Model:        "Bisiklet Yaka",
		Color:        "Lacivert",
		Due:          &due,
		ExtraPercent: 5,
		QtyBySize:    models.QuantityMap{"S": 40, "M": 40, "L": 20},
		MarkerWidth:  "180",
		Fabrics: models.FabricSet{
			Main: models.Fabric{Kind: "Süprem", Content: "%100 Pamuk", PerPiece: 0.12},
			G1:   models.Fabric{Kind: "Ribana", PerPiece: 0.02},
		},
	}
}

func TestCuttingOrderPDF(t *testing.T) {
	out, err := CuttingOrder(sampleOrder(), "NAVY BLUE")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestCuttingOrderPDFWithResults(t *testing.T) {
	o := sampleOrder()
	o.CuttingQty = models.QuantityMap{"S": 42, "M": 41, "L": 22}
	cuttingDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	o.CuttingDate = &cuttingDate

	out, err := CuttingOrder(o, "NAVY BLUE")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFabricOrderPDF(t *testing.T) {
	out, err := FabricOrder([]models.Order{sampleOrder()}, "NAVY BLUE")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFabricOrderPDFEmptyGroup(t *testing.T) {
	_, err := FabricOrder(nil, "NAVY BLUE")
	assert.Error(t, err)
}

func TestSortedSizes(t *testing.T) {
	qty := models.QuantityMap{"XL": 5, "S": 10, "M": 8, "3XS": 1, "L": 0, "ÖZEL": 2}
	sizes := sortedSizes(qty)
	assert.Equal(t, []string{"3XS", "S", "M", "XL", "ÖZEL"}, sizes)
}
