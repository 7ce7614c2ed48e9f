package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityMapCoercion(t *testing.T) {
	// Form kaynaklı gevşek değerler: string sayı, null, boş string
	var m QuantityMap
	err := json.Unmarshal([]byte(`{"S":"40","M":40,"L":null,"XL":"","2XL":"abc"}`), &m)
	require.NoError(t, err)

	assert.Equal(t, 40.0, m["S"])
	assert.Equal(t, 40.0, m["M"])
	assert.Equal(t, 0.0, m["L"])
	assert.Equal(t, 0.0, m["XL"])
	assert.Equal(t, 0.0, m["2XL"])
	assert.Equal(t, 80.0, m.Total())
}

func TestQuantityMapHasPositive(t *testing.T) {
	assert.False(t, QuantityMap{}.HasPositive())
	assert.False(t, QuantityMap{"S": 0, "M": -3}.HasPositive())
	assert.True(t, QuantityMap{"S": 0, "M": 1}.HasPositive())
}

func TestFabricCoercion(t *testing.T) {
	var f Fabric
	err := json.Unmarshal([]byte(`{"kind":"Süprem","color":"Lacivert","per_piece":"0.12"}`), &f)
	require.NoError(t, err)

	assert.Equal(t, "Süprem", f.Kind)
	assert.Equal(t, 0.12, f.PerPiece)
	assert.Equal(t, "kg", f.UnitOrDefault())
}

func TestFabricSetActiveSlots(t *testing.T) {
	set := FabricSet{
		Main: Fabric{Kind: "Süprem", PerPiece: 0.12},
		G1:   Fabric{Kind: "Ribana", PerPiece: 0.02},
		G2:   Fabric{Kind: "", PerPiece: 0.5},    // cinsi boş, hesaba girmez
		G3:   Fabric{Kind: "Tela", PerPiece: 0},  // tüketimi yok, hesaba girmez
		G4:   Fabric{Kind: "   ", PerPiece: 0.1}, // sadece boşluk da boş sayılır
	}

	slots := set.ActiveSlots()
	require.Len(t, slots, 2)
	assert.True(t, slots[0].IsMain)
	assert.Equal(t, "Süprem", slots[0].Fabric.Kind)
	assert.Equal(t, "Ribana", slots[1].Fabric.Kind)
}

func TestOrderStageDefault(t *testing.T) {
	o := Order{}
	assert.Equal(t, StageKesimhanede, o.Stage())

	o.CurrentStage = StageDikim
	assert.Equal(t, StageDikim, o.Stage())
}

func TestOrderPlannedQuantity(t *testing.T) {
	o := Order{
		QtyBySize:    QuantityMap{"S": 40, "M": 40, "L": 20},
		ExtraPercent: 5,
	}
	assert.Equal(t, 100.0, o.BaseQuantity())
	assert.Equal(t, 105, o.PlannedQuantity())

	// Küsurat hep yukarı yuvarlanır
	o.QtyBySize = QuantityMap{"S": 97}
	assert.Equal(t, 102, o.PlannedQuantity()) // 97 * 1.05 = 101.85

	o.ExtraPercent = 0
	assert.Equal(t, 97, o.PlannedQuantity())
}

func TestPlannedQuantityMonotonic(t *testing.T) {
	// Fazla yüzdesi ya da herhangi bir beden arttıkça planlanan hiç azalmaz
	prev := 0
	for _, extra := range []float64{0, 1, 2.5, 5, 7, 10, 15} {
		o := Order{QtyBySize: QuantityMap{"S": 33, "M": 14}, ExtraPercent: extra}
		p := o.PlannedQuantity()
		assert.GreaterOrEqual(t, p, prev, "extra=%v", extra)
		prev = p
	}

	prev = 0
	for qty := 1.0; qty <= 50; qty++ {
		o := Order{QtyBySize: QuantityMap{"S": qty}, ExtraPercent: 5}
		p := o.PlannedQuantity()
		assert.GreaterOrEqual(t, p, prev, "qty=%v", qty)
		prev = p
	}
}

func TestOrderHasCutting(t *testing.T) {
	o := Order{}
	assert.False(t, o.HasCutting())

	o.CuttingQty = QuantityMap{"S": 0}
	assert.False(t, o.HasCutting())

	o.CuttingQty = QuantityMap{"S": 38}
	assert.True(t, o.HasCutting())
	assert.Equal(t, 38.0, o.CutQuantity())
}
