package dashboard

import (
	"math"
	"sort"

	"konfeksiyon-backend/internal/fabric"
	"konfeksiyon-backend/internal/models"
)

type DeadlineItem struct {
	ID            uint   `json:"id"`
	OrderNo       string `json:"order_no"`
	Customer      string `json:"customer"`
	Article       string `json:"article"`
	Due           string `json:"due"`
	FabricOrdered bool   `json:"fabric_ordered"`
}

type Stats struct {
	OrderCount         int               `json:"order_count"`
	TotalPlanned       float64           `json:"total_planned"` // kesim fazlası hariç sipariş adedi
	TotalActualCut     float64           `json:"total_actual_cut"`
	EfficiencyPercent  int               `json:"efficiency_percent"` // kesilen / planlanan
	FabricOrderedCount int               `json:"fabric_ordered_count"`
	WaitingFabricOrder int               `json:"waiting_fabric_order"`
	Deadlines          []DeadlineItem    `json:"deadlines"`
	Fabrics            []fabric.Shortage `json:"fabrics"`
}

// Compute: panel istatistikleri. orders aktif (arşivlenmemiş) kayıtlar,
// deliveries tüm kumaş girişleri.
func Compute(orders []models.Order, deliveries []models.FabricDelivery) Stats {
	stats := Stats{
		OrderCount: len(orders),
		Deadlines:  []DeadlineItem{},
	}

	for _, o := range orders {
		stats.TotalPlanned += o.BaseQuantity()
		stats.TotalActualCut += o.CutQuantity()

		if o.FabricOrdered {
			stats.FabricOrderedCount++
		} else {
			stats.WaitingFabricOrder++
		}
	}

	if stats.TotalPlanned > 0 {
		stats.EfficiencyPercent = int(math.Round(stats.TotalActualCut / stats.TotalPlanned * 100))
	}

	// En yakın 5 termin
	withDue := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Due != nil {
			withDue = append(withDue, o)
		}
	}
	sort.SliceStable(withDue, func(i, j int) bool {
		return withDue[i].Due.Before(*withDue[j].Due)
	})
	for i, o := range withDue {
		if i == 5 {
			break
		}
		stats.Deadlines = append(stats.Deadlines, DeadlineItem{
			ID:            o.ID,
			OrderNo:       o.OrderNo,
			Customer:      o.Customer,
			Article:       o.Article,
			Due:           o.Due.Format("2006-01-02"),
			FabricOrdered: o.FabricOrdered,
		})
	}

	stats.Fabrics = fabric.Shortages(orders, deliveries)
	return stats
}
