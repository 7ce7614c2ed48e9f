package fabric

import (
	"math"
	"sort"
	"strings"

	"konfeksiyon-backend/internal/models"
)

// shortageEpsilon: bu eşiğin altındaki net eksikler küsurat sayılır ve
// dashboard listesine girmez.
const shortageEpsilon = 0.05

// MatchKey: kumaş girişlerini ihtiyaç kalemleriyle eşleştiren anahtar.
// Cins ve renk ayrı ayrı kırpılıp küçük harfe çevrilir; "Pamuklu " ile
// "pamuklu" aynı kovada toplanır.
func MatchKey(kind, color string) string {
	return strings.ToLower(strings.TrimSpace(kind)) + "-" + strings.ToLower(strings.TrimSpace(color))
}

func groupKey(kind, color, unit string) string {
	return MatchKey(kind, color) + "-" + strings.ToLower(strings.TrimSpace(unit))
}

// Shortage: dashboard görünümü — (cins, renk) bazında toplam ihtiyaç,
// girilen miktar ve net eksik.
type Shortage struct {
	Kind        string  `json:"kind"`
	Color       string  `json:"color"`
	Unit        string  `json:"unit"`
	Needed      float64 `json:"needed"`
	Received    float64 `json:"received"`
	NetShortage float64 `json:"net_shortage"`
	IsOrdered   bool    `json:"is_ordered"`
}

// Shortages: tüm aktif siparişler üzerinden kumaş eksik listesi.
// İhtiyaç = grup üyesi başına planlanan adet × parça başı tüketim;
// girişler (cins, renk) anahtarıyla düşülür. Eşleşmeyen girişler eksik
// hesabına katılmaz ama defterde durur. Net eksik asla negatif olmaz.
func Shortages(orders []models.Order, deliveries []models.FabricDelivery) []Shortage {
	buckets := map[string]*Shortage{}
	var keys []string

	for _, o := range orders {
		planned := float64(o.PlannedQuantity())
		for _, slot := range o.Fabrics.ActiveSlots() {
			f := slot.Fabric
			key := MatchKey(f.Kind, f.Color)
			b, ok := buckets[key]
			if !ok {
				b = &Shortage{
					Kind:      f.Kind,
					Color:     f.Color,
					Unit:      f.UnitOrDefault(),
					IsOrdered: o.FabricOrdered,
				}
				buckets[key] = b
				keys = append(keys, key)
			}
			b.Needed += planned * f.PerPiece
			if !o.FabricOrdered {
				b.IsOrdered = false
			}
		}
	}

	for _, d := range deliveries {
		if b, ok := buckets[MatchKey(d.FabricKind, d.Color)]; ok {
			b.Received += d.AmountReceived
		}
	}

	sort.Strings(keys)

	var out []Shortage
	for _, key := range keys {
		b := buckets[key]
		net := b.Needed - b.Received
		if net < 0 {
			net = 0
		}
		if net <= shortageEpsilon {
			continue
		}
		b.NetShortage = net
		out = append(out, *b)
	}
	return out
}

// GroupRequirement: grup görünümü — bir sipariş grubunun (cins, renk,
// birim) bazında ham kumaş ihtiyacı, giriş düşülmeden.
type GroupRequirement struct {
	Kind        string  `json:"kind"`
	Color       string  `json:"color"`
	Content     string  `json:"content"`
	Unit        string  `json:"unit"`
	Type        string  `json:"type"`
	IsMain      bool    `json:"is_main"`
	TotalAmount float64 `json:"total_amount"`
}

// GroupRequirements: aynı sipariş numarasını paylaşan kayıtların toplam
// kumaş ihtiyacı. Ana kumaş listede öne alınır.
func GroupRequirements(group []models.Order) []GroupRequirement {
	buckets := map[string]*GroupRequirement{}
	var keys []string

	for _, o := range group {
		planned := float64(o.PlannedQuantity())
		for _, slot := range o.Fabrics.ActiveSlots() {
			f := slot.Fabric
			key := groupKey(f.Kind, f.Color, f.UnitOrDefault())
			b, ok := buckets[key]
			if !ok {
				b = &GroupRequirement{
					Kind:    f.Kind,
					Color:   f.Color,
					Content: f.Content,
					Unit:    f.UnitOrDefault(),
					Type:    f.Type,
				}
				buckets[key] = b
				keys = append(keys, key)
			}
			b.TotalAmount += planned * f.PerPiece
			if slot.IsMain {
				b.IsMain = true
			}
		}
	}

	sort.Strings(keys)

	out := make([]GroupRequirement, 0, len(keys))
	for _, key := range keys {
		out = append(out, *buckets[key])
	}
	// Ana kumaş önce
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsMain && !out[j].IsMain
	})
	return out
}

// ProgressPercent: sipariş kartındaki kumaş ilerleme çubuğu — gruba
// girilen toplam miktarın bu siparişin toplam ihtiyacına oranı (0-100).
func ProgressPercent(o models.Order, deliveries []models.FabricDelivery) int {
	planned := float64(o.PlannedQuantity())

	var needed float64
	for _, slot := range o.Fabrics.ActiveSlots() {
		needed += planned * slot.Fabric.PerPiece
	}
	if needed == 0 {
		return 0
	}

	var received float64
	for _, d := range deliveries {
		if d.OrderNo == o.OrderNo {
			received += d.AmountReceived
		}
	}

	percent := int(math.Round(received / needed * 100))
	if percent > 100 {
		percent = 100
	}
	return percent
}
