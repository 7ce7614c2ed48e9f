package models

import (
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusOpen         OrderStatus = ""
	OrderStatusCutCompleted OrderStatus = "cut_completed"
)

// Order: bir sipariş kalemi. Aynı OrderNo'yu paylaşan kayıtlar bir "grup"
// oluşturur; kumaş ihtiyacı grup üzerinden toplanır.
type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderNo  string `gorm:"size:50;index" json:"order_no"`
	Customer string `gorm:"size:100" json:"customer"`
	Article  string `gorm:"size:100" json:"article"`
	Model    string `gorm:"size:100" json:"model"`
	Color    string `gorm:"size:50" json:"color"`

	Due          *time.Time  `gorm:"type:date" json:"due"`
	ExtraPercent float64     `gorm:"default:5" json:"extra_percent"` // kesim fazlası yüzdesi
	QtyBySize    QuantityMap `gorm:"type:jsonb" json:"qty_by_size"`
	Fabrics      FabricSet   `gorm:"type:jsonb" json:"fabrics"`

	PostProcesses string `gorm:"type:text" json:"post_processes"`
	ModelImage    string `gorm:"size:500" json:"model_image"` // yüklenen model görselinin public URL'i

	FabricOrdered bool `gorm:"default:false" json:"fabric_ordered"`

	// Kesim sonucu ve metadata'sı
	CuttingQty  QuantityMap `gorm:"type:jsonb" json:"cutting_qty"`
	CuttingDate *time.Time  `gorm:"type:date" json:"cutting_date"`
	MarkerWidth string      `gorm:"size:20" json:"marker_width"` // pastal eni (cm)
	Status      OrderStatus `gorm:"size:30" json:"status"`

	// Üretim takibi
	CurrentStage Stage       `gorm:"size:30" json:"current_stage"` // boşsa kesimhanede
	Tracking     TrackingMap `gorm:"type:jsonb" json:"tracking"`

	// Yüklenen sipariş panodan arşive kaldırılır, silinmez
	Archived bool `gorm:"default:false;index" json:"archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stage: mevcut aşama; hiç aşama kaydedilmemiş sipariş kesimhanede sayılır
func (o *Order) Stage() Stage {
	if o.CurrentStage == "" {
		return StageKesimhanede
	}
	return o.CurrentStage
}

// BaseQuantity: bedenlere girilen adetlerin toplamı (kesim fazlası hariç)
func (o *Order) BaseQuantity() float64 {
	return o.QtyBySize.Total()
}

// PlannedQuantity: kesim fazlası dahil planlanan adet,
// ceil(toplam × (1 + fazla%/100))
func (o *Order) PlannedQuantity() int {
	return int(math.Ceil(o.BaseQuantity() * (1 + o.ExtraPercent/100)))
}

// CutQuantity: gerçekte kesilen toplam adet
func (o *Order) CutQuantity() float64 {
	return o.CuttingQty.Total()
}

// HasCutting: üretim panosuna çıkma şartı — en az bir bedende pozitif
// kesim sonucu. Kesimi girilmemiş sipariş, aşama işaretçisi ne olursa
// olsun panoda görünmez.
func (o *Order) HasCutting() bool {
	return o.CuttingQty.HasPositive()
}
