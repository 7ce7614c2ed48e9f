package models

import "time"

// FabricDelivery: depoya giren kumaş fişi. Yalnızca eklenir ve tek tek
// silinebilir; sipariş satırına değil sipariş grubuna (OrderNo) bağlıdır.
// İhtiyaçla eşleştirme (cins, renk) anahtarıyla yapılır, foreign key yok.
type FabricDelivery struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderNo        string    `gorm:"size:50;index" json:"order_no"`
	FabricKind     string    `gorm:"size:100" json:"fabric_kind"`
	Color          string    `gorm:"size:50" json:"color"`
	Unit           string    `gorm:"size:20" json:"unit"`
	AmountReceived float64   `json:"amount_received"`
	RollCount      int       `json:"roll_count"`
	ReceiverName   string    `gorm:"size:100" json:"receiver_name"`
	SupplierNote   string    `gorm:"size:255" json:"supplier_note"`
	CreatedAt      time.Time `json:"created_at"`
}
