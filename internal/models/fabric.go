package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Kumaş tipi: örme veya dokuma
const (
	FabricTypeOrme   = "Örme"
	FabricTypeDokuma = "Dokuma"
)

// Fabric: bir siparişin tek kumaş kalemi
type Fabric struct {
	Kind     string  `json:"kind"`      // cinsi (örn: Süprem)
	Color    string  `json:"color"`     // renk
	Content  string  `json:"content"`   // içerik (örn: %100 Pamuk)
	Unit     string  `json:"unit"`      // kg / metre
	Type     string  `json:"type"`      // Örme / Dokuma
	PerPiece float64 `json:"per_piece"` // parça başı tüketim
}

func (f *Fabric) UnmarshalJSON(b []byte) error {
	var raw struct {
		Kind     string `json:"kind"`
		Color    string `json:"color"`
		Content  string `json:"content"`
		Unit     string `json:"unit"`
		Type     string `json:"type"`
		PerPiece any    `json:"per_piece"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Kind = raw.Kind
	f.Color = raw.Color
	f.Content = raw.Content
	f.Unit = raw.Unit
	f.Type = raw.Type
	f.PerPiece = coerceFloat(raw.PerPiece)
	return nil
}

// Empty: kumaş cinsi girilmemişse kalem boş sayılır
func (f Fabric) Empty() bool {
	return strings.TrimSpace(f.Kind) == ""
}

// UnitOrDefault: birim girilmemişse kg varsayılır
func (f Fabric) UnitOrDefault() string {
	if strings.TrimSpace(f.Unit) == "" {
		return "kg"
	}
	return f.Unit
}

// FabricSet: siparişin sabit kumaş slotları. Bir ana kumaş ve en fazla
// dört garni; "ana kumaş hangisi" sorusu string anahtar değil alan olarak
// garanti edilir.
type FabricSet struct {
	Main Fabric `json:"main"`
	G1   Fabric `json:"g1"`
	G2   Fabric `json:"g2"`
	G3   Fabric `json:"g3"`
	G4   Fabric `json:"g4"`
}

// FabricSlot: slot anahtarıyla birlikte kumaş kalemi
type FabricSlot struct {
	Key    string
	IsMain bool
	Fabric Fabric
}

// Slots: dolu/boş ayrımı yapmadan sabit sırayla tüm slotlar (ana önce)
func (s FabricSet) Slots() []FabricSlot {
	return []FabricSlot{
		{Key: "main", IsMain: true, Fabric: s.Main},
		{Key: "g1", Fabric: s.G1},
		{Key: "g2", Fabric: s.G2},
		{Key: "g3", Fabric: s.G3},
		{Key: "g4", Fabric: s.G4},
	}
}

// ActiveSlots: kumaş hesaplarına giren slotlar (cinsi dolu, tüketimi pozitif)
func (s FabricSet) ActiveSlots() []FabricSlot {
	var out []FabricSlot
	for _, slot := range s.Slots() {
		if slot.Fabric.Empty() || slot.Fabric.PerPiece <= 0 {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func (s FabricSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *FabricSet) Scan(src any) error {
	*s = FabricSet{}
	return scanJSON(src, s)
}
