package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// coerceFloat: form kaynaklı gevşek JSON değerlerini sayıya çevirir.
// Sayı olmayan her şey (null, boş string, bozuk metin) 0 kabul edilir.
func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func scanJSON(src any, dst any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dst)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("jsonb kolonu okunamadı: beklenmeyen tip %T", src)
	}
}

// QuantityMap: beden etiketi -> adet (jsonb olarak saklanır)
type QuantityMap map[string]float64

func (m *QuantityMap) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(QuantityMap, len(raw))
	for k, v := range raw {
		out[k] = coerceFloat(v)
	}
	*m = out
	return nil
}

// Total: tüm bedenlerin toplam adedi
func (m QuantityMap) Total() float64 {
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum
}

// HasPositive: en az bir bedende pozitif adet var mı
func (m QuantityMap) HasPositive() bool {
	for _, v := range m {
		if v > 0 {
			return true
		}
	}
	return false
}

func (m QuantityMap) Value() (driver.Value, error) {
	if m == nil {
		m = QuantityMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *QuantityMap) Scan(src any) error {
	*m = QuantityMap{}
	return scanJSON(src, m)
}

// TrackingMap: aşama anahtarı -> aşamaya giriş zamanı (jsonb olarak saklanır).
// Geri alma işlemi eski kayıtları SİLMEZ; harita ekleme/üzerine yazma ile büyür.
type TrackingMap map[Stage]time.Time

func (m TrackingMap) Value() (driver.Value, error) {
	if m == nil {
		m = TrackingMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *TrackingMap) Scan(src any) error {
	*m = TrackingMap{}
	return scanJSON(src, m)
}
