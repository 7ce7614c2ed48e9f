package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"konfeksiyon-backend/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var turkishUpper = cases.Upper(language.Turkish)

// orderPrefix: müşteri adının ilk 3 harfinden sipariş no öneki üretir.
// Türkçe büyük harfe çevrilir (i -> İ), boşluklar 'X' olur, 3 karakterden
// kısaysa '0' ile tamamlanır.
func orderPrefix(customer string) string {
	base := strings.TrimSpace(customer)
	if base == "" {
		base = "SIP"
	}

	r := []rune(base)
	if len(r) > 3 {
		r = r[:3]
	}

	up := []rune(turkishUpper.String(string(r)))
	for i, ch := range up {
		if unicode.IsSpace(ch) {
			up[i] = 'X'
		}
	}
	for len(up) < 3 {
		up = append(up, '0')
	}
	return string(up)
}

// AllocateOrderNo: {ÖNEK}-{YIL}-{SIRA} formatında yeni sipariş numarası.
// Aynı önek/yıl için kayıtlı en büyük numaranın sırası 1 artırılır; hiç
// kayıt yoksa veya son segment sayı değilse 001'den başlanır. Sorgu
// hatasında zaman damgalı benzersiz numaraya düşülür.
//
// Kilitleme yok: aynı önek/yıl için eş zamanlı iki tahsis çakışabilir.
// Elle ve seyrek veri girişinde kabul edilebilir.
func AllocateOrderNo(db *gorm.DB, customer string, year int) string {
	prefix := orderPrefix(customer)

	var last []string
	err := db.Model(&models.Order{}).
		Where("order_no LIKE ?", fmt.Sprintf("%s-%d-%%", prefix, year)).
		Order("order_no DESC").
		Limit(1).
		Pluck("order_no", &last).Error
	if err != nil {
		log.Error().Err(err).Msg("Sipariş no üretim hatası")
		return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
	}

	sequence := 1
	if len(last) > 0 {
		parts := strings.Split(last[0], "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			sequence = n + 1
		}
	}

	return fmt.Sprintf("%s-%d-%03d", prefix, year, sequence)
}
