package documents

import (
	"sort"
	"strings"

	"konfeksiyon-backend/internal/models"
)

// sizeOrder: bedenlerin baskıdaki dizilişi; listede olmayan etiketler sona atılır
var sizeOrder = []string{"3XS", "2XS", "XXS", "XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL", "I", "II", "STD"}

func sizeRank(s string) int {
	up := strings.ToUpper(s)
	for i, v := range sizeOrder {
		if v == up {
			return i
		}
	}
	return len(sizeOrder) + 1
}

// sortedSizes: adet girilmiş bedenler, standart beden sırasıyla
func sortedSizes(qty models.QuantityMap) []string {
	var sizes []string
	for s, v := range qty {
		if v > 0 {
			sizes = append(sizes, s)
		}
	}
	sort.SliceStable(sizes, func(i, j int) bool {
		ri, rj := sizeRank(sizes[i]), sizeRank(sizes[j])
		if ri != rj {
			return ri < rj
		}
		return sizes[i] < sizes[j]
	})
	return sizes
}
