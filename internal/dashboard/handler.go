package dashboard

import (
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/dashboard/stats
// Her çağrıda aktif siparişler ve tüm kumaş girişleri yeniden okunur;
// cache yok, bayatlık kullanıcının sayfayı yenilemesiyle sınırlı.
func StatsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := db.Where("archived = ?", false).Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler okunamadı")
		}

		var deliveries []models.FabricDelivery
		if err := db.Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş girişleri okunamadı")
		}

		return c.JSON(Compute(orders, deliveries))
	}
}
