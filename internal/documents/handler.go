package documents

import (
	"fmt"

	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/orders/:id/cutting-order.pdf
func CuttingOrderPDFHandler(db *gorm.DB, companyName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sipariş ID")
		}

		var order models.Order
		if err := db.First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		pdfBytes, err := CuttingOrder(order, companyName)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`inline; filename="KesimEmri_%s.pdf"`, order.OrderNo))
		return c.Send(pdfBytes)
	}
}

// GET /api/orders/groups/:orderNo/fabric-order.pdf
func FabricOrderPDFHandler(db *gorm.DB, companyName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderNo := c.Params("orderNo")

		var group []models.Order
		if err := db.Where("order_no = ?", orderNo).Order("id asc").Find(&group).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler yüklenemedi")
		}
		if len(group) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş grubu bulunamadı")
		}

		pdfBytes, err := FabricOrder(group, companyName)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`inline; filename="KumasSiparis_%s.pdf"`, orderNo))
		return c.Send(pdfBytes)
	}
}
