package fabric

import (
	"fmt"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type CreateDeliveryRequest struct {
	OrderNo        string  `json:"order_no" validate:"required"`
	FabricKind     string  `json:"fabric_kind" validate:"required"`
	Color          string  `json:"color"`
	Unit           string  `json:"unit"`
	AmountReceived float64 `json:"amount_received" validate:"required,gt=0"`
	RollCount      int     `json:"roll_count" validate:"gte=0"`
	ReceiverName   string  `json:"receiver_name"`
	SupplierNote   string  `json:"supplier_note"`
}

// POST /api/fabric-deliveries
func CreateDeliveryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "order_no, fabric_kind ve pozitif amount_received zorunludur")
		}

		if body.Unit == "" {
			body.Unit = "kg"
		}

		delivery := models.FabricDelivery{
			OrderNo:        body.OrderNo,
			FabricKind:     body.FabricKind,
			Color:          body.Color,
			Unit:           body.Unit,
			AmountReceived: body.AmountReceived,
			RollCount:      body.RollCount,
			ReceiverName:   body.ReceiverName,
			SupplierNote:   body.SupplierNote,
		}

		if err := db.Create(&delivery).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş girişi kaydedilemedi")
		}

		if user, err := auth.CurrentUser(c, db); err == nil {
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "fabric_delivery",
				EntityID:    delivery.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Kumaş girişi: %s %s - %.2f %s (%s)", delivery.FabricKind, delivery.Color, delivery.AmountReceived, delivery.Unit, delivery.OrderNo),
				After:       delivery,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(delivery)
	}
}

// GET /api/fabric-deliveries?order_no=
func ListDeliveriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Model(&models.FabricDelivery{})
		if no := c.Query("order_no"); no != "" {
			query = query.Where("order_no = ?", no)
		}

		var deliveries []models.FabricDelivery
		if err := query.Order("created_at DESC").Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş girişleri listelenemedi")
		}

		return c.JSON(deliveries)
	}
}

// DELETE /api/fabric-deliveries/:id
func DeleteDeliveryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var delivery models.FabricDelivery
		if err := db.First(&delivery, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kumaş girişi bulunamadı")
		}

		if err := db.Delete(&delivery).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş girişi silinemedi")
		}

		if user, err := auth.CurrentUser(c, db); err == nil {
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "fabric_delivery",
				EntityID:    delivery.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Kumaş girişi silindi: %s - %.2f %s", delivery.FabricKind, delivery.AmountReceived, delivery.Unit),
				Before:      delivery,
			})
		}

		return c.JSON(fiber.Map{
			"message": "Kumaş girişi başarıyla silindi",
		})
	}
}

// GET /api/orders/groups/:orderNo/fabrics
// Grubun toplam kumaş ihtiyacı; satın alma ekranı ve sipariş formu kullanır.
func GroupFabricsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderNo := c.Params("orderNo")

		var group []models.Order
		if err := db.Where("order_no = ?", orderNo).Find(&group).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş grubu okunamadı")
		}
		if len(group) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş grubu bulunamadı")
		}

		return c.JSON(GroupRequirements(group))
	}
}
