package orders

import (
	"fmt"
	"strings"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/fabric"
	"konfeksiyon-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type OrderRequest struct {
	OrderNo       string             `json:"order_no"` // doluysa mevcut gruba eklenir, numara üretilmez
	Customer      string             `json:"customer" validate:"required"`
	Article       string             `json:"article"`
	Model         string             `json:"model"`
	Color         string             `json:"color"`
	Due           string             `json:"due"` // "2006-01-02"
	ExtraPercent  *float64           `json:"extra_percent"`
	QtyBySize     models.QuantityMap `json:"qty_by_size"`
	Fabrics       models.FabricSet   `json:"fabrics"`
	PostProcesses string             `json:"post_processes"`
	ModelImage    string             `json:"model_image"`
}

type OrderListItem struct {
	models.Order
	FabricProgress int `json:"fabric_progress"` // gruba girilen kumaşın ihtiyaca oranı (%)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func applyRequest(o *models.Order, body OrderRequest) error {
	due, err := parseDate(body.Due)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Termin tarihi formatı 'YYYY-MM-DD' olmalı")
	}

	o.Customer = strings.TrimSpace(body.Customer)
	o.Article = strings.TrimSpace(body.Article)
	o.Model = body.Model
	o.Color = body.Color
	o.Due = due
	o.PostProcesses = body.PostProcesses
	o.ModelImage = body.ModelImage

	if body.ExtraPercent != nil {
		o.ExtraPercent = *body.ExtraPercent
	} else if o.ID == 0 {
		o.ExtraPercent = 5
	}

	if body.QtyBySize == nil {
		body.QtyBySize = models.QuantityMap{}
	}
	o.QtyBySize = body.QtyBySize
	o.Fabrics = body.Fabrics

	return nil
}

func writeOrderAudit(c *fiber.Ctx, db *gorm.DB, action models.AuditAction, desc string, before, after any, entityID uint) {
	if user, err := auth.CurrentUser(c, db); err == nil {
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      user.ID,
			UserName:    user.Name,
			EntityType:  "order",
			EntityID:    entityID,
			Action:      action,
			Description: desc,
			Before:      before,
			After:       after,
		})
	}
}

// POST /api/orders
// order_no gönderilmemişse numara burada üretilir (grup hedefi yoksa).
func CreateOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "customer zorunludur")
		}

		var order models.Order
		if err := applyRequest(&order, body); err != nil {
			return err
		}

		orderNo := strings.TrimSpace(body.OrderNo)
		if orderNo == "" {
			orderNo = AllocateOrderNo(db, order.Customer, time.Now().Year())
		}
		order.OrderNo = orderNo

		if err := db.Create(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş kaydedilemedi")
		}

		writeOrderAudit(c, db, models.AuditActionCreate,
			fmt.Sprintf("Sipariş oluşturuldu: %s - %s", order.OrderNo, order.Customer), nil, order, order.ID)

		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// GET /api/orders?q=
// Her çağrıda tam liste yeniden okunur; kumaş ilerleme yüzdesi girişlerle
// birlikte hesaplanıp kartlara eklenir.
func ListOrdersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Model(&models.Order{})
		if q := c.Query("q"); q != "" {
			like := "%" + q + "%"
			query = query.Where("order_no ILIKE ? OR customer ILIKE ? OR article ILIKE ?", like, like, like)
		}

		var orders []models.Order
		if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		var deliveries []models.FabricDelivery
		if err := db.Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kumaş girişleri okunamadı")
		}

		resp := make([]OrderListItem, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, OrderListItem{
				Order:          o,
				FabricProgress: fabric.ProgressPercent(o, deliveries),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/orders/recent-groups
// Son 40 kayıt, sipariş numarasına göre tekilleştirilmiş; "mevcut gruba
// ekle" seçim listesi için.
func RecentGroupsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := db.Select("order_no", "customer", "created_at").
			Order("created_at DESC").
			Limit(40).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		seen := map[string]bool{}
		type recentGroup struct {
			OrderNo  string `json:"order_no"`
			Customer string `json:"customer"`
		}
		resp := make([]recentGroup, 0, len(orders))
		for _, o := range orders {
			if o.OrderNo == "" || seen[o.OrderNo] {
				continue
			}
			seen[o.OrderNo] = true
			resp = append(resp, recentGroup{OrderNo: o.OrderNo, Customer: o.Customer})
		}

		return c.JSON(resp)
	}
}

// GET /api/orders/:id
func GetOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}
		return c.JSON(order)
	}
}

// PUT /api/orders/:id
func UpdateOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "customer zorunludur")
		}

		before := order
		if err := applyRequest(&order, body); err != nil {
			return err
		}
		// Güncellemede grup numarası ancak açıkça gönderilirse değişir
		if no := strings.TrimSpace(body.OrderNo); no != "" {
			order.OrderNo = no
		}

		if err := db.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş güncellenemedi")
		}

		writeOrderAudit(c, db, models.AuditActionUpdate,
			fmt.Sprintf("Sipariş güncellendi: %s", order.OrderNo), before, order, order.ID)

		return c.JSON(order)
	}
}

// DELETE /api/orders/:id
func DeleteOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := db.Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş silinemedi")
		}

		writeOrderAudit(c, db, models.AuditActionDelete,
			fmt.Sprintf("Sipariş silindi: %s - %s", order.OrderNo, order.Customer), order, nil, order.ID)

		return c.JSON(fiber.Map{
			"message": "Sipariş başarıyla silindi",
		})
	}
}

type CuttingDetailsRequest struct {
	CuttingDate string `json:"cutting_date" validate:"required"`
	MarkerWidth string `json:"marker_width" validate:"required"`
}

// PUT /api/orders/:id/cutting-details
// Kesim emri yazdırılmadan önce pastal eni ve kesim tarihi kaydedilir.
func UpdateCuttingDetailsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		var body CuttingDetailsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cutting_date ve marker_width zorunludur")
		}

		d, err := parseDate(body.CuttingDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kesim tarihi formatı 'YYYY-MM-DD' olmalı")
		}

		order.CuttingDate = d
		order.MarkerWidth = body.MarkerWidth

		if err := db.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kesim bilgileri kaydedilemedi")
		}

		return c.JSON(order)
	}
}

type CuttingResultsRequest struct {
	CuttingQty  models.QuantityMap `json:"cutting_qty" validate:"required"`
	CuttingDate string             `json:"cutting_date"`
	MarkerWidth string             `json:"marker_width"`
}

// PUT /api/orders/:id/cutting-results
// Gerçek kesim adetleri girilir ve sipariş "kesildi" durumuna geçer.
func UpdateCuttingResultsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		var body CuttingResultsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cutting_qty zorunludur")
		}

		d, err := parseDate(body.CuttingDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kesim tarihi formatı 'YYYY-MM-DD' olmalı")
		}

		before := order
		order.CuttingQty = body.CuttingQty
		if d != nil {
			order.CuttingDate = d
		}
		if body.MarkerWidth != "" {
			order.MarkerWidth = body.MarkerWidth
		}
		order.Status = models.OrderStatusCutCompleted

		if err := db.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kesim sonuçları kaydedilemedi")
		}

		writeOrderAudit(c, db, models.AuditActionUpdate,
			fmt.Sprintf("Kesim sonucu girildi: %s - %.0f adet", order.OrderNo, order.CutQuantity()), before, order, order.ID)

		return c.JSON(order)
	}
}

// PATCH /api/orders/:id/fabric-ordered
// Kumaş siparişi verildi işaretini tersine çevirir; iki kez çağrılınca
// başlangıç değerine döner.
func ToggleFabricOrderedHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := db.Model(&order).Update("fabric_ordered", !order.FabricOrdered).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş durumu güncellenemedi")
		}

		writeOrderAudit(c, db, models.AuditActionUpdate,
			fmt.Sprintf("Kumaş sipariş durumu değişti: %s -> %t", order.OrderNo, order.FabricOrdered), nil, order, order.ID)

		return c.JSON(order)
	}
}

// POST /api/orders/:id/archive
// Yüklenen sipariş panodan kaldırılır; kayıt silinmez.
func ArchiveOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if !order.Stage().Terminal() {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece yüklenmiş siparişler arşivlenebilir")
		}

		if err := db.Model(&order).Update("archived", true).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş arşivlenemedi")
		}

		order.Archived = true
		return c.JSON(order)
	}
}

// POST /api/orders/:id/unarchive
func UnarchiveOrderHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		if err := db.Model(&order).Update("archived", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş arşivden çıkarılamadı")
		}

		order.Archived = false
		return c.JSON(order)
	}
}
