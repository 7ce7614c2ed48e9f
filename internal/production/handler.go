package production

import (
	"fmt"
	"time"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BoardColumn struct {
	Stage  models.Stage   `json:"stage"`
	Label  string         `json:"label"`
	Orders []models.Order `json:"orders"`
}

// BuildBoard: siparişleri 8 sütunlu panoya dağıtır. Kesim sonucu
// girilmemiş sipariş hiçbir sütunda görünmez; aşaması boş olanlar
// kesimhanede sayılır.
func BuildBoard(orders []models.Order) []BoardColumn {
	columns := make([]BoardColumn, 0, len(models.StageOrder))
	for _, stage := range models.StageOrder {
		col := BoardColumn{Stage: stage, Label: stage.Label(), Orders: []models.Order{}}
		for _, o := range orders {
			if !o.HasCutting() {
				continue
			}
			if o.Stage() == stage {
				col.Orders = append(col.Orders, o)
			}
		}
		columns = append(columns, col)
	}
	return columns
}

// GET /api/production/board
func BoardHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := db.Where("archived = ?", false).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		return c.JSON(BuildBoard(orders))
	}
}

type StageRequest struct {
	Stage models.Stage `json:"stage"`
}

func loadBoardOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
	}
	if !order.HasCutting() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kesim sonucu girilmemiş sipariş panoda taşınamaz")
	}
	return &order, nil
}

// POST /api/production/:id/advance
// Sadece sıradaki aşamaya geçilir; hedef aşamaya giriş zamanı takip
// haritasına yazılır.
func AdvanceStageHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadBoardOrder(db, c.Params("id"))
		if err != nil {
			return err
		}

		var body StageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		current := order.Stage()
		next, ok := current.Next()
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş zaten son aşamada")
		}
		if body.Stage != next {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Aşama atlanamaz: %s aşamasından sadece %s aşamasına geçilebilir", current, next))
		}

		before := *order
		// Takip haritası kopyalanır; önceki hal audit kaydında bozulmadan kalır
		tracking := make(models.TrackingMap, len(order.Tracking)+1)
		for stage, at := range order.Tracking {
			tracking[stage] = at
		}
		tracking[next] = time.Now()
		order.Tracking = tracking
		order.CurrentStage = next

		if err := db.Model(order).
			Select("current_stage", "tracking").
			Updates(order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aşama güncellenemedi")
		}

		if user, uerr := auth.CurrentUser(c, db); uerr == nil {
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Üretim ilerledi: %s -> %s (%s)", current, next, order.OrderNo),
				Before:      before,
				After:       order,
			})
		}

		return c.JSON(order)
	}
}

// POST /api/production/:id/retreat
// Bir önceki aşamaya döner. Terk edilen aşamanın zaman damgası silinmez;
// takip haritası giriş geçmişi olarak büyümeye devam eder.
func RetreatStageHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := loadBoardOrder(db, c.Params("id"))
		if err != nil {
			return err
		}

		var body StageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		current := order.Stage()
		prev, ok := current.Prev()
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Sipariş zaten ilk aşamada")
		}
		if body.Stage != prev {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Aşama atlanamaz: %s aşamasından sadece %s aşamasına dönülebilir", current, prev))
		}

		before := *order
		order.CurrentStage = prev

		if err := db.Model(order).Update("current_stage", prev).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aşama güncellenemedi")
		}

		if user, uerr := auth.CurrentUser(c, db); uerr == nil {
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Üretim geri alındı: %s -> %s (%s)", current, prev, order.OrderNo),
				Before:      before,
				After:       order,
			})
		}

		return c.JSON(order)
	}
}

type ReportRow struct {
	ID           uint         `json:"id"`
	OrderNo      string       `json:"order_no"`
	Customer     string       `json:"customer"`
	Article      string       `json:"article"`
	Model        string       `json:"model"`
	Due          *string      `json:"due"`
	BaseQuantity float64      `json:"base_quantity"`
	CutQuantity  float64      `json:"cut_quantity"`
	Status       string       `json:"status"`
	Stage        models.Stage `json:"stage"`
	StageLabel   string       `json:"stage_label"`
}

type Report struct {
	Rows         []ReportRow `json:"rows"`
	TotalPlanned float64     `json:"total_planned"`
	TotalCut     float64     `json:"total_cut"`
}

// GET /api/production/report?filter=all|pending|completed
// Kesim durumu raporu; yazdırılabilir liste için.
func ReportHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := c.Query("filter", "all")

		query := db.Model(&models.Order{}).Where("archived = ?", false)
		switch filter {
		case "pending":
			query = query.Where("status <> ?", models.OrderStatusCutCompleted)
		case "completed":
			query = query.Where("status = ?", models.OrderStatusCutCompleted)
		case "all":
		default:
			return fiber.NewError(fiber.StatusBadRequest, "filter değeri all, pending veya completed olmalı")
		}

		var orders []models.Order
		if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		report := Report{Rows: make([]ReportRow, 0, len(orders))}
		for _, o := range orders {
			var due *string
			if o.Due != nil {
				s := o.Due.Format("2006-01-02")
				due = &s
			}
			report.Rows = append(report.Rows, ReportRow{
				ID:           o.ID,
				OrderNo:      o.OrderNo,
				Customer:     o.Customer,
				Article:      o.Article,
				Model:        o.Model,
				Due:          due,
				BaseQuantity: o.BaseQuantity(),
				CutQuantity:  o.CutQuantity(),
				Status:       string(o.Status),
				Stage:        o.Stage(),
				StageLabel:   o.Stage().Label(),
			})
			report.TotalPlanned += o.BaseQuantity()
			report.TotalCut += o.CutQuantity()
		}

		return c.JSON(report)
	}
}
