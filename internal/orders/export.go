package orders

import (
	"fmt"
	"time"

	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GET /api/orders/export.xlsx
// Aktif sipariş listesini XLSX olarak indirir.
func ExportOrdersHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := db.Where("archived = ?", false).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Siparişler"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"Sipariş No", "Müşteri", "Artikel", "Model", "Renk", "Termin",
			"Sipariş Adedi", "Planlanan", "Kesilen", "Aşama", "Kumaş Siparişi",
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, o := range orders {
			due := ""
			if o.Due != nil {
				due = o.Due.Format("2006-01-02")
			}
			fabricOrdered := "Bekliyor"
			if o.FabricOrdered {
				fabricOrdered = "Verildi"
			}

			values := []any{
				o.OrderNo, o.Customer, o.Article, o.Model, o.Color, due,
				o.BaseQuantity(), o.PlannedQuantity(), o.CutQuantity(),
				o.Stage().Label(), fabricOrdered,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		fileName := fmt.Sprintf("Siparisler_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
		return c.Send(buf.Bytes())
	}
}
