package orders

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportOrders(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New()
	app.Get("/api/orders/export.xlsx", ExportOrdersHandler(db))

	require.NoError(t, db.Create(&models.Order{
		OrderNo:      "MEH-2026-001",
		Customer:     "Mehmet Tekstil",
		QtyBySize:    models.QuantityMap{"S": 100},
		ExtraPercent: 5,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderNo:  "ARS-2026-001",
		Customer: "Arşivli",
		Archived: true, // arşivli sipariş dosyaya girmez
	}).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/orders/export.xlsx", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Siparisler_")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Siparişler")
	require.NoError(t, err)
	require.Len(t, rows, 2) // başlık + 1 aktif sipariş

	assert.Equal(t, "Sipariş No", rows[0][0])
	assert.Equal(t, "MEH-2026-001", rows[1][0])
	assert.Equal(t, "105", rows[1][7]) // planlanan = ceil(100 × 1.05)
}
