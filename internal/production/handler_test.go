package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:production_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newProductionApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Get("/api/production/board", BoardHandler(db))
	app.Post("/api/production/:id/advance", AdvanceStageHandler(db))
	app.Post("/api/production/:id/retreat", RetreatStageHandler(db))
	app.Get("/api/production/report", ReportHandler(db))
	return app
}

func stageReq(t *testing.T, app *fiber.App, id uint, action string, stage models.Stage) *http.Response {
	t.Helper()
	body, err := json.Marshal(StageRequest{Stage: stage})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost,
		fmt.Sprintf("/api/production/%d/%s", id, action), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func cutOrder(t *testing.T, db *gorm.DB, stage models.Stage) models.Order {
	t.Helper()
	o := models.Order{
		OrderNo:      "MEH-2026-001",
		Customer:     "Mehmet",
		QtyBySize:    models.QuantityMap{"S": 50},
		CuttingQty:   models.QuantityMap{"S": 52},
		CurrentStage: stage,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func TestBuildBoard(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CuttingQty: models.QuantityMap{"S": 10}}, // aşaması boş -> kesimhanede
		{ID: 2, CuttingQty: models.QuantityMap{"S": 10}, CurrentStage: models.StageDikim},
		{ID: 3, QtyBySize: models.QuantityMap{"S": 10}}, // kesimi yok -> panoda görünmez
	}

	board := BuildBoard(orders)
	require.Len(t, board, 8)

	assert.Equal(t, models.StageKesimhanede, board[0].Stage)
	require.Len(t, board[0].Orders, 1)
	assert.Equal(t, uint(1), board[0].Orders[0].ID)

	dikim := board[models.StageDikim.Index()]
	require.Len(t, dikim.Orders, 1)
	assert.Equal(t, uint(2), dikim.Orders[0].ID)

	var total int
	for _, col := range board {
		total += len(col.Orders)
	}
	assert.Equal(t, 2, total)
}

func TestAdvanceStage(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)
	order := cutOrder(t, db, "")

	resp := stageReq(t, app, order.ID, "advance", models.StageBaski)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fromDB models.Order
	require.NoError(t, db.First(&fromDB, order.ID).Error)
	assert.Equal(t, models.StageBaski, fromDB.CurrentStage)
	assert.Contains(t, fromDB.Tracking, models.StageBaski, "hedef aşamaya giriş zamanı yazılmalı")
}

func TestAdvanceStageRejectsSkip(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)
	order := cutOrder(t, db, "")

	resp := stageReq(t, app, order.ID, "advance", models.StageDikim)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var fromDB models.Order
	require.NoError(t, db.First(&fromDB, order.ID).Error)
	assert.Equal(t, models.StageKesimhanede, fromDB.Stage())
}

func TestAdvanceStageAtTerminal(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)
	order := cutOrder(t, db, models.StageYuklendi)

	resp := stageReq(t, app, order.ID, "advance", models.StageYuklendi)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdvanceStageWithoutCutting(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)

	order := models.Order{OrderNo: "X", Customer: "Mehmet", QtyBySize: models.QuantityMap{"S": 50}}
	require.NoError(t, db.Create(&order).Error)

	resp := stageReq(t, app, order.ID, "advance", models.StageBaski)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRetreatKeepsTracking(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)
	order := cutOrder(t, db, "")

	// kesimhanede -> baski -> dikim değil; adım adım iki ileri bir geri
	resp := stageReq(t, app, order.ID, "advance", models.StageBaski)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = stageReq(t, app, order.ID, "advance", models.StageNakis)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = stageReq(t, app, order.ID, "retreat", models.StageBaski)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fromDB models.Order
	require.NoError(t, db.First(&fromDB, order.ID).Error)
	assert.Equal(t, models.StageBaski, fromDB.CurrentStage)

	// Geri alma zaman damgalarını silmez
	assert.Contains(t, fromDB.Tracking, models.StageBaski)
	assert.Contains(t, fromDB.Tracking, models.StageNakis)
}

func TestRetreatAtFirstStage(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)
	order := cutOrder(t, db, "")

	resp := stageReq(t, app, order.ID, "retreat", models.StageKesimhanede)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdvanceStageAuditSnapshots(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Yönetici", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, user.ID)
		return c.Next()
	})
	app.Post("/api/production/:id/advance", AdvanceStageHandler(db))
	app.Post("/api/production/:id/retreat", RetreatStageHandler(db))

	order := cutOrder(t, db, "")

	resp := stageReq(t, app, order.ID, "advance", models.StageBaski)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entry models.AuditLog
	require.NoError(t, db.Where("entity_type = ?", "order").Order("id DESC").First(&entry).Error)
	assert.Equal(t, "Yönetici", entry.UserName)
	assert.Contains(t, entry.BeforeData, `"current_stage":""`)
	assert.Contains(t, entry.AfterData, `"current_stage":"baski"`)
	assert.NotContains(t, entry.BeforeData, `"baski":`, "önceki halin takip haritası boş kalmalı")

	resp = stageReq(t, app, order.ID, "retreat", models.StageKesimhanede)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	entry = models.AuditLog{}
	require.NoError(t, db.Where("entity_type = ?", "order").Order("id DESC").First(&entry).Error)
	assert.Contains(t, entry.BeforeData, `"current_stage":"baski"`)
	assert.Contains(t, entry.AfterData, `"current_stage":"kesimhanede"`)
}

func TestReportFilters(t *testing.T) {
	db := newTestDB(t)
	app := newProductionApp(db)

	done := models.Order{OrderNo: "A", QtyBySize: models.QuantityMap{"S": 50},
		CuttingQty: models.QuantityMap{"S": 52}, Status: models.OrderStatusCutCompleted}
	pending := models.Order{OrderNo: "B", QtyBySize: models.QuantityMap{"S": 30}}
	require.NoError(t, db.Create(&done).Error)
	require.NoError(t, db.Create(&pending).Error)

	fetch := func(filter string) Report {
		req := httptest.NewRequest(fiber.MethodGet, "/api/production/report?filter="+filter, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var report Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		return report
	}

	all := fetch("all")
	assert.Len(t, all.Rows, 2)
	assert.Equal(t, 80.0, all.TotalPlanned)
	assert.Equal(t, 52.0, all.TotalCut)

	completed := fetch("completed")
	require.Len(t, completed.Rows, 1)
	assert.Equal(t, "A", completed.Rows[0].OrderNo)

	pendingRows := fetch("pending")
	require.Len(t, pendingRows.Rows, 1)
	assert.Equal(t, "B", pendingRows.Rows[0].OrderNo)

	req := httptest.NewRequest(fiber.MethodGet, "/api/production/report?filter=bozuk", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
