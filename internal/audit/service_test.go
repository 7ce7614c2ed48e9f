package audit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

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
	dsn := "file:audit_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestWriteLog(t *testing.T) {
	db := newTestDB(t)

	err := WriteLog(db, LogOptions{
		UserID:      1,
		UserName:    "Yönetici",
		EntityType:  "order",
		EntityID:    7,
		Action:      models.AuditActionUpdate,
		Description: "Sipariş güncellendi: MEH-2026-001",
		Before:      map[string]any{"color": "Beyaz"},
		After:       map[string]any{"color": "Siyah"},
	})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "order", entry.EntityType)
	assert.Equal(t, uint(7), entry.EntityID)
	assert.JSONEq(t, `{"color":"Beyaz"}`, entry.BeforeData)
	assert.JSONEq(t, `{"color":"Siyah"}`, entry.AfterData)
}

func TestWriteLogNilPayloads(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, WriteLog(db, LogOptions{
		UserID:     1,
		EntityType: "order",
		Action:     models.AuditActionDelete,
	}))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "null", entry.BeforeData)
	assert.Equal(t, "null", entry.AfterData)
}

func TestListAuditLogs(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, WriteLog(db, LogOptions{EntityType: "order", Action: models.AuditActionCreate}))
	require.NoError(t, WriteLog(db, LogOptions{EntityType: "fabric_delivery", Action: models.AuditActionCreate}))

	app := fiber.New()
	app.Get("/api/audit-logs", ListAuditLogsHandler(db))

	req := httptest.NewRequest(fiber.MethodGet, "/api/audit-logs?entity_type=order", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var logs []models.AuditLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "order", logs[0].EntityType)
}
