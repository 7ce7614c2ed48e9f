package main

import (
	"os"
	"strings"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/dashboard"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/documents"
	"konfeksiyon-backend/internal/fabric"
	"konfeksiyon-backend/internal/orders"
	"konfeksiyon-backend/internal/production"
	"konfeksiyon-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env varsa yükle, yoksa ortam değişkenleriyle devam et
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Veritabanına bağlanılamadı")
	}

	// Model görselleri için S3; bucket tanımlı değilse upload endpoint'i 503 döner
	var imageStore storage.ImageStore
	if cfg.S3Bucket != "" {
		store, err := storage.NewS3Store(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("S3 bağlantısı kurulamadı")
		}
		imageStore = store
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 << 20, // model görseli upload'ı için
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(db))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Siparişler
	protected.Post("/orders", orders.CreateOrderHandler(db))
	protected.Get("/orders", orders.ListOrdersHandler(db))
	protected.Get("/orders/recent-groups", orders.RecentGroupsHandler(db))
	protected.Get("/orders/export.xlsx", orders.ExportOrdersHandler(db))
	protected.Get("/orders/:id", orders.GetOrderHandler(db))
	protected.Put("/orders/:id", orders.UpdateOrderHandler(db))
	protected.Delete("/orders/:id", orders.DeleteOrderHandler(db))
	protected.Put("/orders/:id/cutting-details", orders.UpdateCuttingDetailsHandler(db))
	protected.Put("/orders/:id/cutting-results", orders.UpdateCuttingResultsHandler(db))
	protected.Patch("/orders/:id/fabric-ordered", orders.ToggleFabricOrderedHandler(db))
	protected.Post("/orders/:id/archive", orders.ArchiveOrderHandler(db))
	protected.Post("/orders/:id/unarchive", orders.UnarchiveOrderHandler(db))

	// PDF çıktıları
	protected.Get("/orders/:id/cutting-order.pdf", documents.CuttingOrderPDFHandler(db, cfg.CompanyName))
	protected.Get("/orders/groups/:orderNo/fabric-order.pdf", documents.FabricOrderPDFHandler(db, cfg.CompanyName))

	// Kumaş grupları ve teslimatlar
	protected.Get("/orders/groups/:orderNo/fabrics", fabric.GroupFabricsHandler(db))
	protected.Post("/fabric-deliveries", fabric.CreateDeliveryHandler(db))
	protected.Get("/fabric-deliveries", fabric.ListDeliveriesHandler(db))
	protected.Delete("/fabric-deliveries/:id", fabric.DeleteDeliveryHandler(db))

	// Üretim takibi
	protected.Get("/production/board", production.BoardHandler(db))
	protected.Post("/production/:id/advance", production.AdvanceStageHandler(db))
	protected.Post("/production/:id/retreat", production.RetreatStageHandler(db))
	protected.Get("/production/report", production.ReportHandler(db))

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler(db))

	// Model görseli
	protected.Post("/uploads/model-image", storage.UploadModelImageHandler(imageStore))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	log.Info().Str("port", cfg.HTTPPort).Msg("Server çalışıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Server kapandı")
	}
}
