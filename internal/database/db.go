package database

import (
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect: Postgres'e bağlanır ve şemayı migrate eder. Dönen *gorm.DB
// handler kurucularına açıkça geçirilir; paket seviyesinde global yok.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Msg("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db, nil
}

// Migrate: tüm tabloları oluşturur/günceller. Testler sqlite üzerinde
// aynı fonksiyonu kullanır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.FabricDelivery{},
		&models.AuditLog{},
	)
}
